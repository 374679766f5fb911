package app

import (
	"fmt"
	"strings"

	"taxonomy-indexer/internal/delivery/http/handler"
	"taxonomy-indexer/internal/delivery/http/middleware"
	"taxonomy-indexer/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	f.Use(middleware.NewAccessLogMiddleware(c.Log).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Log).Middleware())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Redis),
		handler.NewReindexHandler(c.Reindexer),
		middleware.NewAuthMiddleware(c.Tokens),
	)
	registry.Register(f)

	return &App{Fiber: f}
}

func Bootstrap(c *Container) (*App, func() error, error) {
	app := New(c)
	return app, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
