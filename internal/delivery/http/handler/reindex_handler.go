package handler

import (
	"errors"

	"taxonomy-indexer/internal/delivery/http/dto"
	"taxonomy-indexer/internal/delivery/http/middleware"
	"taxonomy-indexer/internal/pkg/response"
	"taxonomy-indexer/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ReindexHandler struct {
	uc usecase.ReindexUsecase
}

func NewReindexHandler(uc usecase.ReindexUsecase) *ReindexHandler {
	return &ReindexHandler{uc: uc}
}

func (h *ReindexHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/pipeline/reindex", h.Trigger)
	r.Get("/pipeline/status", h.Status)
}

func (h *ReindexHandler) Trigger(c fiber.Ctx) error {
	status, err := h.uc.Trigger(c.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrReindexInProgress) {
			return middleware.NewAppError(fiber.StatusConflict, "reindex already in progress", nil, err)
		}
		return err
	}
	return response.Success(c, fiber.StatusAccepted, response.MessageAccepted, dto.NewReindexStatusResponse(status))
}

func (h *ReindexHandler) Status(c fiber.Ctx) error {
	status, err := h.uc.Status(c.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrNoRunsYet) {
			return middleware.NewAppError(fiber.StatusNotFound, "no reindex runs recorded", nil, err)
		}
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewReindexStatusResponse(status))
}
