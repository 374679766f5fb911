package searchindex

import (
	"context"

	"taxonomy-indexer/internal/config"
	"taxonomy-indexer/internal/pkg/logging"
	"taxonomy-indexer/internal/search"

	algoliasearch "github.com/algolia/algoliasearch-client-go/v3/algolia/search"
	"github.com/algolia/algoliasearch-client-go/v3/algolia/opt"
)

// Index is the destination the snapshot is published to. Two operations,
// strictly ordered by the pipeline: settings first, then one atomic
// replace-all of every record.
type Index interface {
	// ApplySettings pushes the static index configuration. Idempotent and
	// safe to repeat; it deliberately overrides dashboard edits so the
	// configuration lives in code.
	ApplySettings(ctx context.Context) error

	// ReplaceAll swaps the index's entire content for the given records in
	// one atomic operation and waits for indexing to complete. On failure the
	// previous snapshot stays fully intact.
	ReplaceAll(ctx context.Context, records []search.JobRecord) error
}

// jobsIndexSettings is the configuration-as-code for the jobs index.
func jobsIndexSettings() algoliasearch.Settings {
	return algoliasearch.Settings{
		AttributeForDistinct: opt.AttributeForDistinct("external_id"),
		Distinct:             opt.Distinct(true),
		TypoTolerance:        opt.TypoTolerance(false),
		SearchableAttributes: opt.SearchableAttributes(
			"unordered(name)",
			"skills.name",
		),
		AttributesForFaceting: opt.AttributesForFaceting(
			"searchable(name)",
			"searchable(skills.name)",
			"searchable(industry_names)",
		),
	}
}

type AlgoliaIndex struct {
	index *algoliasearch.Index
	name  string
	log   *logging.Logger
}

func NewAlgoliaIndex(cfg config.AlgoliaConfig, log *logging.Logger) *AlgoliaIndex {
	if log == nil {
		log = logging.NewNop()
	}
	client := algoliasearch.NewClientWithConfig(algoliasearch.Configuration{
		AppID:        cfg.ApplicationID,
		APIKey:       cfg.APIKey,
		WriteTimeout: cfg.WriteTimeout,
	})
	return &AlgoliaIndex{index: client.InitIndex(cfg.IndexName), name: cfg.IndexName, log: log}
}

func (a *AlgoliaIndex) ApplySettings(ctx context.Context) error {
	_, err := a.index.SetSettings(jobsIndexSettings(), ctx)
	return err
}

func (a *AlgoliaIndex) ReplaceAll(ctx context.Context, records []search.JobRecord) error {
	// opt.Safe makes the client wait for the asynchronous indexing operations,
	// so readers observe either the old complete snapshot or the new one.
	_, err := a.index.ReplaceAllObjects(records, ctx, opt.Safe(true))
	if err != nil {
		return err
	}
	a.log.Info("index replaced", "index", a.name, "objects", len(records))
	return nil
}
