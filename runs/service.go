// Package runs records demo run requests and their results.
package runs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jeffsasaki/antipatterns/catalog"
	"github.com/jeffsasaki/antipatterns/clients"
	"github.com/jeffsasaki/antipatterns/logging"
	"github.com/jeffsasaki/antipatterns/models"
)

// Repository is the persistence the service needs. *store.RunStore implements it.
type Repository interface {
	Create(ctx context.Context, run models.Run) error
	Get(ctx context.Context, id string) (models.Run, error)
	List(ctx context.Context) ([]models.Run, error)
	ApplyResult(ctx context.Context, result models.RunResult, completedAt time.Time) error
}

// Lookup resolves a slug. *catalog.Catalog implements it.
type Lookup interface {
	Lookup(slug string) (catalog.Entry, error)
}

type Service struct {
	repo      Repository
	catalog   Lookup
	publisher clients.Publisher
	queue     string
	lggr      logging.Logger

	now   func() time.Time
	newID func() string
}

func NewService(repo Repository, cat Lookup, publisher clients.Publisher, queue string, lggr logging.Logger) *Service {
	return &Service{
		repo:      repo,
		catalog:   cat,
		publisher: publisher,
		queue:     queue,
		lggr:      lggr.Named("runs"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Submit stores a pending run for slug and asks a runner to execute it.
// Unknown slugs return catalog.ErrNotFound. When the request cannot be
// published the run is marked failed and the error is returned.
func (s *Service) Submit(ctx context.Context, slug string) (models.Run, error) {
	if _, err := s.catalog.Lookup(slug); err != nil {
		return models.Run{}, err
	}

	run := models.Run{
		ID:          s.newID(),
		Slug:        slug,
		Status:      models.RunPending,
		RequestedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, run); err != nil {
		return models.Run{}, err
	}

	body, err := json.Marshal(models.RunRequest{RunID: run.ID, Slug: slug})
	if err != nil {
		return models.Run{}, fmt.Errorf("encode run request: %w", err)
	}
	if err := s.publisher.Publish(ctx, s.queue, body); err != nil {
		s.lggr.Errorw("Failed to publish run request", "runID", run.ID, "err", err)
		failed := models.RunResult{RunID: run.ID, Status: models.RunFailed, Error: "could not queue run"}
		if aerr := s.repo.ApplyResult(ctx, failed, s.now().UTC()); aerr != nil {
			s.lggr.Errorw("Failed to mark run as failed", "runID", run.ID, "err", aerr)
		}
		return models.Run{}, fmt.Errorf("queue run %s: %w", run.ID, err)
	}

	s.lggr.Infow("Run submitted", "runID", run.ID, "slug", slug)
	return run, nil
}

// ApplyResult is the handler for the result queue.
func (s *Service) ApplyResult(ctx context.Context, body []byte) error {
	var result models.RunResult
	if err := json.Unmarshal(body, &result); err != nil {
		s.lggr.Warnw("Discarding malformed run result", "err", err)
		return fmt.Errorf("decode run result: %w", err)
	}
	if result.RunID == "" {
		return fmt.Errorf("run result without run_id")
	}
	switch result.Status {
	case models.RunSucceeded, models.RunFailed:
	default:
		return fmt.Errorf("run %s: unexpected status %q", result.RunID, result.Status)
	}

	if err := s.repo.ApplyResult(ctx, result, s.now().UTC()); err != nil {
		s.lggr.Errorw("Failed to apply run result", "runID", result.RunID, "err", err)
		return err
	}
	s.lggr.Infow("Run finished", "runID", result.RunID, "status", result.Status)
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Run, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Run, error) {
	return s.repo.List(ctx)
}
