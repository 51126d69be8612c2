// Package repository exposes CRUD for case aggregates against whichever
// backend provider was resolved at startup. It knows nothing about
// nested-collection mutation rules; those live in the engine.
package repository

import (
	"context"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/internal/casefile/provider"
	"github.com/caseflow/caseflow-backend/pkg/logger"
)

// CaseRepository persists case aggregates through the active provider.
// The provider is injected once at construction; nothing reads backend
// configuration ambiently at call time.
type CaseRepository struct {
	provider provider.Provider
	logger   *logger.Logger
}

// NewCaseRepository creates a repository over the given provider
func NewCaseRepository(p provider.Provider, log *logger.Logger) *CaseRepository {
	return &CaseRepository{
		provider: p,
		logger:   log,
	}
}

// ProviderKind reports which backend is active
func (r *CaseRepository) ProviderKind() provider.Kind {
	return r.provider.Kind()
}

// List returns all cases
func (r *CaseRepository) List(ctx context.Context) ([]domain.Case, error) {
	return r.provider.GetCases(ctx)
}

// Get returns the case with the given id
func (r *CaseRepository) Get(ctx context.Context, id string) (domain.Case, error) {
	return r.provider.GetCaseByID(ctx, id)
}

// Create stores a newly constructed aggregate
func (r *CaseRepository) Create(ctx context.Context, c domain.Case) error {
	if err := r.provider.CreateCase(ctx, c); err != nil {
		return err
	}

	r.logger.Info().
		Str("case_id", c.ID).
		Str("bo", c.BO).
		Msg("case created")
	return nil
}

// Save persists the full aggregate after a mutation. Last write wins; the
// in-memory aggregate stays the session's source of truth if this fails.
func (r *CaseRepository) Save(ctx context.Context, c domain.Case) error {
	return r.provider.UpdateCase(ctx, c)
}

// Delete removes the case. Storage-backed providers cascade removal of the
// aggregate's uploaded images.
func (r *CaseRepository) Delete(ctx context.Context, id string) error {
	if err := r.provider.DeleteCase(ctx, id); err != nil {
		return err
	}

	r.logger.Info().
		Str("case_id", id).
		Msg("case deleted")
	return nil
}
