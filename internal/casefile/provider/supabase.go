package provider

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/pkg/database"
	"github.com/caseflow/caseflow-backend/pkg/errors"
)

// SupabaseProvider persists cases in the project's Supabase Postgres
// database. The aggregate is stored as a jsonb document in a single `cases`
// table, keyed by id, with the BO number and timestamps broken out for
// listing. Uploaded photo payloads live inside the document, so deleting the
// row removes the case's images with it.
type SupabaseProvider struct {
	db *database.DB
}

// NewSupabaseProvider creates a provider backed by the given database
func NewSupabaseProvider(db *database.DB) *SupabaseProvider {
	return &SupabaseProvider{db: db}
}

// Kind returns KindSupabase
func (p *SupabaseProvider) Kind() Kind {
	return KindSupabase
}

// Health reports the database connection status
func (p *SupabaseProvider) Health(ctx context.Context) map[string]string {
	return p.db.Health(ctx)
}

// GetCases returns all cases, newest first
func (p *SupabaseProvider) GetCases(ctx context.Context) ([]domain.Case, error) {
	var docs [][]byte
	query := `SELECT document FROM cases ORDER BY created_at DESC`
	if err := p.db.SelectContext(ctx, &docs, query); err != nil {
		return nil, p.mapError(err)
	}

	cases := make([]domain.Case, 0, len(docs))
	for _, doc := range docs {
		var c domain.Case
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("failed to decode case document: %w", err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// GetCaseByID returns the case with the given id
func (p *SupabaseProvider) GetCaseByID(ctx context.Context, id string) (domain.Case, error) {
	var doc []byte
	query := `SELECT document FROM cases WHERE id = $1`
	if err := p.db.GetContext(ctx, &doc, query, id); err != nil {
		if err == sql.ErrNoRows {
			return domain.Case{}, errors.NotFoundID("case", id)
		}
		return domain.Case{}, p.mapError(err)
	}

	var c domain.Case
	if err := json.Unmarshal(doc, &c); err != nil {
		return domain.Case{}, fmt.Errorf("failed to decode case document: %w", err)
	}
	return c, nil
}

// CreateCase inserts a new case row
func (p *SupabaseProvider) CreateCase(ctx context.Context, c domain.Case) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode case document: %w", err)
	}

	query := `
		INSERT INTO cases (id, bo, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := p.db.ExecContext(ctx, query, c.ID, c.BO, doc, c.CreatedAt, c.UpdatedAt); err != nil {
		return p.mapError(err)
	}
	return nil
}

// UpdateCase overwrites the stored document. Last write wins.
func (p *SupabaseProvider) UpdateCase(ctx context.Context, c domain.Case) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode case document: %w", err)
	}

	query := `UPDATE cases SET bo = $2, document = $3, updated_at = $4 WHERE id = $1`
	result, err := p.db.ExecContext(ctx, query, c.ID, c.BO, doc, time.Now().UTC())
	if err != nil {
		return p.mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return p.mapError(err)
	}
	if affected == 0 {
		return errors.NotFoundID("case", c.ID)
	}
	return nil
}

// DeleteCase removes the case row and, via the embedded document, the
// uploaded images that belonged to it.
func (p *SupabaseProvider) DeleteCase(ctx context.Context, id string) error {
	result, err := p.db.ExecContext(ctx, `DELETE FROM cases WHERE id = $1`, id)
	if err != nil {
		return p.mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return p.mapError(err)
	}
	if affected == 0 {
		return errors.NotFoundID("case", id)
	}
	return nil
}

func (p *SupabaseProvider) mapError(err error) error {
	if appErr := database.MapPQError(err); appErr != nil {
		return appErr
	}
	return errors.Transport(err, "supabase database operation failed")
}
