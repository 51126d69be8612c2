package provider

import (
	"context"
	"sort"
	"sync"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/pkg/errors"
)

// MockProvider is a fully in-memory backend. It never touches external
// systems, which makes it the safe resolution default. Aggregates are cloned
// on the way in and out so stored state cannot be mutated from outside.
type MockProvider struct {
	mu    sync.RWMutex
	cases map[string]domain.Case
}

// NewMockProvider creates an empty in-memory backend
func NewMockProvider() *MockProvider {
	return &MockProvider{
		cases: make(map[string]domain.Case),
	}
}

// Kind returns KindMock
func (p *MockProvider) Kind() Kind {
	return KindMock
}

// GetCases returns all cases, newest first
func (p *MockProvider) GetCases(ctx context.Context) ([]domain.Case, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]domain.Case, 0, len(p.cases))
	for _, c := range p.cases {
		out = append(out, c.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

// GetCaseByID returns the case with the given id
func (p *MockProvider) GetCaseByID(ctx context.Context, id string) (domain.Case, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	c, ok := p.cases[id]
	if !ok {
		return domain.Case{}, errors.NotFoundID("case", id)
	}
	return c.Clone(), nil
}

// CreateCase stores a new case
func (p *MockProvider) CreateCase(ctx context.Context, c domain.Case) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.cases[c.ID]; exists {
		return errors.BadRequest("a case with this id already exists")
	}
	p.cases[c.ID] = c.Clone()
	return nil
}

// UpdateCase overwrites the stored aggregate. Last write wins.
func (p *MockProvider) UpdateCase(ctx context.Context, c domain.Case) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.cases[c.ID]; !ok {
		return errors.NotFoundID("case", c.ID)
	}
	p.cases[c.ID] = c.Clone()
	return nil
}

// DeleteCase removes the case and, with it, every embedded photo
func (p *MockProvider) DeleteCase(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.cases[id]; !ok {
		return errors.NotFoundID("case", id)
	}
	delete(p.cases, id)
	return nil
}
