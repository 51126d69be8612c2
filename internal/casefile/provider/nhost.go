package provider

import (
	"context"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/pkg/errors"
)

// NhostProvider is the Nhost/GraphQL backend. The GraphQL integration is not
// wired up yet; every operation fails immediately with ProviderUnavailable so
// callers can detect "not yet available" instead of a silent no-op.
type NhostProvider struct {
	graphqlURL string
}

// NewNhostProvider creates the (not yet available) Nhost provider
func NewNhostProvider(graphqlURL string) *NhostProvider {
	return &NhostProvider{graphqlURL: graphqlURL}
}

// Kind returns KindNhost
func (p *NhostProvider) Kind() Kind {
	return KindNhost
}

func (p *NhostProvider) GetCases(ctx context.Context) ([]domain.Case, error) {
	return nil, errors.ProviderUnavailable(string(KindNhost), "getCases")
}

func (p *NhostProvider) GetCaseByID(ctx context.Context, id string) (domain.Case, error) {
	return domain.Case{}, errors.ProviderUnavailable(string(KindNhost), "getCaseById")
}

func (p *NhostProvider) CreateCase(ctx context.Context, c domain.Case) error {
	return errors.ProviderUnavailable(string(KindNhost), "createCase")
}

func (p *NhostProvider) UpdateCase(ctx context.Context, c domain.Case) error {
	return errors.ProviderUnavailable(string(KindNhost), "updateCase")
}

func (p *NhostProvider) DeleteCase(ctx context.Context, id string) error {
	return errors.ProviderUnavailable(string(KindNhost), "deleteCase")
}
