// Package provider selects and implements the persistence backends a case
// repository can delegate to: an in-memory mock, a remote HTTP case API, a
// Supabase Postgres database, and the Nhost GraphQL backend (not yet wired).
package provider

import (
	"context"
	"strconv"
	"strings"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/pkg/config"
	"github.com/caseflow/caseflow-backend/pkg/database"
	"github.com/caseflow/caseflow-backend/pkg/errors"
	"github.com/caseflow/caseflow-backend/pkg/logger"
)

// Kind identifies a backend provider implementation
type Kind string

const (
	KindMock     Kind = "mock"
	KindHTTP     Kind = "http"
	KindSupabase Kind = "supabase"
	KindNhost    Kind = "nhost"
)

// Provider is the persistence contract every backend implements. Updates
// write the full aggregate and the last write wins; there is no version token
// or conflict detection.
//
// A backend with no implementation for an operation must fail loudly with a
// ProviderUnavailable error, never silently no-op, so callers can tell
// "not yet available" apart from "not found".
type Provider interface {
	Kind() Kind
	GetCases(ctx context.Context) ([]domain.Case, error)
	GetCaseByID(ctx context.Context, id string) (domain.Case, error)
	CreateCase(ctx context.Context, c domain.Case) error
	UpdateCase(ctx context.Context, c domain.Case) error
	DeleteCase(ctx context.Context, id string) error
}

// ResolveKind picks the active backend from configuration. Resolution order:
//
//  1. an explicit provider setting, if it names a valid kind, wins outright;
//     unrecognized values are treated as absent
//  2. the legacy use-mock boolean: any value other than a literal false means
//     mock; a literal false means the HTTP backend
//  3. absent both, the default is mock, which never touches external systems
//
// The two-tier fallback keeps deployments configured before the provider
// setting existed working unchanged. Never fails.
func ResolveKind(explicit, legacyUseMock string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(explicit))) {
	case KindMock:
		return KindMock
	case KindHTTP:
		return KindHTTP
	case KindSupabase:
		return KindSupabase
	case KindNhost:
		return KindNhost
	}

	if v := strings.TrimSpace(legacyUseMock); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && !b {
			return KindHTTP
		}
		return KindMock
	}

	return KindMock
}

// New resolves the configured kind and constructs the matching provider.
// Construction fails with ProviderUnavailable when the resolved backend is
// missing the configuration needed to reach it.
func New(cfg *config.BackendConfig, log *logger.Logger) (Provider, error) {
	kind := ResolveKind(cfg.Provider, cfg.UseMock)

	switch kind {
	case KindHTTP:
		return NewHTTPProvider(&cfg.HTTP)

	case KindSupabase:
		if cfg.Supabase.DSN() == "" {
			return nil, errors.ProviderUnavailable(string(KindSupabase), "database configuration missing")
		}
		db, err := database.New(&cfg.Supabase, log)
		if err != nil {
			return nil, errors.Transport(err, "failed to connect to supabase database")
		}
		return NewSupabaseProvider(db), nil

	case KindNhost:
		return NewNhostProvider(cfg.Nhost.GraphQLURL), nil

	default:
		return NewMockProvider(), nil
	}
}
