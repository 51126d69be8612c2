package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/internal/casefile/provider"
	"github.com/caseflow/caseflow-backend/pkg/config"
	"github.com/caseflow/caseflow-backend/pkg/errors"
	"github.com/caseflow/caseflow-backend/pkg/testutil"
)

func newHTTPProvider(t *testing.T, handler http.Handler) *provider.HTTPProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := provider.NewHTTPProvider(&config.HTTPBackend{BaseURL: server.URL})
	require.NoError(t, err)
	return p
}

func TestHTTPProvider_GetCases(t *testing.T) {
	fixture := testutil.NewCaseFixture()

	p := newHTTPProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cases", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.Case{fixture})
	}))

	cases, err := p.GetCases(context.Background())
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, fixture.BO, cases[0].BO)
}

func TestHTTPProvider_GetCaseByID_NotFound(t *testing.T) {
	p := newHTTPProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := p.GetCaseByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestHTTPProvider_CreateCase(t *testing.T) {
	fixture := testutil.NewCaseFixture()

	p := newHTTPProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cases", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var received domain.Case
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&received)) {
			assert.Equal(t, fixture.ID, received.ID)
		}

		w.WriteHeader(http.StatusCreated)
	}))

	assert.NoError(t, p.CreateCase(context.Background(), fixture))
}

func TestHTTPProvider_UpdateCase_ServerError(t *testing.T) {
	p := newHTTPProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := p.UpdateCase(context.Background(), testutil.NewCaseFixture())
	assert.True(t, errors.Is(err, errors.ErrTransport))
}

func TestHTTPProvider_DeleteCase(t *testing.T) {
	p := newHTTPProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/cases/case-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.NoError(t, p.DeleteCase(context.Background(), "case-1"))
}

func TestHTTPProvider_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	p, err := provider.NewHTTPProvider(&config.HTTPBackend{BaseURL: server.URL})
	require.NoError(t, err)
	server.Close()

	_, err = p.GetCases(context.Background())
	assert.True(t, errors.Is(err, errors.ErrTransport))
}

func TestNewHTTPProvider_RequiresBaseURL(t *testing.T) {
	_, err := provider.NewHTTPProvider(&config.HTTPBackend{})
	assert.True(t, errors.Is(err, errors.ErrProviderUnavailable))
}
