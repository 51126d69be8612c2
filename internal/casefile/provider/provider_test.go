package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caseflow/caseflow-backend/internal/casefile/provider"
	"github.com/caseflow/caseflow-backend/pkg/config"
	"github.com/caseflow/caseflow-backend/pkg/logger"
)

func TestResolveKind(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		useMock  string
		want     provider.Kind
	}{
		{"explicit mock", "mock", "", provider.KindMock},
		{"explicit http", "http", "", provider.KindHTTP},
		{"explicit supabase", "supabase", "", provider.KindSupabase},
		{"explicit nhost", "nhost", "", provider.KindNhost},
		{"explicit wins over legacy", "supabase", "false", provider.KindSupabase},
		{"explicit is case-insensitive", "HTTP", "", provider.KindHTTP},
		{"unrecognized explicit falls through", "dynamo", "false", provider.KindHTTP},
		{"legacy false means http", "", "false", provider.KindHTTP},
		{"legacy FALSE means http", "", "FALSE", provider.KindHTTP},
		{"legacy 0 means http", "", "0", provider.KindHTTP},
		{"legacy true means mock", "", "true", provider.KindMock},
		{"legacy garbage means mock", "", "banana", provider.KindMock},
		{"absent both defaults to mock", "", "", provider.KindMock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, provider.ResolveKind(tt.explicit, tt.useMock))
		})
	}
}

func TestNew_DefaultsToMock(t *testing.T) {
	log := logger.New("test", "test")

	p, err := provider.New(&config.BackendConfig{}, log)
	assert.NoError(t, err)
	assert.Equal(t, provider.KindMock, p.Kind())
}

func TestNew_HTTPRequiresBaseURL(t *testing.T) {
	log := logger.New("test", "test")

	_, err := provider.New(&config.BackendConfig{Provider: "http"}, log)
	assert.Error(t, err)

	p, err := provider.New(&config.BackendConfig{
		Provider: "http",
		HTTP:     config.HTTPBackend{BaseURL: "http://localhost:9000"},
	}, log)
	assert.NoError(t, err)
	assert.Equal(t, provider.KindHTTP, p.Kind())
}

func TestNew_SupabaseRequiresDSN(t *testing.T) {
	log := logger.New("test", "test")

	_, err := provider.New(&config.BackendConfig{Provider: "supabase"}, log)
	assert.Error(t, err)
}

func TestNew_Nhost(t *testing.T) {
	log := logger.New("test", "test")

	p, err := provider.New(&config.BackendConfig{Provider: "nhost"}, log)
	assert.NoError(t, err)
	assert.Equal(t, provider.KindNhost, p.Kind())
}
