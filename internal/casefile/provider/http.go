package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/pkg/config"
	"github.com/caseflow/caseflow-backend/pkg/errors"
)

const defaultHTTPTimeout = 10 * time.Second

// HTTPProvider persists cases through a remote HTTP case API. Requests carry
// a fixed overall timeout and abort in flight on expiry; failures surface as
// Transport errors so callers can tell "could not save" apart from a
// rejected mutation.
type HTTPProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPProvider creates a provider for the remote case API
func NewHTTPProvider(cfg *config.HTTPBackend) (*HTTPProvider, error) {
	if cfg.BaseURL == "" {
		return nil, errors.ProviderUnavailable(string(KindHTTP), "base URL missing")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &HTTPProvider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Kind returns KindHTTP
func (p *HTTPProvider) Kind() Kind {
	return KindHTTP
}

// GetCases fetches all cases from the remote API
func (p *HTTPProvider) GetCases(ctx context.Context) ([]domain.Case, error) {
	var cases []domain.Case
	if err := p.do(ctx, http.MethodGet, "/cases", nil, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// GetCaseByID fetches one case from the remote API
func (p *HTTPProvider) GetCaseByID(ctx context.Context, id string) (domain.Case, error) {
	var c domain.Case
	if err := p.do(ctx, http.MethodGet, "/cases/"+id, nil, &c); err != nil {
		return domain.Case{}, err
	}
	return c, nil
}

// CreateCase sends the new aggregate to the remote API
func (p *HTTPProvider) CreateCase(ctx context.Context, c domain.Case) error {
	return p.do(ctx, http.MethodPost, "/cases", c, nil)
}

// UpdateCase sends the full aggregate to the remote API. Last write wins.
func (p *HTTPProvider) UpdateCase(ctx context.Context, c domain.Case) error {
	return p.do(ctx, http.MethodPut, "/cases/"+c.ID, c, nil)
}

// DeleteCase removes the case on the remote API
func (p *HTTPProvider) DeleteCase(ctx context.Context, id string) error {
	return p.do(ctx, http.MethodDelete, "/cases/"+id, nil, nil)
}

// do runs one request against the remote API. 404 maps to NotFound, any
// other non-2xx status or network failure maps to Transport.
func (p *HTTPProvider) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Transport(err, "case API request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errors.NotFound("case")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Transport(
			fmt.Errorf("unexpected status %d", resp.StatusCode),
			fmt.Sprintf("case API returned status %d", resp.StatusCode),
		)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Transport(err, "failed to decode case API response")
		}
	}

	return nil
}
