// Package handler exposes the case API over HTTP. Handlers decode and
// validate requests, delegate to the service and write the uniform response
// envelope; no business rules live here.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/internal/casefile/engine"
	"github.com/caseflow/caseflow-backend/internal/casefile/service"
	"github.com/caseflow/caseflow-backend/pkg/httputil"
	"github.com/caseflow/caseflow-backend/pkg/logger"
)

// CaseHandler handles case lifecycle endpoints
type CaseHandler struct {
	service *service.CaseService
	logger  *logger.Logger
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(svc *service.CaseService, log *logger.Logger) *CaseHandler {
	return &CaseHandler{
		service: svc,
		logger:  log,
	}
}

type createCaseRequest struct {
	BO            string  `json:"bo" validate:"required"`
	Natureza      *string `json:"natureza"`
	DataHoraFato  *string `json:"dataHoraFato"`
	Endereco      *string `json:"endereco"`
	CEP           *string `json:"cep"`
	Bairro        *string `json:"bairro"`
	Cidade        *string `json:"cidade"`
	Estado        *string `json:"estado"`
	Circunscricao *string `json:"circunscricao"`
	Unidade       *string `json:"unidade"`
}

type updateMetadataRequest struct {
	Natureza      *string `json:"natureza"`
	DataHoraFato  *string `json:"dataHoraFato"`
	Endereco      *string `json:"endereco"`
	CEP           *string `json:"cep"`
	Bairro        *string `json:"bairro"`
	Cidade        *string `json:"cidade"`
	Estado        *string `json:"estado"`
	Circunscricao *string `json:"circunscricao"`
	Unidade       *string `json:"unidade"`
}

// List lists all cases
func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	cases, err := h.service.ListCases(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, cases)
}

// Get gets a case by ID
func (h *CaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.service.GetCase(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// Create creates a new case
func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	meta := engine.MetadataUpdate{
		Natureza:      req.Natureza,
		DataHoraFato:  req.DataHoraFato,
		Endereco:      req.Endereco,
		CEP:           req.CEP,
		Bairro:        req.Bairro,
		Cidade:        req.Cidade,
		Estado:        req.Estado,
		Circunscricao: req.Circunscricao,
		Unidade:       req.Unidade,
	}

	c, err := h.service.CreateCase(r.Context(), req.BO, meta)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, c)
}

// UpdateMetadata applies a partial update to the case's top-level metadata
func (h *CaseHandler) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateMetadataRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.UpdateMetadata(r.Context(), id, engine.MetadataUpdate{
		Natureza:      req.Natureza,
		DataHoraFato:  req.DataHoraFato,
		Endereco:      req.Endereco,
		CEP:           req.CEP,
		Bairro:        req.Bairro,
		Cidade:        req.Cidade,
		Estado:        req.Estado,
		Circunscricao: req.Circunscricao,
		Unidade:       req.Unidade,
	})
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// SetStatus changes the case lifecycle status
func (h *CaseHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.SetStatus(r.Context(), id, domain.CaseStatus(req.Status))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// Delete deletes a case
func (h *CaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteCase(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// AddTeamMember adds an officer to the case team
func (h *CaseHandler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Role  string `json:"role"`
		Name  string `json:"name" validate:"required"`
		Badge string `json:"badge"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.AddTeamMember(r.Context(), id, req.Role, req.Name, req.Badge)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// RemoveTeamMember removes an officer from the case team
func (h *CaseHandler) RemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	memberID := chi.URLParam(r, "memberId")

	c, err := h.service.RemoveTeamMember(r.Context(), id, memberID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// AddTimelineEvent appends an event to the case timeline
func (h *CaseHandler) AddTimelineEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Type        string `json:"type"`
		Label       string `json:"label" validate:"required"`
		Description string `json:"description"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.AddTimelineEvent(r.Context(), id, req.Type, req.Label, req.Description)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// Progress returns all progress figures for a case
func (h *CaseHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	progress, err := h.service.Progress(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, progress)
}

// Alerts returns the alerts derived from the case's current state
func (h *CaseHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	alerts, err := h.service.Alerts(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, alerts)
}
