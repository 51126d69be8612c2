package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/internal/casefile/service"
	"github.com/caseflow/caseflow-backend/pkg/httputil"
	"github.com/caseflow/caseflow-backend/pkg/logger"
)

// FieldHandler handles recognition field, extraction and section endpoints
type FieldHandler struct {
	service *service.CaseService
	logger  *logger.Logger
}

// NewFieldHandler creates a new field handler
func NewFieldHandler(svc *service.CaseService, log *logger.Logger) *FieldHandler {
	return &FieldHandler{
		service: svc,
		logger:  log,
	}
}

// SetValue upserts a field value
func (h *FieldHandler) SetValue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Key    string `json:"key" validate:"required"`
		Value  string `json:"value"`
		Status string `json:"status" validate:"required,oneof=suggested confirmed edited"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.SetFieldValue(r.Context(), id, req.Key, req.Value, domain.FieldStatus(req.Status))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// Confirm confirms a field value
func (h *FieldHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	key := chi.URLParam(r, "key")

	c, err := h.service.ConfirmField(r.Context(), id, key)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// Edit overwrites a field value with a user-supplied replacement
func (h *FieldHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	key := chi.URLParam(r, "key")

	var req struct {
		Value string `json:"value"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.EditField(r.Context(), id, key, req.Value)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// AddExtraction records an AI extraction suggestion on the case
func (h *FieldHandler) AddExtraction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		FieldKey          string   `json:"fieldKey" validate:"required"`
		SuggestedValue    string   `json:"suggestedValue" validate:"required"`
		Confidence        float64  `json:"confidence"`
		SourceEvidenceIDs []string `json:"sourceEvidenceIds"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.AddExtraction(r.Context(), id, req.FieldKey, req.SuggestedValue, req.Confidence, req.SourceEvidenceIDs)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// ConfirmExtraction confirms a pending extraction
func (h *FieldHandler) ConfirmExtraction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	extractionID := chi.URLParam(r, "extractionId")

	c, err := h.service.ConfirmExtraction(r.Context(), id, extractionID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// DismissExtraction dismisses a pending extraction
func (h *FieldHandler) DismissExtraction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	extractionID := chi.URLParam(r, "extractionId")

	c, err := h.service.DismissExtraction(r.Context(), id, extractionID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// EditExtraction writes a replacement value for the extraction's field and
// dismisses the extraction
func (h *FieldHandler) EditExtraction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	extractionID := chi.URLParam(r, "extractionId")

	var req struct {
		Value string `json:"value"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.EditExtraction(r.Context(), id, extractionID, req.Value)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// MarkSectionComplete marks a recognition section done
func (h *FieldHandler) MarkSectionComplete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sectionID := chi.URLParam(r, "sectionId")

	c, err := h.service.MarkSectionComplete(r.Context(), id, sectionID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// UnmarkSectionComplete reopens a recognition section
func (h *FieldHandler) UnmarkSectionComplete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sectionID := chi.URLParam(r, "sectionId")

	c, err := h.service.UnmarkSectionComplete(r.Context(), id, sectionID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}
