package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/internal/casefile/service"
	"github.com/caseflow/caseflow-backend/pkg/httputil"
	"github.com/caseflow/caseflow-backend/pkg/logger"
)

// ReportHandler handles investigation report block and signature endpoints
type ReportHandler struct {
	service *service.CaseService
	logger  *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(svc *service.CaseService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: svc,
		logger:  log,
	}
}

type blockContentRequest struct {
	Content             string   `json:"content"`
	ReferencedFieldKeys []string `json:"referencedFieldKeys"`
	ReferencedPhotoIDs  []string `json:"referencedPhotoIds"`
}

type blockReferencesRequest struct {
	FieldKeys []string `json:"fieldKeys"`
	PhotoIDs  []string `json:"photoIds"`
}

// UpdateBlock updates a report block's content and references
func (h *ReportHandler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blockID := chi.URLParam(r, "blockId")

	var req blockContentRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.UpdateReportBlock(r.Context(), id, blockID, req.Content, req.ReferencedFieldKeys, req.ReferencedPhotoIDs)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// SetBlockAIGenerated replaces a block's content with generated text
func (h *ReportHandler) SetBlockAIGenerated(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blockID := chi.URLParam(r, "blockId")

	var req blockContentRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.SetBlockAIGenerated(r.Context(), id, blockID, req.Content, req.ReferencedFieldKeys, req.ReferencedPhotoIDs)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// ConfirmBlock confirms an ai_generated block
func (h *ReportHandler) ConfirmBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blockID := chi.URLParam(r, "blockId")

	c, err := h.service.ConfirmBlockContent(r.Context(), id, blockID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// AddReferences adds field and photo references to a block
func (h *ReportHandler) AddReferences(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blockID := chi.URLParam(r, "blockId")

	var req blockReferencesRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.AddBlockReferences(r.Context(), id, blockID, req.FieldKeys, req.PhotoIDs)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// RemoveReferences removes field and photo references from a block
func (h *ReportHandler) RemoveReferences(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blockID := chi.URLParam(r, "blockId")

	var req blockReferencesRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.RemoveBlockReferences(r.Context(), id, blockID, req.FieldKeys, req.PhotoIDs)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// UpdateSignatures replaces the report signature section
func (h *ReportHandler) UpdateSignatures(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.ReportSignatures
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.UpdateSignatures(r.Context(), id, req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// RecordPDF registers a rendered report document on the case
func (h *ReportHandler) RecordPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		ReportType string `json:"reportType" validate:"required,oneof=recognition photo_report investigation_report"`
		FileName   string `json:"fileName" validate:"required"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.RecordGeneratedPDF(r.Context(), id, req.ReportType, req.FileName)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, c)
}
