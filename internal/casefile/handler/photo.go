package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/internal/casefile/service"
	"github.com/caseflow/caseflow-backend/pkg/httputil"
	"github.com/caseflow/caseflow-backend/pkg/logger"
)

// PhotoHandler handles photo evidence and photo report endpoints
type PhotoHandler struct {
	service *service.CaseService
	logger  *logger.Logger
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(svc *service.CaseService, log *logger.Logger) *PhotoHandler {
	return &PhotoHandler{
		service: svc,
		logger:  log,
	}
}

// Add attaches a photo with its AI-suggested classification
func (h *PhotoHandler) Add(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		FileName          string   `json:"fileName" validate:"required"`
		FileData          string   `json:"fileData"`
		MimeType          string   `json:"mimeType"`
		SuggestedCategory string   `json:"suggestedCategory" validate:"required"`
		Confidence        float64  `json:"confidence"`
		Tags              []string `json:"tags"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.AddPhoto(r.Context(), id, req.FileName, req.FileData, req.MimeType, domain.PhotoCategory(req.SuggestedCategory), req.Confidence, req.Tags)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, c)
}

// ConfirmCategory confirms or overrides a photo's category
func (h *PhotoHandler) ConfirmCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	photoID := chi.URLParam(r, "photoId")

	var req struct {
		Category string `json:"category" validate:"required"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.ConfirmPhotoCategory(r.Context(), id, photoID, domain.PhotoCategory(req.Category))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// UpdateTags replaces a photo's tags
func (h *PhotoHandler) UpdateTags(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	photoID := chi.URLParam(r, "photoId")

	var req struct {
		Tags []string `json:"tags"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.UpdatePhotoTags(r.Context(), id, photoID, req.Tags)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// Remove deletes a photo from the case
func (h *PhotoHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	photoID := chi.URLParam(r, "photoId")

	c, err := h.service.RemovePhoto(r.Context(), id, photoID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// SetSelection replaces the photo report selection
func (h *PhotoHandler) SetSelection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Photos []domain.SelectedPhoto `json:"photos"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.SetPhotoReportSelection(r.Context(), id, req.Photos)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// SetCaption sets the caption of one selected photo
func (h *PhotoHandler) SetCaption(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	photoID := chi.URLParam(r, "photoId")

	var req struct {
		Caption string `json:"caption"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.SetPhotoCaption(r.Context(), id, photoID, req.Caption)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}

// Configure sets the photo report layout options
func (h *PhotoHandler) Configure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Layout              string `json:"layout" validate:"required,oneof=one-per-page two-per-page"`
		IncludeCover        bool   `json:"includeCover"`
		IncludeHeaderFooter bool   `json:"includeHeaderFooter"`
	}
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	c, err := h.service.ConfigurePhotoReport(r.Context(), id, domain.ReportLayout(req.Layout), req.IncludeCover, req.IncludeHeaderFooter)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, c)
}
