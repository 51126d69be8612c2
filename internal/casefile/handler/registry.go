package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caseflow/caseflow-backend/internal/casefile/registry"
	"github.com/caseflow/caseflow-backend/pkg/errors"
	"github.com/caseflow/caseflow-backend/pkg/httputil"
	"github.com/caseflow/caseflow-backend/pkg/logger"
)

// RegistryHandler serves the static field and section catalog
type RegistryHandler struct {
	logger *logger.Logger
}

// NewRegistryHandler creates a new registry handler
func NewRegistryHandler(log *logger.Logger) *RegistryHandler {
	return &RegistryHandler{logger: log}
}

// ListFields returns all field definitions
func (h *RegistryHandler) ListFields(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, registry.Fields())
}

// GetField returns one field definition by key
func (h *RegistryHandler) GetField(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	def, ok := registry.FieldByKey(key)
	if !ok {
		httputil.Error(w, errors.NotFoundID("field definition", key))
		return
	}

	httputil.JSON(w, http.StatusOK, def)
}

// FieldReuse reports which documents consume a field's value
func (h *RegistryHandler) FieldReuse(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if !registry.HasField(key) {
		httputil.Error(w, errors.NotFoundID("field definition", key))
		return
	}
	docs := registry.FieldReuse(key)

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"key":       key,
		"documents": docs,
	})
}

// ListSections returns the recognition section catalog
func (h *RegistryHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, registry.Sections())
}
