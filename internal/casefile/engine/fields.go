package engine

import (
	"fmt"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/internal/casefile/registry"
	"github.com/caseflow/caseflow-backend/pkg/errors"
)

// SetFieldValue upserts the field value for key. This is the lowest-level
// field primitive; confirm, edit and the extraction cascade compose from it.
// The key must exist in the field registry.
func (e *Engine) SetFieldValue(c domain.Case, key, value string, status domain.FieldStatus, actorName string) (domain.Case, error) {
	if !registry.HasField(key) {
		return c, errors.Validation(map[string]string{
			"key": fmt.Sprintf("unknown field key %q", key),
		})
	}
	if !domain.ValidFieldStatus(status) {
		return c, errors.Validation(map[string]string{
			"status": fmt.Sprintf("unknown field status %q", status),
		})
	}

	out := c.Clone()
	e.upsertField(&out, domain.FieldValue{
		Key:       key,
		Value:     value,
		Status:    status,
		UpdatedBy: actorName,
	})
	out.UpdatedAt = e.now()
	return out, nil
}

// ConfirmField marks the field for key as confirmed, accepting its current
// value. If no field value exists, the value is derived from the case's own
// properties when possible (e.g. case.bo). Confirming an already-confirmed
// field is a no-op, so repeated confirmations yield identical state.
func (e *Engine) ConfirmField(c domain.Case, key, actorName string) (domain.Case, error) {
	if fv := c.FindFieldValue(key); fv != nil {
		if fv.Status == domain.FieldStatusConfirmed {
			return c, nil
		}

		out := c.Clone()
		upd := out.FindFieldValue(key)
		upd.Status = domain.FieldStatusConfirmed
		upd.LastUpdated = e.now()
		upd.UpdatedBy = actorName
		out.UpdatedAt = e.now()
		return out, nil
	}

	derived, ok := derivedCaseValue(&c, key)
	if !ok || derived == "" {
		return c, errors.NotFoundID("field value", key)
	}

	out := c.Clone()
	e.upsertField(&out, domain.FieldValue{
		Key:       key,
		Value:     derived,
		Status:    domain.FieldStatusConfirmed,
		UpdatedBy: actorName,
	})
	out.UpdatedAt = e.now()
	return out, nil
}

// EditField upserts the field with the user-supplied value and status edited.
// Edit unconditionally wins regardless of the prior status.
func (e *Engine) EditField(c domain.Case, key, newValue, actorName string) (domain.Case, error) {
	return e.SetFieldValue(c, key, newValue, domain.FieldStatusEdited, actorName)
}

// AddExtraction records a machine-suggested value for a field, pending review.
// The suggestion itself comes from the external extraction process; the engine
// only records it.
func (e *Engine) AddExtraction(c domain.Case, fieldKey, suggestedValue string, confidence float64, sourceEvidenceIDs []string) (domain.Case, error) {
	if !registry.HasField(fieldKey) {
		return c, errors.Validation(map[string]string{
			"fieldKey": fmt.Sprintf("unknown field key %q", fieldKey),
		})
	}
	if confidence < 0 || confidence > 1 {
		return c, errors.Validation(map[string]string{
			"confidence": "must be between 0 and 1",
		})
	}

	out := c.Clone()
	out.AIExtractions = append(out.AIExtractions, domain.AIExtraction{
		ID:                e.newID(),
		FieldKey:          fieldKey,
		SuggestedValue:    suggestedValue,
		Confidence:        confidence,
		SourceEvidenceIDs: append([]string(nil), sourceEvidenceIDs...),
		Status:            domain.ExtractionStatusPending,
	})
	out.UpdatedAt = e.now()
	return out, nil
}

// ConfirmExtraction transitions a pending extraction to confirmed and cascades
// the suggested value into the field values with status confirmed. Confirmed
// and dismissed are terminal; re-confirming is rejected and never cascades
// again.
func (e *Engine) ConfirmExtraction(c domain.Case, extractionID, actorName string) (domain.Case, error) {
	ex := c.FindExtraction(extractionID)
	if ex == nil {
		return c, errors.NotFoundID("extraction", extractionID)
	}
	if ex.Status != domain.ExtractionStatusPending {
		return c, errors.Validation(map[string]string{
			"status": fmt.Sprintf("extraction is %s; only pending extractions can be confirmed", ex.Status),
		})
	}

	out := c.Clone()
	upd := out.FindExtraction(extractionID)
	upd.Status = domain.ExtractionStatusConfirmed

	confidence := upd.Confidence
	e.upsertField(&out, domain.FieldValue{
		Key:        upd.FieldKey,
		Value:      upd.SuggestedValue,
		Status:     domain.FieldStatusConfirmed,
		Sources:    append([]string(nil), upd.SourceEvidenceIDs...),
		Confidence: &confidence,
		UpdatedBy:  actorName,
	})
	out.UpdatedAt = e.now()
	return out, nil
}

// DismissExtraction transitions a pending extraction to dismissed. No field
// value is touched. Dismissed is terminal.
func (e *Engine) DismissExtraction(c domain.Case, extractionID string) (domain.Case, error) {
	ex := c.FindExtraction(extractionID)
	if ex == nil {
		return c, errors.NotFoundID("extraction", extractionID)
	}
	if ex.Status != domain.ExtractionStatusPending {
		return c, errors.Validation(map[string]string{
			"status": fmt.Sprintf("extraction is %s; only pending extractions can be dismissed", ex.Status),
		})
	}

	out := c.Clone()
	out.FindExtraction(extractionID).Status = domain.ExtractionStatusDismissed
	out.UpdatedAt = e.now()
	return out, nil
}

// EditExtraction writes a field value with the user-supplied replacement text
// (status edited) and dismisses the extraction. This is the edit-then-dismiss
// flow: two primitives composed, not a new transition.
func (e *Engine) EditExtraction(c domain.Case, extractionID, newValue, actorName string) (domain.Case, error) {
	ex := c.FindExtraction(extractionID)
	if ex == nil {
		return c, errors.NotFoundID("extraction", extractionID)
	}
	if ex.Status != domain.ExtractionStatusPending {
		return c, errors.Validation(map[string]string{
			"status": fmt.Sprintf("extraction is %s; only pending extractions can be edited", ex.Status),
		})
	}

	out, err := e.EditField(c, ex.FieldKey, newValue, actorName)
	if err != nil {
		return c, err
	}
	return e.DismissExtraction(out, extractionID)
}

// upsertField overwrites the field value for fv.Key in place, or appends it.
// Keys stay unique within the collection; last write wins.
func (e *Engine) upsertField(c *domain.Case, fv domain.FieldValue) {
	fv.LastUpdated = e.now()
	for i := range c.FieldValues {
		if c.FieldValues[i].Key == fv.Key {
			c.FieldValues[i] = fv
			return
		}
	}
	c.FieldValues = append(c.FieldValues, fv)
}

// derivedCaseValue maps registry keys to case properties that can seed a
// confirmation without a prior field value.
func derivedCaseValue(c *domain.Case, key string) (string, bool) {
	switch key {
	case "case.bo":
		return c.BO, true
	case "case.natureza":
		return c.Natureza, true
	case "case.dataHoraFato":
		return c.DataHoraFato, true
	case "case.circunscricao":
		return c.Circunscricao, true
	case "case.unidade":
		return c.Unidade, true
	case "location.endereco":
		return c.Endereco, true
	case "location.cep":
		return c.CEP, true
	case "location.bairro":
		return c.Bairro, true
	case "location.cidade":
		return c.Cidade, true
	case "location.estado":
		return c.Estado, true
	}
	return "", false
}
