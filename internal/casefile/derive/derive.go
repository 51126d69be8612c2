// Package derive computes display state from a case aggregate: progress
// percentages per report type and alerts for gaps in the collected data.
// Every function is pure (same case in, same result out, no I/O, no
// mutation) and is recomputed on demand, never cached on the aggregate.
package derive

import (
	"fmt"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/internal/casefile/registry"
)

// Content below this length does not count a report block as filled
const blockContentThreshold = 50

// Confidence below this marks an unreviewed suggestion as low-confidence
const lowConfidenceThreshold = 0.6

// AlertType distinguishes alert severities
type AlertType string

const (
	AlertWarning AlertType = "warning"
	AlertError   AlertType = "error"
)

// Alert flags a gap in the current case state
type Alert struct {
	Type    AlertType `json:"type"`
	Message string    `json:"message"`
}

// Progress bundles all three report progress figures
type Progress struct {
	Recognition   int `json:"recognition"`
	PhotoReport   int `json:"photoReport"`
	Investigation int `json:"investigation"`
}

// CalculateProgress computes every progress figure at once
func CalculateProgress(c *domain.Case) Progress {
	return Progress{
		Recognition:   RecognitionProgress(c),
		PhotoReport:   PhotoReportProgress(c),
		Investigation: InvestigationProgress(c),
	}
}

// RecognitionProgress is the percentage of registry section fields whose
// value is confirmed or edited, out of all fields across all sections.
func RecognitionProgress(c *domain.Case) int {
	keys := registry.AllSectionFieldKeys()
	if len(keys) == 0 {
		return 0
	}

	complete := 0
	for _, key := range keys {
		fv := c.FindFieldValue(key)
		if fv == nil {
			continue
		}
		if fv.Status == domain.FieldStatusConfirmed || fv.Status == domain.FieldStatusEdited {
			complete++
		}
	}

	return complete * 100 / len(keys)
}

// PhotoReportProgress measures completeness of the photo report config.
// Half the weight is having any selection at all, half is captioning it:
// captioning a blank entry never lowers the figure, and clearing the
// selection always yields 0.
func PhotoReportProgress(c *domain.Case) int {
	selected := c.PhotoReport.SelectedPhotos
	if len(selected) == 0 {
		return 0
	}

	captioned := 0
	for _, sp := range selected {
		if sp.Caption != "" {
			captioned++
		}
	}

	return 50 + captioned*50/len(selected)
}

// InvestigationProgress is the percentage of the seven report blocks whose
// content exceeds the minimum-content threshold, independent of block status.
func InvestigationProgress(c *domain.Case) int {
	if len(c.ReportBlocks) == 0 {
		return 0
	}

	filled := 0
	for _, b := range c.ReportBlocks {
		if len(b.Content) > blockContentThreshold {
			filled++
		}
	}

	return filled * 100 / len(c.ReportBlocks)
}

// Required photo categories: a case without a confirmed photo in one of these
// gets a warning.
var requiredPhotoCategories = []domain.PhotoCategory{
	domain.PhotoCategoryPanoramica,
	domain.PhotoCategoryVestigios,
}

// Alerts scans the aggregate for gaps. Pure function of the current state.
func Alerts(c *domain.Case) []Alert {
	var alerts []Alert

	if c.DataHoraFato == "" {
		alerts = append(alerts, Alert{
			Type:    AlertError,
			Message: "data e hora do fato não informadas",
		})
	}

	for _, category := range requiredPhotoCategories {
		if !hasConfirmedPhoto(c, category) {
			alerts = append(alerts, Alert{
				Type:    AlertWarning,
				Message: fmt.Sprintf("nenhuma foto confirmada na categoria %s", category),
			})
		}
	}

	for _, fv := range c.FieldValues {
		if fv.Status == domain.FieldStatusSuggested && fv.Confidence != nil && *fv.Confidence < lowConfidenceThreshold {
			alerts = append(alerts, Alert{
				Type:    AlertWarning,
				Message: fmt.Sprintf("campo %s sugerido com baixa confiança", fieldLabel(fv.Key)),
			})
		}
	}

	pending := 0
	for _, ex := range c.AIExtractions {
		if ex.Status == domain.ExtractionStatusPending {
			pending++
		}
	}
	if pending > 0 {
		alerts = append(alerts, Alert{
			Type:    AlertWarning,
			Message: fmt.Sprintf("%d sugestões de extração aguardando revisão", pending),
		})
	}

	if len(c.Team) == 0 {
		alerts = append(alerts, Alert{
			Type:    AlertWarning,
			Message: "nenhum integrante na equipe do caso",
		})
	}

	if c.Status == domain.CaseStatusFinalized && InvestigationProgress(c) < 100 {
		alerts = append(alerts, Alert{
			Type:    AlertError,
			Message: "caso finalizado com relatório de investigação incompleto",
		})
	}

	return alerts
}

func hasConfirmedPhoto(c *domain.Case, category domain.PhotoCategory) bool {
	for _, p := range c.Photos {
		if p.Confirmed && p.ConfirmedCategory == category {
			return true
		}
	}
	return false
}

// fieldLabel falls back to the raw key for unknown fields
func fieldLabel(key string) string {
	if def, ok := registry.FieldByKey(key); ok {
		return def.Label
	}
	return key
}
