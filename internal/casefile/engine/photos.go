package engine

import (
	"fmt"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/pkg/errors"
)

// AddPhoto attaches a photo to the case. The suggested category and confidence
// come from the external classification process; the engine only records them.
func (e *Engine) AddPhoto(c domain.Case, fileName, fileData, mimeType string, suggestedCategory domain.PhotoCategory, confidence float64, tags []string) (domain.Case, error) {
	if fileName == "" {
		return c, errors.Validation(map[string]string{"fileName": "must not be empty"})
	}
	if suggestedCategory != "" && !domain.ValidPhotoCategory(suggestedCategory) {
		return c, errors.Validation(map[string]string{
			"suggestedCategory": fmt.Sprintf("unknown category %q", suggestedCategory),
		})
	}
	if confidence < 0 || confidence > 1 {
		return c, errors.Validation(map[string]string{
			"confidence": "must be between 0 and 1",
		})
	}

	out := c.Clone()
	out.Photos = append(out.Photos, domain.PhotoEvidence{
		ID:                e.newID(),
		FileName:          fileName,
		FileData:          fileData,
		MimeType:          mimeType,
		SuggestedCategory: suggestedCategory,
		Confidence:        confidence,
		Tags:              append([]string(nil), tags...),
	})
	out.UpdatedAt = e.now()
	return out, nil
}

// ConfirmPhotoCategory confirms (or overrides) a photo's category. Setting a
// confirmed category is the only way Confirmed becomes true.
func (e *Engine) ConfirmPhotoCategory(c domain.Case, photoID string, category domain.PhotoCategory) (domain.Case, error) {
	if !domain.ValidPhotoCategory(category) {
		return c, errors.Validation(map[string]string{
			"category": fmt.Sprintf("unknown category %q", category),
		})
	}
	if c.FindPhoto(photoID) == nil {
		return c, errors.NotFoundID("photo", photoID)
	}

	out := c.Clone()
	photo := out.FindPhoto(photoID)
	photo.ConfirmedCategory = category
	photo.Confirmed = true
	out.UpdatedAt = e.now()
	return out, nil
}

// UpdatePhotoTags replaces a photo's tag list
func (e *Engine) UpdatePhotoTags(c domain.Case, photoID string, tags []string) (domain.Case, error) {
	if c.FindPhoto(photoID) == nil {
		return c, errors.NotFoundID("photo", photoID)
	}

	out := c.Clone()
	out.FindPhoto(photoID).Tags = append([]string(nil), tags...)
	out.UpdatedAt = e.now()
	return out, nil
}

// RemovePhoto deletes a photo from the case and prunes it from the photo
// report selection, renumbering the remaining entries so order stays dense.
func (e *Engine) RemovePhoto(c domain.Case, photoID string) (domain.Case, error) {
	if c.FindPhoto(photoID) == nil {
		return c, errors.NotFoundID("photo", photoID)
	}

	out := c.Clone()
	for i := range out.Photos {
		if out.Photos[i].ID == photoID {
			out.Photos = append(out.Photos[:i], out.Photos[i+1:]...)
			break
		}
	}

	selected := out.PhotoReport.SelectedPhotos[:0]
	for _, sp := range out.PhotoReport.SelectedPhotos {
		if sp.PhotoID != photoID {
			selected = append(selected, sp)
		}
	}
	out.PhotoReport.SelectedPhotos = renumber(selected)
	out.PhotoReport.LastUpdated = e.now()
	out.UpdatedAt = e.now()
	return out, nil
}

// SetPhotoReportSelection replaces the photo report selection wholesale.
// Order values on the input are ignored; the engine always re-derives a dense
// 0-based order from list position, so callers are order-agnostic.
func (e *Engine) SetPhotoReportSelection(c domain.Case, selection []domain.SelectedPhoto) (domain.Case, error) {
	seen := make(map[string]bool, len(selection))
	for _, sp := range selection {
		if c.FindPhoto(sp.PhotoID) == nil {
			return c, errors.Validation(map[string]string{
				"photoId": fmt.Sprintf("photo %q is not part of this case", sp.PhotoID),
			})
		}
		if seen[sp.PhotoID] {
			return c, errors.Validation(map[string]string{
				"photoId": fmt.Sprintf("photo %q selected more than once", sp.PhotoID),
			})
		}
		seen[sp.PhotoID] = true
	}

	out := c.Clone()
	out.PhotoReport.SelectedPhotos = renumber(append([]domain.SelectedPhoto(nil), selection...))
	out.PhotoReport.LastUpdated = e.now()
	out.UpdatedAt = e.now()
	return out, nil
}

// SetPhotoCaption sets the caption of one selected photo
func (e *Engine) SetPhotoCaption(c domain.Case, photoID, caption string) (domain.Case, error) {
	out := c.Clone()
	for i := range out.PhotoReport.SelectedPhotos {
		if out.PhotoReport.SelectedPhotos[i].PhotoID == photoID {
			out.PhotoReport.SelectedPhotos[i].Caption = caption
			out.PhotoReport.LastUpdated = e.now()
			out.UpdatedAt = e.now()
			return out, nil
		}
	}
	return c, errors.NotFoundID("selected photo", photoID)
}

// ConfigurePhotoReport sets the layout options of the photo report
func (e *Engine) ConfigurePhotoReport(c domain.Case, layout domain.ReportLayout, includeCover, includeHeaderFooter bool) (domain.Case, error) {
	if layout != domain.LayoutOnePerPage && layout != domain.LayoutTwoPerPage {
		return c, errors.Validation(map[string]string{
			"layout": fmt.Sprintf("unknown layout %q", layout),
		})
	}

	out := c.Clone()
	out.PhotoReport.Layout = layout
	out.PhotoReport.IncludeCover = includeCover
	out.PhotoReport.IncludeHeaderFooter = includeHeaderFooter
	out.PhotoReport.LastUpdated = e.now()
	out.UpdatedAt = e.now()
	return out, nil
}

// renumber assigns dense 0-based order values by list position
func renumber(selection []domain.SelectedPhoto) []domain.SelectedPhoto {
	for i := range selection {
		selection[i].Order = i
	}
	if selection == nil {
		selection = []domain.SelectedPhoto{}
	}
	return selection
}
