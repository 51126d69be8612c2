package engine

import (
	"fmt"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/internal/casefile/registry"
	"github.com/caseflow/caseflow-backend/pkg/errors"
)

// UpdateReportBlock sets a block's content and, when supplied, its references.
// Status rules:
//   - changing the content of an ai_generated or confirmed block reverts it to
//     draft (editing invalidates the generated/confirmed provenance)
//   - writing non-empty content into an empty block makes it draft
//   - otherwise the status is left untouched
//
// This operation never sets ai_generated or confirmed itself. Passing nil for
// a reference list keeps the existing references.
func (e *Engine) UpdateReportBlock(c domain.Case, blockID, content string, referencedFieldKeys, referencedPhotoIDs []string, actorName string) (domain.Case, error) {
	if c.FindBlock(blockID) == nil {
		return c, errors.NotFoundID("report block", blockID)
	}

	out := c.Clone()
	block := out.FindBlock(blockID)

	contentChanged := content != block.Content
	switch {
	case contentChanged && (block.Status == domain.BlockStatusAIGenerated || block.Status == domain.BlockStatusConfirmed):
		block.Status = domain.BlockStatusDraft
	case block.Status == domain.BlockStatusEmpty && content != "":
		block.Status = domain.BlockStatusDraft
	}

	block.Content = content
	if referencedFieldKeys != nil {
		block.ReferencedFieldKeys = append([]string(nil), referencedFieldKeys...)
	}
	if referencedPhotoIDs != nil {
		block.ReferencedPhotoIDs = append([]string(nil), referencedPhotoIDs...)
	}
	block.LastUpdated = e.now()
	block.UpdatedBy = actorName
	out.UpdatedAt = e.now()
	return out, nil
}

// SetBlockAIGenerated replaces a block's content wholesale with generated text
// and records which field keys and photo ids were used. The caller supplies
// the reference lists; the engine does not compute them.
func (e *Engine) SetBlockAIGenerated(c domain.Case, blockID, content string, referencedFieldKeys, referencedPhotoIDs []string, actorName string) (domain.Case, error) {
	if c.FindBlock(blockID) == nil {
		return c, errors.NotFoundID("report block", blockID)
	}

	out := c.Clone()
	block := out.FindBlock(blockID)
	block.Content = content
	block.Status = domain.BlockStatusAIGenerated
	block.ReferencedFieldKeys = append([]string(nil), referencedFieldKeys...)
	block.ReferencedPhotoIDs = append([]string(nil), referencedPhotoIDs...)
	block.LastUpdated = e.now()
	block.UpdatedBy = actorName
	out.UpdatedAt = e.now()
	return out, nil
}

// ConfirmBlockContent confirms an ai_generated block. Valid only from
// ai_generated; confirmed is terminal for that content.
func (e *Engine) ConfirmBlockContent(c domain.Case, blockID, actorName string) (domain.Case, error) {
	block := c.FindBlock(blockID)
	if block == nil {
		return c, errors.NotFoundID("report block", blockID)
	}
	if block.Status != domain.BlockStatusAIGenerated {
		return c, errors.Validation(map[string]string{
			"status": fmt.Sprintf("block is %s; only ai_generated blocks can be confirmed", block.Status),
		})
	}

	out := c.Clone()
	upd := out.FindBlock(blockID)
	upd.Status = domain.BlockStatusConfirmed
	upd.LastUpdated = e.now()
	upd.UpdatedBy = actorName
	out.UpdatedAt = e.now()
	return out, nil
}

// AddBlockReferences adds field-key and photo-id references to a block without
// touching its content or status. References are mutable independent of content.
func (e *Engine) AddBlockReferences(c domain.Case, blockID string, fieldKeys, photoIDs []string) (domain.Case, error) {
	if c.FindBlock(blockID) == nil {
		return c, errors.NotFoundID("report block", blockID)
	}

	out := c.Clone()
	block := out.FindBlock(blockID)
	block.ReferencedFieldKeys = appendMissing(block.ReferencedFieldKeys, fieldKeys)
	block.ReferencedPhotoIDs = appendMissing(block.ReferencedPhotoIDs, photoIDs)
	block.LastUpdated = e.now()
	out.UpdatedAt = e.now()
	return out, nil
}

// RemoveBlockReferences removes field-key and photo-id references from a block
func (e *Engine) RemoveBlockReferences(c domain.Case, blockID string, fieldKeys, photoIDs []string) (domain.Case, error) {
	if c.FindBlock(blockID) == nil {
		return c, errors.NotFoundID("report block", blockID)
	}

	out := c.Clone()
	block := out.FindBlock(blockID)
	block.ReferencedFieldKeys = removeAll(block.ReferencedFieldKeys, fieldKeys)
	block.ReferencedPhotoIDs = removeAll(block.ReferencedPhotoIDs, photoIDs)
	block.LastUpdated = e.now()
	out.UpdatedAt = e.now()
	return out, nil
}

// UpdateSignatures replaces the report signature section
func (e *Engine) UpdateSignatures(c domain.Case, sig domain.ReportSignatures) (domain.Case, error) {
	out := c.Clone()
	out.Signatures = domain.ReportSignatures{
		Signers:  append([]domain.Signer(nil), sig.Signers...),
		Location: sig.Location,
		Date:     sig.Date,
	}
	out.UpdatedAt = e.now()
	return out, nil
}

// RecordGeneratedPDF appends metadata for a rendered report document.
// Rendering is an external concern and must not mutate the case; the calling
// screen records the audit trail via an explicit AddAuditEvent.
func (e *Engine) RecordGeneratedPDF(c domain.Case, reportType, fileName, actorName string) (domain.Case, error) {
	if reportType == "" {
		return c, errors.Validation(map[string]string{"reportType": "must not be empty"})
	}

	out := c.Clone()
	out.GeneratedPDFs = append(out.GeneratedPDFs, domain.GeneratedPDF{
		ID:          e.newID(),
		ReportType:  reportType,
		FileName:    fileName,
		GeneratedAt: e.now(),
		GeneratedBy: actorName,
	})
	out.UpdatedAt = e.now()
	return out, nil
}

// MarkSectionComplete marks a recognition section as done. Marking an already
// complete section is a no-op.
func (e *Engine) MarkSectionComplete(c domain.Case, sectionID string) (domain.Case, error) {
	if !registry.HasSection(sectionID) {
		return c, errors.Validation(map[string]string{
			"sectionId": fmt.Sprintf("unknown section %q", sectionID),
		})
	}
	if c.SectionCompleted(sectionID) {
		return c, nil
	}

	out := c.Clone()
	out.Recognition.CompletedSections = append(out.Recognition.CompletedSections, sectionID)
	out.Recognition.LastUpdated = e.now()
	out.UpdatedAt = e.now()
	return out, nil
}

// UnmarkSectionComplete removes a recognition section from the completed list
func (e *Engine) UnmarkSectionComplete(c domain.Case, sectionID string) (domain.Case, error) {
	if !registry.HasSection(sectionID) {
		return c, errors.Validation(map[string]string{
			"sectionId": fmt.Sprintf("unknown section %q", sectionID),
		})
	}

	out := c.Clone()
	out.Recognition.CompletedSections = removeAll(out.Recognition.CompletedSections, []string{sectionID})
	out.Recognition.LastUpdated = e.now()
	out.UpdatedAt = e.now()
	return out, nil
}

func appendMissing(dst, add []string) []string {
	for _, v := range add {
		found := false
		for _, existing := range dst {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}

func removeAll(src, drop []string) []string {
	if len(drop) == 0 {
		return src
	}
	out := src[:0]
	for _, v := range src {
		remove := false
		for _, d := range drop {
			if v == d {
				remove = true
				break
			}
		}
		if !remove {
			out = append(out, v)
		}
	}
	return out
}
