// Package service orchestrates case commands: apply the engine transition to
// the in-memory aggregate, record the audit entry, persist through the
// repository, then publish the event. Mutation and derivation never suspend;
// the only asynchronous boundary is the persistence call.
package service

import (
	"context"

	"github.com/caseflow/caseflow-backend/internal/casefile/derive"
	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/internal/casefile/engine"
	"github.com/caseflow/caseflow-backend/internal/casefile/repository"
	"github.com/caseflow/caseflow-backend/pkg/actor"
	"github.com/caseflow/caseflow-backend/pkg/logger"
)

// EventPublisher is the outbound event contract. Implementations must be
// fire-and-forget; publish failures never fail the mutation.
type EventPublisher interface {
	CaseCreated(ctx context.Context, c *domain.Case, actorName string)
	CaseUpdated(ctx context.Context, c *domain.Case, operation, actorName string)
	CaseDeleted(ctx context.Context, caseID, actorName string)
	FieldConfirmed(ctx context.Context, caseID, fieldKey, actorName string)
	ExtractionConfirmed(ctx context.Context, caseID string, ex *domain.AIExtraction, actorName string)
	PhotoAdded(ctx context.Context, caseID string, photo *domain.PhotoEvidence)
	ReportGenerated(ctx context.Context, caseID, reportType, fileName, actorName string)
}

// NoopPublisher satisfies EventPublisher when the broker is not configured
type NoopPublisher struct{}

func (NoopPublisher) CaseCreated(context.Context, *domain.Case, string)                   {}
func (NoopPublisher) CaseUpdated(context.Context, *domain.Case, string, string)          {}
func (NoopPublisher) CaseDeleted(context.Context, string, string)                        {}
func (NoopPublisher) FieldConfirmed(context.Context, string, string, string)             {}
func (NoopPublisher) ExtractionConfirmed(context.Context, string, *domain.AIExtraction, string) {
}
func (NoopPublisher) PhotoAdded(context.Context, string, *domain.PhotoEvidence)  {}
func (NoopPublisher) ReportGenerated(context.Context, string, string, string, string) {}

// CaseService handles case business logic
type CaseService struct {
	engine    *engine.Engine
	repo      *repository.CaseRepository
	publisher EventPublisher
	logger    *logger.Logger
}

// NewCaseService creates a new case service
func NewCaseService(eng *engine.Engine, repo *repository.CaseRepository, publisher EventPublisher, log *logger.Logger) *CaseService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &CaseService{
		engine:    eng,
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

// mutate loads the aggregate, applies the transition, records the audit
// entry and persists. On a persistence failure the mutated aggregate is
// returned together with the error: the in-memory state remains the
// session's source of truth and the caller decides whether to retry or
// discard. The service never retries.
func (s *CaseService) mutate(ctx context.Context, caseID, operation string, details map[string]string, fn func(c domain.Case, actorName string) (domain.Case, error)) (domain.Case, error) {
	actorName := actor.FromContext(ctx).DisplayName()

	c, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return domain.Case{}, err
	}

	updated, err := fn(c, actorName)
	if err != nil {
		return domain.Case{}, err
	}

	updated, err = s.engine.AddAuditEvent(updated, operation, details, actorName)
	if err != nil {
		return domain.Case{}, err
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		s.logger.Error().Err(err).
			Str("case_id", caseID).
			Str("operation", operation).
			Msg("failed to persist case mutation")
		return updated, err
	}

	s.publisher.CaseUpdated(ctx, &updated, operation, actorName)
	return updated, nil
}

// CreateCase constructs and persists a new case. The BO number is required.
func (s *CaseService) CreateCase(ctx context.Context, bo string, meta engine.MetadataUpdate) (domain.Case, error) {
	actorName := actor.FromContext(ctx).DisplayName()

	c, err := s.engine.CreateCase(bo)
	if err != nil {
		return domain.Case{}, err
	}

	c, err = s.engine.UpdateMetadata(c, meta)
	if err != nil {
		return domain.Case{}, err
	}

	c, err = s.engine.AddAuditEvent(c, "case.created", map[string]string{"bo": bo}, actorName)
	if err != nil {
		return domain.Case{}, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return domain.Case{}, err
	}

	s.publisher.CaseCreated(ctx, &c, actorName)
	return c, nil
}

// ListCases returns all cases from the active provider
func (s *CaseService) ListCases(ctx context.Context) ([]domain.Case, error) {
	return s.repo.List(ctx)
}

// GetCase returns one case
func (s *CaseService) GetCase(ctx context.Context, id string) (domain.Case, error) {
	return s.repo.Get(ctx, id)
}

// DeleteCase removes the case and its embedded uploads
func (s *CaseService) DeleteCase(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.CaseDeleted(ctx, id, actor.FromContext(ctx).DisplayName())
	return nil
}

// UpdateMetadata applies a partial update to the case's top-level metadata
func (s *CaseService) UpdateMetadata(ctx context.Context, caseID string, upd engine.MetadataUpdate) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.metadata.updated", nil, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.UpdateMetadata(c, upd)
	})
}

// SetStatus changes the case lifecycle status
func (s *CaseService) SetStatus(ctx context.Context, caseID string, status domain.CaseStatus) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.status.changed", map[string]string{"status": string(status)}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.SetStatus(c, status)
	})
}

// AddTeamMember adds an officer to the case team
func (s *CaseService) AddTeamMember(ctx context.Context, caseID, role, name, badge string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.team.added", map[string]string{"name": name}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.AddTeamMember(c, role, name, badge)
	})
}

// RemoveTeamMember removes an officer from the case team
func (s *CaseService) RemoveTeamMember(ctx context.Context, caseID, memberID string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.team.removed", map[string]string{"member_id": memberID}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.RemoveTeamMember(c, memberID)
	})
}

// AddTimelineEvent appends an event to the case timeline
func (s *CaseService) AddTimelineEvent(ctx context.Context, caseID, eventType, label, description string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.event.added", map[string]string{"label": label}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.AddTimelineEvent(c, eventType, label, description)
	})
}

// SetFieldValue upserts a recognition field value
func (s *CaseService) SetFieldValue(ctx context.Context, caseID, key, value string, status domain.FieldStatus) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.field.set", map[string]string{"key": key}, func(c domain.Case, actorName string) (domain.Case, error) {
		return s.engine.SetFieldValue(c, key, value, status, actorName)
	})
}

// ConfirmField confirms a field value
func (s *CaseService) ConfirmField(ctx context.Context, caseID, key string) (domain.Case, error) {
	c, err := s.mutate(ctx, caseID, "case.field.confirmed", map[string]string{"key": key}, func(c domain.Case, actorName string) (domain.Case, error) {
		return s.engine.ConfirmField(c, key, actorName)
	})
	if err != nil {
		return c, err
	}
	s.publisher.FieldConfirmed(ctx, caseID, key, actor.FromContext(ctx).DisplayName())
	return c, nil
}

// EditField overwrites a field value with status edited
func (s *CaseService) EditField(ctx context.Context, caseID, key, newValue string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.field.edited", map[string]string{"key": key}, func(c domain.Case, actorName string) (domain.Case, error) {
		return s.engine.EditField(c, key, newValue, actorName)
	})
}

// AddExtraction records an AI extraction suggestion on the case
func (s *CaseService) AddExtraction(ctx context.Context, caseID, fieldKey, suggestedValue string, confidence float64, sourceEvidenceIDs []string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.extraction.added", map[string]string{"key": fieldKey}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.AddExtraction(c, fieldKey, suggestedValue, confidence, sourceEvidenceIDs)
	})
}

// ConfirmExtraction confirms a pending extraction, cascading its suggested
// value into the field values.
func (s *CaseService) ConfirmExtraction(ctx context.Context, caseID, extractionID string) (domain.Case, error) {
	c, err := s.mutate(ctx, caseID, "case.extraction.confirmed", map[string]string{"extraction_id": extractionID}, func(c domain.Case, actorName string) (domain.Case, error) {
		return s.engine.ConfirmExtraction(c, extractionID, actorName)
	})
	if err != nil {
		return c, err
	}
	if ex := c.FindExtraction(extractionID); ex != nil {
		s.publisher.ExtractionConfirmed(ctx, caseID, ex, actor.FromContext(ctx).DisplayName())
	}
	return c, nil
}

// DismissExtraction dismisses a pending extraction
func (s *CaseService) DismissExtraction(ctx context.Context, caseID, extractionID string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.extraction.dismissed", map[string]string{"extraction_id": extractionID}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.DismissExtraction(c, extractionID)
	})
}

// EditExtraction writes the user-supplied replacement value and dismisses
// the extraction.
func (s *CaseService) EditExtraction(ctx context.Context, caseID, extractionID, newValue string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.extraction.edited", map[string]string{"extraction_id": extractionID}, func(c domain.Case, actorName string) (domain.Case, error) {
		return s.engine.EditExtraction(c, extractionID, newValue, actorName)
	})
}

// AddPhoto attaches a photo with its AI-suggested classification
func (s *CaseService) AddPhoto(ctx context.Context, caseID, fileName, fileData, mimeType string, suggestedCategory domain.PhotoCategory, confidence float64, tags []string) (domain.Case, error) {
	c, err := s.mutate(ctx, caseID, "case.photo.added", map[string]string{"file_name": fileName}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.AddPhoto(c, fileName, fileData, mimeType, suggestedCategory, confidence, tags)
	})
	if err != nil {
		return c, err
	}
	if len(c.Photos) > 0 {
		s.publisher.PhotoAdded(ctx, caseID, &c.Photos[len(c.Photos)-1])
	}
	return c, nil
}

// ConfirmPhotoCategory confirms or overrides a photo's category
func (s *CaseService) ConfirmPhotoCategory(ctx context.Context, caseID, photoID string, category domain.PhotoCategory) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.photo.category.confirmed", map[string]string{"photo_id": photoID, "category": string(category)}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.ConfirmPhotoCategory(c, photoID, category)
	})
}

// UpdatePhotoTags replaces a photo's tags
func (s *CaseService) UpdatePhotoTags(ctx context.Context, caseID, photoID string, tags []string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.photo.tags.updated", map[string]string{"photo_id": photoID}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.UpdatePhotoTags(c, photoID, tags)
	})
}

// RemovePhoto deletes a photo from the case
func (s *CaseService) RemovePhoto(ctx context.Context, caseID, photoID string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.photo.removed", map[string]string{"photo_id": photoID}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.RemovePhoto(c, photoID)
	})
}

// SetPhotoReportSelection replaces the photo report selection
func (s *CaseService) SetPhotoReportSelection(ctx context.Context, caseID string, selection []domain.SelectedPhoto) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.photo_report.selection", nil, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.SetPhotoReportSelection(c, selection)
	})
}

// SetPhotoCaption sets the caption of one selected photo
func (s *CaseService) SetPhotoCaption(ctx context.Context, caseID, photoID, caption string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.photo_report.caption", map[string]string{"photo_id": photoID}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.SetPhotoCaption(c, photoID, caption)
	})
}

// ConfigurePhotoReport sets the photo report layout options
func (s *CaseService) ConfigurePhotoReport(ctx context.Context, caseID string, layout domain.ReportLayout, includeCover, includeHeaderFooter bool) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.photo_report.configured", nil, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.ConfigurePhotoReport(c, layout, includeCover, includeHeaderFooter)
	})
}

// UpdateReportBlock updates an investigation report block
func (s *CaseService) UpdateReportBlock(ctx context.Context, caseID, blockID, content string, referencedFieldKeys, referencedPhotoIDs []string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.block.updated", map[string]string{"block_id": blockID}, func(c domain.Case, actorName string) (domain.Case, error) {
		return s.engine.UpdateReportBlock(c, blockID, content, referencedFieldKeys, referencedPhotoIDs, actorName)
	})
}

// SetBlockAIGenerated replaces a block's content with generated text
func (s *CaseService) SetBlockAIGenerated(ctx context.Context, caseID, blockID, content string, referencedFieldKeys, referencedPhotoIDs []string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.block.generated", map[string]string{"block_id": blockID}, func(c domain.Case, actorName string) (domain.Case, error) {
		return s.engine.SetBlockAIGenerated(c, blockID, content, referencedFieldKeys, referencedPhotoIDs, actorName)
	})
}

// ConfirmBlockContent confirms an ai_generated block
func (s *CaseService) ConfirmBlockContent(ctx context.Context, caseID, blockID string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.block.confirmed", map[string]string{"block_id": blockID}, func(c domain.Case, actorName string) (domain.Case, error) {
		return s.engine.ConfirmBlockContent(c, blockID, actorName)
	})
}

// AddBlockReferences adds references to a report block
func (s *CaseService) AddBlockReferences(ctx context.Context, caseID, blockID string, fieldKeys, photoIDs []string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.block.references.added", map[string]string{"block_id": blockID}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.AddBlockReferences(c, blockID, fieldKeys, photoIDs)
	})
}

// RemoveBlockReferences removes references from a report block
func (s *CaseService) RemoveBlockReferences(ctx context.Context, caseID, blockID string, fieldKeys, photoIDs []string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.block.references.removed", map[string]string{"block_id": blockID}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.RemoveBlockReferences(c, blockID, fieldKeys, photoIDs)
	})
}

// UpdateSignatures replaces the report signature section
func (s *CaseService) UpdateSignatures(ctx context.Context, caseID string, sig domain.ReportSignatures) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.signatures.updated", nil, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.UpdateSignatures(c, sig)
	})
}

// RecordGeneratedPDF registers a rendered report document on the case
func (s *CaseService) RecordGeneratedPDF(ctx context.Context, caseID, reportType, fileName string) (domain.Case, error) {
	c, err := s.mutate(ctx, caseID, "case.pdf.generated", map[string]string{"report_type": reportType, "file_name": fileName}, func(c domain.Case, actorName string) (domain.Case, error) {
		return s.engine.RecordGeneratedPDF(c, reportType, fileName, actorName)
	})
	if err != nil {
		return c, err
	}
	s.publisher.ReportGenerated(ctx, caseID, reportType, fileName, actor.FromContext(ctx).DisplayName())
	return c, nil
}

// MarkSectionComplete marks a recognition section done
func (s *CaseService) MarkSectionComplete(ctx context.Context, caseID, sectionID string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.section.completed", map[string]string{"section_id": sectionID}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.MarkSectionComplete(c, sectionID)
	})
}

// UnmarkSectionComplete removes a recognition section from the completed list
func (s *CaseService) UnmarkSectionComplete(ctx context.Context, caseID, sectionID string) (domain.Case, error) {
	return s.mutate(ctx, caseID, "case.section.reopened", map[string]string{"section_id": sectionID}, func(c domain.Case, _ string) (domain.Case, error) {
		return s.engine.UnmarkSectionComplete(c, sectionID)
	})
}

// Progress returns all progress figures for a case
func (s *CaseService) Progress(ctx context.Context, caseID string) (derive.Progress, error) {
	c, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return derive.Progress{}, err
	}
	return derive.CalculateProgress(&c), nil
}

// Alerts returns the alerts derived from the case's current state
func (s *CaseService) Alerts(ctx context.Context, caseID string) ([]derive.Alert, error) {
	c, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return derive.Alerts(&c), nil
}
