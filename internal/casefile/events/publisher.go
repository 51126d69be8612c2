// Package events publishes case lifecycle events to the case.events exchange.
// Publishing is fire-and-forget: a broker failure is logged, never surfaced
// to the mutation path.
package events

import (
	"context"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/pkg/logger"
	"github.com/caseflow/caseflow-backend/pkg/messaging"
)

// CaseEventPublisher publishes case-related events
type CaseEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewCaseEventPublisher creates a new case event publisher
func NewCaseEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*CaseEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeCaseEvents, "case-service", log)
	if err != nil {
		return nil, err
	}

	return &CaseEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// CaseCreated publishes a case created event
func (p *CaseEventPublisher) CaseCreated(ctx context.Context, c *domain.Case, actorName string) {
	data := messaging.CaseCreatedEvent{
		CaseID: c.ID,
		BO:     c.BO,
		Actor:  actorName,
	}

	if err := p.publisher.Publish(ctx, messaging.EventCaseCreated, data); err != nil {
		p.logger.Error().Err(err).Str("case_id", c.ID).Msg("failed to publish case created event")
	}
}

// CaseUpdated publishes a case updated event naming the operation applied
func (p *CaseEventPublisher) CaseUpdated(ctx context.Context, c *domain.Case, operation, actorName string) {
	data := messaging.CaseUpdatedEvent{
		CaseID:    c.ID,
		BO:        c.BO,
		Operation: operation,
		Actor:     actorName,
	}

	if err := p.publisher.Publish(ctx, messaging.EventCaseUpdated, data); err != nil {
		p.logger.Error().Err(err).Str("case_id", c.ID).Str("operation", operation).Msg("failed to publish case updated event")
	}
}

// CaseDeleted publishes a case deleted event
func (p *CaseEventPublisher) CaseDeleted(ctx context.Context, caseID, actorName string) {
	data := messaging.CaseDeletedEvent{
		CaseID: caseID,
		Actor:  actorName,
	}

	if err := p.publisher.Publish(ctx, messaging.EventCaseDeleted, data); err != nil {
		p.logger.Error().Err(err).Str("case_id", caseID).Msg("failed to publish case deleted event")
	}
}

// FieldConfirmed publishes a field confirmed event
func (p *CaseEventPublisher) FieldConfirmed(ctx context.Context, caseID, fieldKey, actorName string) {
	data := messaging.FieldConfirmedEvent{
		CaseID:   caseID,
		FieldKey: fieldKey,
		Actor:    actorName,
	}

	if err := p.publisher.Publish(ctx, messaging.EventFieldConfirmed, data); err != nil {
		p.logger.Error().Err(err).Str("case_id", caseID).Str("field_key", fieldKey).Msg("failed to publish field confirmed event")
	}
}

// ExtractionConfirmed publishes an extraction confirmed event
func (p *CaseEventPublisher) ExtractionConfirmed(ctx context.Context, caseID string, ex *domain.AIExtraction, actorName string) {
	data := messaging.ExtractionConfirmedEvent{
		CaseID:       caseID,
		ExtractionID: ex.ID,
		FieldKey:     ex.FieldKey,
		Confidence:   ex.Confidence,
		Actor:        actorName,
	}

	if err := p.publisher.Publish(ctx, messaging.EventExtractionConfirmed, data); err != nil {
		p.logger.Error().Err(err).Str("case_id", caseID).Str("extraction_id", ex.ID).Msg("failed to publish extraction confirmed event")
	}
}

// PhotoAdded publishes a photo added event
func (p *CaseEventPublisher) PhotoAdded(ctx context.Context, caseID string, photo *domain.PhotoEvidence) {
	data := messaging.PhotoAddedEvent{
		CaseID:            caseID,
		PhotoID:           photo.ID,
		SuggestedCategory: string(photo.SuggestedCategory),
		Confidence:        photo.Confidence,
	}

	if err := p.publisher.Publish(ctx, messaging.EventPhotoAdded, data); err != nil {
		p.logger.Error().Err(err).Str("case_id", caseID).Str("photo_id", photo.ID).Msg("failed to publish photo added event")
	}
}

// ReportGenerated publishes a report generated event
func (p *CaseEventPublisher) ReportGenerated(ctx context.Context, caseID, reportType, fileName, actorName string) {
	data := messaging.ReportGeneratedEvent{
		CaseID:     caseID,
		ReportType: reportType,
		FileName:   fileName,
		Actor:      actorName,
	}

	if err := p.publisher.Publish(ctx, messaging.EventReportGenerated, data); err != nil {
		p.logger.Error().Err(err).Str("case_id", caseID).Str("report_type", reportType).Msg("failed to publish report generated event")
	}
}
