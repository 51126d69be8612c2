package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// Case lifecycle events
	EventCaseCreated = "case.created"
	EventCaseUpdated = "case.updated"
	EventCaseDeleted = "case.deleted"

	// Field events
	EventFieldConfirmed = "case.field.confirmed"
	EventFieldEdited    = "case.field.edited"

	// AI extraction events
	EventExtractionConfirmed = "case.extraction.confirmed"
	EventExtractionDismissed = "case.extraction.dismissed"

	// Photo events
	EventPhotoAdded             = "case.photo.added"
	EventPhotoRemoved           = "case.photo.removed"
	EventPhotoCategoryConfirmed = "case.photo.category.confirmed"

	// Report events
	EventReportGenerated = "case.report.generated"
)

// Exchange names
const (
	ExchangeCaseEvents = "case.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// CaseCreatedEvent is published when a case is created
type CaseCreatedEvent struct {
	CaseID string `json:"case_id"`
	BO     string `json:"bo"`
	Actor  string `json:"actor"`
}

// CaseUpdatedEvent is published when a case aggregate is persisted after a mutation
type CaseUpdatedEvent struct {
	CaseID    string `json:"case_id"`
	BO        string `json:"bo"`
	Operation string `json:"operation"`
	Actor     string `json:"actor"`
}

// CaseDeletedEvent is published when a case is deleted
type CaseDeletedEvent struct {
	CaseID string `json:"case_id"`
	Actor  string `json:"actor"`
}

// FieldConfirmedEvent is published when a field value reaches confirmed status
type FieldConfirmedEvent struct {
	CaseID   string `json:"case_id"`
	FieldKey string `json:"field_key"`
	Actor    string `json:"actor"`
}

// ExtractionConfirmedEvent is published when an AI extraction is confirmed
type ExtractionConfirmedEvent struct {
	CaseID       string  `json:"case_id"`
	ExtractionID string  `json:"extraction_id"`
	FieldKey     string  `json:"field_key"`
	Confidence   float64 `json:"confidence"`
	Actor        string  `json:"actor"`
}

// PhotoAddedEvent is published when a photo is attached to a case
type PhotoAddedEvent struct {
	CaseID            string  `json:"case_id"`
	PhotoID           string  `json:"photo_id"`
	SuggestedCategory string  `json:"suggested_category"`
	Confidence        float64 `json:"confidence"`
}

// ReportGeneratedEvent is published when a PDF record is registered on a case
type ReportGeneratedEvent struct {
	CaseID     string `json:"case_id"`
	ReportType string `json:"report_type"`
	FileName   string `json:"file_name"`
	Actor      string `json:"actor"`
}
