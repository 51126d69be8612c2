// Package domain defines the Case aggregate: one investigative case and all
// of its nested collections. The aggregate is a plain value; every mutation
// goes through the engine package, which returns a new value.
package domain

import "time"

// CaseStatus is the lifecycle status of a case. Transitions are monotonic in
// normal operation (draft -> in_review -> finalized) but not enforced.
type CaseStatus string

const (
	CaseStatusDraft     CaseStatus = "draft"
	CaseStatusInReview  CaseStatus = "in_review"
	CaseStatusFinalized CaseStatus = "finalized"
)

// ValidCaseStatus reports whether s is one of the known statuses
func ValidCaseStatus(s CaseStatus) bool {
	switch s {
	case CaseStatusDraft, CaseStatusInReview, CaseStatusFinalized:
		return true
	}
	return false
}

// FieldStatus tracks the provenance of a field value.
//
// suggested: set by an extraction process, awaiting review.
// confirmed: a suggested or manually entered value accepted as-is.
// edited: the user changed the value; counts as complete for progress.
type FieldStatus string

const (
	FieldStatusSuggested FieldStatus = "suggested"
	FieldStatusConfirmed FieldStatus = "confirmed"
	FieldStatusEdited    FieldStatus = "edited"
)

// ValidFieldStatus reports whether s is one of the known statuses
func ValidFieldStatus(s FieldStatus) bool {
	switch s {
	case FieldStatusSuggested, FieldStatusConfirmed, FieldStatusEdited:
		return true
	}
	return false
}

// ExtractionStatus is the review state of an AI extraction.
// confirmed and dismissed are terminal.
type ExtractionStatus string

const (
	ExtractionStatusPending   ExtractionStatus = "pending"
	ExtractionStatusConfirmed ExtractionStatus = "confirmed"
	ExtractionStatusDismissed ExtractionStatus = "dismissed"
)

// BlockStatus is the state of an investigation report block.
type BlockStatus string

const (
	BlockStatusEmpty       BlockStatus = "empty"
	BlockStatusDraft       BlockStatus = "draft"
	BlockStatusAIGenerated BlockStatus = "ai_generated"
	BlockStatusConfirmed   BlockStatus = "confirmed"
)

// PhotoCategory classifies a crime-scene photo.
type PhotoCategory string

const (
	PhotoCategoryPanoramica PhotoCategory = "panoramica"
	PhotoCategoryAcesso     PhotoCategory = "acesso"
	PhotoCategoryVestigios  PhotoCategory = "vestigios"
	PhotoCategoryNumeracao  PhotoCategory = "numeracao"
	PhotoCategoryDetalhe    PhotoCategory = "detalhe"
	PhotoCategoryVitima     PhotoCategory = "vitima"
	PhotoCategoryArma       PhotoCategory = "arma"
	PhotoCategoryOutros     PhotoCategory = "outros"
)

// PhotoCategories lists every valid category
var PhotoCategories = []PhotoCategory{
	PhotoCategoryPanoramica,
	PhotoCategoryAcesso,
	PhotoCategoryVestigios,
	PhotoCategoryNumeracao,
	PhotoCategoryDetalhe,
	PhotoCategoryVitima,
	PhotoCategoryArma,
	PhotoCategoryOutros,
}

// ValidPhotoCategory reports whether c is one of the known categories
func ValidPhotoCategory(c PhotoCategory) bool {
	for _, v := range PhotoCategories {
		if v == c {
			return true
		}
	}
	return false
}

// ReportLayout is the photo report page layout
type ReportLayout string

const (
	LayoutOnePerPage ReportLayout = "one-per-page"
	LayoutTwoPerPage ReportLayout = "two-per-page"
)

// ReportBlockIDs is the fixed, ordered set of investigation report blocks.
var ReportBlockIDs = []string{
	"summary",
	"dynamics",
	"victims",
	"police",
	"procedures",
	"cameras",
	"conclusion",
}

// TeamMember is an officer assigned to the case. Owned entirely by the case.
type TeamMember struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Badge string `json:"badge,omitempty"`
}

// TimelineEvent is an entry on the case timeline. Append-only in normal usage.
type TimelineEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Label       string    `json:"label"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description,omitempty"`
}

// PhotoEvidence is a captured or uploaded crime-scene photo.
//
// Invariant: Confirmed == true implies ConfirmedCategory != "".
type PhotoEvidence struct {
	ID                string        `json:"id"`
	FileName          string        `json:"fileName"`
	FileData          string        `json:"fileData,omitempty"`
	MimeType          string        `json:"mimeType"`
	SuggestedCategory PhotoCategory `json:"suggestedCategory"`
	Confidence        float64       `json:"confidence"`
	ConfirmedCategory PhotoCategory `json:"confirmedCategory,omitempty"`
	Confirmed         bool          `json:"confirmed"`
	Tags              []string      `json:"tags,omitempty"`
}

// FieldValue is a recognition field value with provenance.
//
// Invariant: Key is unique within a case's FieldValues (last write wins).
// Confidence is present only when the value originated from a suggestion.
type FieldValue struct {
	Key         string      `json:"key"`
	Value       string      `json:"value"`
	Status      FieldStatus `json:"status"`
	Sources     []string    `json:"sources,omitempty"`
	Confidence  *float64    `json:"confidence,omitempty"`
	LastUpdated time.Time   `json:"lastUpdated"`
	UpdatedBy   string      `json:"updatedBy"`
}

// AIExtraction is a machine-suggested value for a field, pending review.
type AIExtraction struct {
	ID                string           `json:"id"`
	FieldKey          string           `json:"fieldKey"`
	SuggestedValue    string           `json:"suggestedValue"`
	Confidence        float64          `json:"confidence"`
	SourceEvidenceIDs []string         `json:"sourceEvidenceIds,omitempty"`
	Status            ExtractionStatus `json:"status"`
}

// RecognitionState tracks which visuographic recognition sections are done.
// The sections themselves and their field lists live in the registry.
type RecognitionState struct {
	CompletedSections []string  `json:"completedSections"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

// SelectedPhoto is one entry of the photo report selection.
// Order values are dense 0-based indexes, re-derived on every write.
type SelectedPhoto struct {
	PhotoID string `json:"photoId"`
	Order   int    `json:"order"`
	Caption string `json:"caption"`
}

// PhotoReportConfig configures the photo report document.
//
/// Invariant: every PhotoID references a PhotoEvidence on the same case, and
// Order values are unique and contiguous from 0 after any mutation.
type PhotoReportConfig struct {
	SelectedPhotos      []SelectedPhoto `json:"selectedPhotos"`
	Layout              ReportLayout    `json:"layout"`
	IncludeCover        bool            `json:"includeCover"`
	IncludeHeaderFooter bool            `json:"includeHeaderFooter"`
	LastUpdated         time.Time       `json:"lastUpdated"`
}

// ReportBlock is one block of the investigation report.
type ReportBlock struct {
	ID                  string      `json:"id"`
	Content             string      `json:"content"`
	Status              BlockStatus `json:"status"`
	ReferencedFieldKeys []string    `json:"referencedFieldKeys,omitempty"`
	ReferencedPhotoIDs  []string    `json:"referencedPhotoIds,omitempty"`
	LastUpdated         time.Time   `json:"lastUpdated"`
	UpdatedBy           string      `json:"updatedBy,omitempty"`
}

// Signer is one signature line on the investigation report
type Signer struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// ReportSignatures holds the free-form signature section of the report
type ReportSignatures struct {
	Signers  []Signer `json:"signers,omitempty"`
	Location string   `json:"location,omitempty"`
	Date     string   `json:"date,omitempty"`
}

// GeneratedPDF records a rendered report document. Rendering itself happens
// outside this service; only the metadata is kept on the aggregate.
type GeneratedPDF struct {
	ID          string    `json:"id"`
	ReportType  string    `json:"reportType"`
	FileName    string    `json:"fileName"`
	GeneratedAt time.Time `json:"generatedAt"`
	GeneratedBy string    `json:"generatedBy"`
}

// AuditEvent is one append-only audit log entry. Entries are never updated
// or deleted.
type AuditEvent struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	User      string            `json:"user"`
	Details   map[string]string `json:"details,omitempty"`
}

// Case is the root aggregate for one investigative case.
//
// Every nested collection is always non-nil after NewCase; consumers may
// assume presence, only possibly empty.
type Case struct {
	ID string `json:"id"`
	BO string `json:"bo"`

	Natureza     string `json:"natureza,omitempty"`
	DataHoraFato string `json:"dataHoraFato,omitempty"`

	Endereco      string `json:"endereco,omitempty"`
	CEP           string `json:"cep,omitempty"`
	Bairro        string `json:"bairro,omitempty"`
	Cidade        string `json:"cidade,omitempty"`
	Estado        string `json:"estado,omitempty"`
	Circunscricao string `json:"circunscricao,omitempty"`
	Unidade       string `json:"unidade,omitempty"`

	Status CaseStatus `json:"status"`

	OrganizationID string `json:"organization_id,omitempty"`
	TeamID         string `json:"team_id,omitempty"`
	SharedWithOrg  bool   `json:"shared_with_org,omitempty"`

	Team          []TeamMember      `json:"team"`
	Events        []TimelineEvent   `json:"events"`
	Photos        []PhotoEvidence   `json:"photos"`
	FieldValues   []FieldValue      `json:"fieldValues"`
	AIExtractions []AIExtraction    `json:"aiExtractions"`
	Recognition   RecognitionState  `json:"recognition"`
	PhotoReport   PhotoReportConfig `json:"photoReport"`
	ReportBlocks  []ReportBlock     `json:"reportBlocks"`
	Signatures    ReportSignatures  `json:"signatures"`
	GeneratedPDFs []GeneratedPDF    `json:"generatedPdfs"`
	AuditLog      []AuditEvent      `json:"auditLog"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCase constructs a fully-populated case with every nested collection
// initialized. This is the only valid way to construct a Case.
func NewCase(id, bo string, now time.Time) Case {
	blocks := make([]ReportBlock, 0, len(ReportBlockIDs))
	for _, blockID := range ReportBlockIDs {
		blocks = append(blocks, ReportBlock{
			ID:          blockID,
			Content:     "",
			Status:      BlockStatusEmpty,
			LastUpdated: now,
		})
	}

	return Case{
		ID:            id,
		BO:            bo,
		Status:        CaseStatusDraft,
		Team:          []TeamMember{},
		Events:        []TimelineEvent{},
		Photos:        []PhotoEvidence{},
		FieldValues:   []FieldValue{},
		AIExtractions: []AIExtraction{},
		Recognition: RecognitionState{
			CompletedSections: []string{},
			LastUpdated:       now,
		},
		PhotoReport: PhotoReportConfig{
			SelectedPhotos:      []SelectedPhoto{},
			Layout:              LayoutOnePerPage,
			IncludeCover:        true,
			IncludeHeaderFooter: true,
			LastUpdated:         now,
		},
		ReportBlocks:  blocks,
		GeneratedPDFs: []GeneratedPDF{},
		AuditLog:      []AuditEvent{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// FindPhoto returns a pointer to the photo with the given id, or nil.
func (c *Case) FindPhoto(photoID string) *PhotoEvidence {
	for i := range c.Photos {
		if c.Photos[i].ID == photoID {
			return &c.Photos[i]
		}
	}
	return nil
}

// FindFieldValue returns a pointer to the field value for key, or nil.
func (c *Case) FindFieldValue(key string) *FieldValue {
	for i := range c.FieldValues {
		if c.FieldValues[i].Key == key {
			return &c.FieldValues[i]
		}
	}
	return nil
}

// FindExtraction returns a pointer to the extraction with the given id, or nil.
func (c *Case) FindExtraction(extractionID string) *AIExtraction {
	for i := range c.AIExtractions {
		if c.AIExtractions[i].ID == extractionID {
			return &c.AIExtractions[i]
		}
	}
	return nil
}

// FindBlock returns a pointer to the report block with the given id, or nil.
func (c *Case) FindBlock(blockID string) *ReportBlock {
	for i := range c.ReportBlocks {
		if c.ReportBlocks[i].ID == blockID {
			return &c.ReportBlocks[i]
		}
	}
	return nil
}

// SectionCompleted reports whether the recognition section is marked done
func (c *Case) SectionCompleted(sectionID string) bool {
	for _, s := range c.Recognition.CompletedSections {
		if s == sectionID {
			return true
		}
	}
	return false
}
