// Package testutil provides shared fixtures for case tests.
package testutil

import (
	"fmt"
	"time"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/internal/casefile/engine"
)

// FixedTime is the deterministic clock value used across tests
var FixedTime = time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

// NewTestEngine returns an engine with a fixed clock and sequential ids
// (id-1, id-2, ...), so transitions are fully deterministic.
func NewTestEngine() *engine.Engine {
	n := 0
	return engine.NewWithClock(
		func() time.Time { return FixedTime },
		func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	)
}

// NewCaseFixture returns a fresh aggregate with deterministic id and clock
func NewCaseFixture() domain.Case {
	return domain.NewCase("case-1", "BO-2025/001234", FixedTime)
}

// PopulatedCaseFixture returns an aggregate with photos, field values, an
// extraction and report content, for derivation and provider tests.
func PopulatedCaseFixture() domain.Case {
	c := NewCaseFixture()

	conf := 0.9
	c.Photos = []domain.PhotoEvidence{
		{ID: "photo-1", FileName: "frente.jpg", SuggestedCategory: domain.PhotoCategoryPanoramica, ConfirmedCategory: domain.PhotoCategoryPanoramica, Confirmed: true, Confidence: 0.95, Tags: []string{}},
		{ID: "photo-2", FileName: "detalhe.jpg", SuggestedCategory: domain.PhotoCategoryDetalhe, Confidence: 0.62, Tags: []string{}},
	}
	c.FieldValues = []domain.FieldValue{
		{Key: "case.natureza", Value: "Furto qualificado", Status: domain.FieldStatusConfirmed, Confidence: &conf, LastUpdated: FixedTime},
		{Key: "location.endereco", Value: "Rua das Flores, 123", Status: domain.FieldStatusSuggested, LastUpdated: FixedTime},
	}
	c.AIExtractions = []domain.AIExtraction{
		{ID: "ex-1", FieldKey: "environment.iluminacao", SuggestedValue: "Artificial (noite)", Confidence: 0.82, SourceEvidenceIDs: []string{"photo-1"}, Status: domain.ExtractionStatusPending},
	}
	c.Team = []domain.TeamMember{
		{ID: "member-1", Role: "perito", Name: "Ana Souza", Badge: "12345"},
	}
	c.DataHoraFato = "2025-03-14T22:15:00Z"
	return c
}
