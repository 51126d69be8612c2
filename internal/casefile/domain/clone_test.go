package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/pkg/testutil"
)

func TestClone_DeepCopiesCollections(t *testing.T) {
	c := testutil.PopulatedCaseFixture()
	clone := c.Clone()

	clone.Photos[0].FileName = "tampered.jpg"
	clone.Photos[0].Tags = append(clone.Photos[0].Tags, "extra")
	clone.FieldValues[0].Value = "tampered"
	*clone.FieldValues[0].Confidence = 0.1
	clone.AIExtractions[0].SourceEvidenceIDs[0] = "tampered"
	clone.Team[0].Name = "tampered"

	assert.Equal(t, "frente.jpg", c.Photos[0].FileName)
	assert.Equal(t, "Furto qualificado", c.FieldValues[0].Value)
	assert.Equal(t, 0.9, *c.FieldValues[0].Confidence)
	assert.Equal(t, "photo-1", c.AIExtractions[0].SourceEvidenceIDs[0])
	assert.Equal(t, "Ana Souza", c.Team[0].Name)
}

func TestClone_PreservesEmptyCollections(t *testing.T) {
	c := testutil.NewCaseFixture()
	clone := c.Clone()

	// Empty collections stay empty slices, never become nil
	assert.NotNil(t, clone.Team)
	assert.NotNil(t, clone.Photos)
	assert.NotNil(t, clone.AuditLog)
	assert.NotNil(t, clone.Recognition.CompletedSections)
	assert.NotNil(t, clone.PhotoReport.SelectedPhotos)
	assert.NotNil(t, clone.GeneratedPDFs)
}

func TestNewCase_SerializesWithoutNulls(t *testing.T) {
	c := domain.NewCase("case-1", "BO-2025/001234", testutil.FixedTime)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Collections that clients iterate must be arrays, not null
	for _, field := range []string{"team", "events", "photos", "fieldValues", "aiExtractions", "reportBlocks", "generatedPdfs", "auditLog"} {
		_, isArray := decoded[field].([]interface{})
		assert.True(t, isArray, "field %s should marshal as an array", field)
	}
}

func TestFindHelpers(t *testing.T) {
	c := testutil.PopulatedCaseFixture()

	require.NotNil(t, c.FindPhoto("photo-1"))
	assert.Nil(t, c.FindPhoto("missing"))

	require.NotNil(t, c.FindFieldValue("case.natureza"))
	assert.Nil(t, c.FindFieldValue("missing"))

	require.NotNil(t, c.FindExtraction("ex-1"))
	assert.Nil(t, c.FindExtraction("missing"))

	require.NotNil(t, c.FindBlock("summary"))
	assert.Nil(t, c.FindBlock("missing"))
}

func TestRoundTrip(t *testing.T) {
	c := testutil.PopulatedCaseFixture()

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded domain.Case
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, c.ID, decoded.ID)
	assert.Equal(t, c.BO, decoded.BO)
	require.Len(t, decoded.Photos, 2)
	assert.Equal(t, c.Photos[0].SuggestedCategory, decoded.Photos[0].SuggestedCategory)
	require.NotNil(t, decoded.FieldValues[0].Confidence)
	assert.Equal(t, *c.FieldValues[0].Confidence, *decoded.FieldValues[0].Confidence)
}
