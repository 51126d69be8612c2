package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow-backend/internal/casefile/registry"
)

func TestFieldByKey(t *testing.T) {
	def, ok := registry.FieldByKey("case.bo")
	require.True(t, ok)
	assert.Equal(t, "Boletim de Ocorrência", def.Label)
	assert.Equal(t, registry.TypeText, def.Type)

	_, ok = registry.FieldByKey("bogus.key")
	assert.False(t, ok)
}

func TestSelectFieldsHaveOptions(t *testing.T) {
	def, ok := registry.FieldByKey("environment.iluminacao")
	require.True(t, ok)
	assert.Equal(t, registry.TypeSelect, def.Type)
	assert.Contains(t, def.Options, "Artificial (noite)")
}

func TestFieldReuse(t *testing.T) {
	docs := registry.FieldReuse("case.bo")
	assert.Contains(t, docs, registry.DocRecognition)
	assert.Contains(t, docs, registry.DocPhotoReport)
	assert.Contains(t, docs, registry.DocInvestigationReport)

	assert.Nil(t, registry.FieldReuse("bogus.key"))
}

func TestSectionsCoverKnownFields(t *testing.T) {
	// Every field key named by a section must exist in the field catalog
	for _, section := range registry.Sections() {
		for _, key := range section.FieldKeys {
			assert.True(t, registry.HasField(key), "section %s names unknown field %s", section.ID, key)
		}
	}
}

func TestSectionFieldKeys(t *testing.T) {
	keys := registry.SectionFieldKeys(registry.SectionPreliminary)
	assert.Contains(t, keys, "case.bo")
	assert.Contains(t, keys, "case.natureza")

	assert.Nil(t, registry.SectionFieldKeys("bogus"))
}

func TestAllSectionFieldKeys_NoDuplicates(t *testing.T) {
	keys := registry.AllSectionFieldKeys()
	require.NotEmpty(t, keys)

	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestHasSection(t *testing.T) {
	assert.True(t, registry.HasSection(registry.SectionEvidence))
	assert.False(t, registry.HasSection("bogus"))
}
