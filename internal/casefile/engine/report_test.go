package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/internal/casefile/registry"
	"github.com/caseflow/caseflow-backend/pkg/errors"
	"github.com/caseflow/caseflow-backend/pkg/testutil"
)

func TestUpdateReportBlock_EmptyToDraft(t *testing.T) {
	e := testutil.NewTestEngine()
	c := testutil.NewCaseFixture()

	out, err := e.UpdateReportBlock(c, "summary", "Resumo da ocorrência.", nil, nil, "Ana")
	require.NoError(t, err)

	block := out.FindBlock("summary")
	assert.Equal(t, domain.BlockStatusDraft, block.Status)
	assert.Equal(t, "Resumo da ocorrência.", block.Content)
}

func TestUpdateReportBlock_EmptyContentStaysEmpty(t *testing.T) {
	e := testutil.NewTestEngine()
	c := testutil.NewCaseFixture()

	out, err := e.UpdateReportBlock(c, "summary", "", nil, nil, "Ana")
	require.NoError(t, err)
	assert.Equal(t, domain.BlockStatusEmpty, out.FindBlock("summary").Status)
}

func TestUpdateReportBlock_EditRevertsGenerated(t *testing.T) {
	e := testutil.NewTestEngine()
	c := testutil.NewCaseFixture()

	out, err := e.SetBlockAIGenerated(c, "dynamics", "Texto gerado.", []string{"case.natureza"}, nil, "Ana")
	require.NoError(t, err)
	assert.Equal(t, domain.BlockStatusAIGenerated, out.FindBlock("dynamics").Status)

	edited, err := e.UpdateReportBlock(out, "dynamics", "Texto revisado.", nil, nil, "Ana")
	require.NoError(t, err)

	block := edited.FindBlock("dynamics")
	assert.Equal(t, domain.BlockStatusDraft, block.Status)
	// Nil reference lists keep the existing references
	assert.Equal(t, []string{"case.natureza"}, block.ReferencedFieldKeys)
}

func TestUpdateReportBlock_SameContentKeepsStatus(t *testing.T) {
	e := testutil.NewTestEngine()
	c := testutil.NewCaseFixture()

	out, err := e.SetBlockAIGenerated(c, "dynamics", "Texto gerado.", nil, nil, "Ana")
	require.NoError(t, err)
	confirmed, err := e.ConfirmBlockContent(out, "dynamics", "Ana")
	require.NoError(t, err)

	// Updating references only, with unchanged content, keeps confirmed
	same, err := e.UpdateReportBlock(confirmed, "dynamics", "Texto gerado.", []string{"case.bo"}, nil, "Ana")
	require.NoError(t, err)
	assert.Equal(t, domain.BlockStatusConfirmed, same.FindBlock("dynamics").Status)
}

func TestConfirmBlockContent(t *testing.T) {
	e := testutil.NewTestEngine()
	c := testutil.NewCaseFixture()

	out, err := e.SetBlockAIGenerated(c, "conclusion", "Conclusão gerada.", nil, nil, "Ana")
	require.NoError(t, err)

	confirmed, err := e.ConfirmBlockContent(out, "conclusion", "Ana")
	require.NoError(t, err)
	assert.Equal(t, domain.BlockStatusConfirmed, confirmed.FindBlock("conclusion").Status)

	// Only ai_generated blocks can be confirmed
	_, err = e.ConfirmBlockContent(c, "conclusion", "Ana")
	assert.True(t, errors.Is(err, errors.ErrValidation))

	_, err = e.ConfirmBlockContent(c, "missing", "Ana")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestBlockReferences(t *testing.T) {
	e := testutil.NewTestEngine()
	c := testutil.NewCaseFixture()

	out, err := e.AddBlockReferences(c, "victims", []string{"case.natureza", "case.bo"}, []string{"photo-1"})
	require.NoError(t, err)

	block := out.FindBlock("victims")
	assert.Equal(t, []string{"case.natureza", "case.bo"}, block.ReferencedFieldKeys)
	assert.Equal(t, []string{"photo-1"}, block.ReferencedPhotoIDs)
	// References never change status
	assert.Equal(t, domain.BlockStatusEmpty, block.Status)

	// Duplicates are not appended
	again, err := e.AddBlockReferences(out, "victims", []string{"case.bo"}, nil)
	require.NoError(t, err)
	assert.Len(t, again.FindBlock("victims").ReferencedFieldKeys, 2)

	removed, err := e.RemoveBlockReferences(again, "victims", []string{"case.natureza"}, []string{"photo-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"case.bo"}, removed.FindBlock("victims").ReferencedFieldKeys)
	assert.Empty(t, removed.FindBlock("victims").ReferencedPhotoIDs)
}

func TestUpdateSignatures(t *testing.T) {
	e := testutil.NewTestEngine()
	c := testutil.NewCaseFixture()

	out, err := e.UpdateSignatures(c, domain.ReportSignatures{
		Signers:  []domain.Signer{{Name: "Ana Souza", Role: "Perita Criminal"}},
		Location: "Campinas/SP",
		Date:     "15/03/2025",
	})
	require.NoError(t, err)
	require.Len(t, out.Signatures.Signers, 1)
	assert.Equal(t, "Campinas/SP", out.Signatures.Location)
}

func TestRecordGeneratedPDF(t *testing.T) {
	e := testutil.NewTestEngine()
	c := testutil.NewCaseFixture()

	out, err := e.RecordGeneratedPDF(c, "photo_report", "relatorio-fotografico.pdf", "Ana")
	require.NoError(t, err)
	require.Len(t, out.GeneratedPDFs, 1)
	assert.Equal(t, "photo_report", out.GeneratedPDFs[0].ReportType)
	assert.Equal(t, testutil.FixedTime, out.GeneratedPDFs[0].GeneratedAt)

	_, err = e.RecordGeneratedPDF(c, "", "x.pdf", "Ana")
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestSectionComplete(t *testing.T) {
	e := testutil.NewTestEngine()
	c := testutil.NewCaseFixture()

	out, err := e.MarkSectionComplete(c, registry.SectionPreliminary)
	require.NoError(t, err)
	assert.True(t, out.SectionCompleted(registry.SectionPreliminary))

	// Marking twice does not duplicate the entry
	again, err := e.MarkSectionComplete(out, registry.SectionPreliminary)
	require.NoError(t, err)
	assert.Len(t, again.Recognition.CompletedSections, 1)

	unmarked, err := e.UnmarkSectionComplete(again, registry.SectionPreliminary)
	require.NoError(t, err)
	assert.False(t, unmarked.SectionCompleted(registry.SectionPreliminary))

	_, err = e.MarkSectionComplete(c, "bogus")
	assert.True(t, errors.Is(err, errors.ErrValidation))
}
