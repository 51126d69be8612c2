package provider_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow-backend/internal/casefile/provider"
	"github.com/caseflow/caseflow-backend/pkg/errors"
	"github.com/caseflow/caseflow-backend/pkg/testutil"
)

func TestMockProvider_CRUD(t *testing.T) {
	ctx := context.Background()
	p := provider.NewMockProvider()
	c := testutil.NewCaseFixture()

	require.NoError(t, p.CreateCase(ctx, c))

	got, err := p.GetCaseByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.BO, got.BO)

	got.Natureza = "Furto"
	require.NoError(t, p.UpdateCase(ctx, got))

	updated, err := p.GetCaseByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Furto", updated.Natureza)

	require.NoError(t, p.DeleteCase(ctx, c.ID))

	_, err = p.GetCaseByID(ctx, c.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestMockProvider_DuplicateCreate(t *testing.T) {
	ctx := context.Background()
	p := provider.NewMockProvider()
	c := testutil.NewCaseFixture()

	require.NoError(t, p.CreateCase(ctx, c))
	assert.Error(t, p.CreateCase(ctx, c))
}

func TestMockProvider_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	p := provider.NewMockProvider()

	err := p.UpdateCase(ctx, testutil.NewCaseFixture())
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestMockProvider_GetCasesNewestFirst(t *testing.T) {
	ctx := context.Background()
	p := provider.NewMockProvider()

	older := testutil.NewCaseFixture()
	newer := testutil.NewCaseFixture()
	newer.ID = "case-2"
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	require.NoError(t, p.CreateCase(ctx, older))
	require.NoError(t, p.CreateCase(ctx, newer))

	cases, err := p.GetCases(ctx)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "case-2", cases[0].ID)
	assert.Equal(t, "case-1", cases[1].ID)
}

func TestMockProvider_StoredStateIsIsolated(t *testing.T) {
	ctx := context.Background()
	p := provider.NewMockProvider()
	c := testutil.PopulatedCaseFixture()

	require.NoError(t, p.CreateCase(ctx, c))

	// Mutating what came back must not leak into the store
	got, err := p.GetCaseByID(ctx, c.ID)
	require.NoError(t, err)
	got.Photos[0].FileName = "tampered.jpg"

	fresh, err := p.GetCaseByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "frente.jpg", fresh.Photos[0].FileName)
}

func TestNhostProvider_Unavailable(t *testing.T) {
	ctx := context.Background()
	p := provider.NewNhostProvider("https://example.nhost.run/v1/graphql")

	_, err := p.GetCases(ctx)
	assert.True(t, errors.Is(err, errors.ErrProviderUnavailable))

	_, err = p.GetCaseByID(ctx, "x")
	assert.True(t, errors.Is(err, errors.ErrProviderUnavailable))

	assert.True(t, errors.Is(p.CreateCase(ctx, testutil.NewCaseFixture()), errors.ErrProviderUnavailable))
	assert.True(t, errors.Is(p.UpdateCase(ctx, testutil.NewCaseFixture()), errors.ErrProviderUnavailable))
	assert.True(t, errors.Is(p.DeleteCase(ctx, "x"), errors.ErrProviderUnavailable))
}
