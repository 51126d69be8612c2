package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/internal/casefile/engine"
	"github.com/caseflow/caseflow-backend/internal/casefile/provider"
	"github.com/caseflow/caseflow-backend/internal/casefile/repository"
	"github.com/caseflow/caseflow-backend/internal/casefile/service"
	"github.com/caseflow/caseflow-backend/pkg/actor"
	"github.com/caseflow/caseflow-backend/pkg/errors"
	"github.com/caseflow/caseflow-backend/pkg/logger"
	"github.com/caseflow/caseflow-backend/pkg/testutil"
)

func newTestService(t *testing.T) *service.CaseService {
	t.Helper()
	log := logger.New("test", "test")
	repo := repository.NewCaseRepository(provider.NewMockProvider(), log)
	return service.NewCaseService(testutil.NewTestEngine(), repo, service.NoopPublisher{}, log)
}

func actorContext() context.Context {
	return actor.WithActor(context.Background(), &actor.Actor{
		ID:    "user-1",
		Name:  "Ana Souza",
		Badge: "12345",
		Role:  "perito",
	})
}

func TestCaseService_CreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := actorContext()

	natureza := "Furto qualificado"
	created, err := svc.CreateCase(ctx, "BO-2025/001234", engine.MetadataUpdate{Natureza: &natureza})
	require.NoError(t, err)
	assert.Equal(t, "BO-2025/001234", created.BO)
	assert.Equal(t, "Furto qualificado", created.Natureza)

	// Creation is audited with the acting user
	require.NotEmpty(t, created.AuditLog)
	assert.Equal(t, "case.created", created.AuditLog[0].Type)
	assert.Equal(t, "Ana Souza (12345)", created.AuditLog[0].User)

	got, err := svc.GetCase(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestCaseService_CreateCase_EmptyBO(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateCase(actorContext(), "", engine.MetadataUpdate{})
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestCaseService_MutationPersistsAndAudits(t *testing.T) {
	svc := newTestService(t)
	ctx := actorContext()

	created, err := svc.CreateCase(ctx, "BO-2025/001234", engine.MetadataUpdate{})
	require.NoError(t, err)

	updated, err := svc.SetFieldValue(ctx, created.ID, "case.natureza", "Roubo", domain.FieldStatusSuggested)
	require.NoError(t, err)
	require.NotNil(t, updated.FindFieldValue("case.natureza"))

	// Reload from the provider: the mutation and its audit entry were saved
	reloaded, err := svc.GetCase(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.FindFieldValue("case.natureza"))

	last := reloaded.AuditLog[len(reloaded.AuditLog)-1]
	assert.Equal(t, "case.field.set", last.Type)
	assert.Equal(t, "case.natureza", last.Details["key"])
}

func TestCaseService_MutationOnMissingCase(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ConfirmField(actorContext(), "missing", "case.bo")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestCaseService_FailedTransitionIsNotPersisted(t *testing.T) {
	svc := newTestService(t)
	ctx := actorContext()

	created, err := svc.CreateCase(ctx, "BO-2025/001234", engine.MetadataUpdate{})
	require.NoError(t, err)

	_, err = svc.SetFieldValue(ctx, created.ID, "bogus.key", "x", domain.FieldStatusSuggested)
	require.True(t, errors.Is(err, errors.ErrValidation))

	reloaded, err := svc.GetCase(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.FieldValues)

	// No audit entry for the rejected mutation either
	for _, entry := range reloaded.AuditLog {
		assert.NotEqual(t, "case.field.set", entry.Type)
	}
}

func TestCaseService_ExtractionFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := actorContext()

	created, err := svc.CreateCase(ctx, "BO-2025/001234", engine.MetadataUpdate{})
	require.NoError(t, err)

	withExtraction, err := svc.AddExtraction(ctx, created.ID, "environment.iluminacao", "Artificial (noite)", 0.82, nil)
	require.NoError(t, err)
	require.Len(t, withExtraction.AIExtractions, 1)

	confirmed, err := svc.ConfirmExtraction(ctx, created.ID, withExtraction.AIExtractions[0].ID)
	require.NoError(t, err)

	fv := confirmed.FindFieldValue("environment.iluminacao")
	require.NotNil(t, fv)
	assert.Equal(t, domain.FieldStatusConfirmed, fv.Status)
}

func TestCaseService_SystemActorWhenUnauthenticated(t *testing.T) {
	svc := newTestService(t)

	// No actor in context: mutations are attributed to the system
	created, err := svc.CreateCase(context.Background(), "BO-2025/001234", engine.MetadataUpdate{})
	require.NoError(t, err)
	require.NotEmpty(t, created.AuditLog)
	assert.Equal(t, "system", created.AuditLog[0].User)
}

func TestCaseService_Delete(t *testing.T) {
	svc := newTestService(t)
	ctx := actorContext()

	created, err := svc.CreateCase(ctx, "BO-2025/001234", engine.MetadataUpdate{})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCase(ctx, created.ID))

	_, err = svc.GetCase(ctx, created.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	assert.Error(t, svc.DeleteCase(ctx, created.ID))
}

func TestCaseService_ProgressAndAlerts(t *testing.T) {
	svc := newTestService(t)
	ctx := actorContext()

	created, err := svc.CreateCase(ctx, "BO-2025/001234", engine.MetadataUpdate{})
	require.NoError(t, err)

	progress, err := svc.Progress(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Recognition)
	assert.Equal(t, 0, progress.PhotoReport)
	assert.Equal(t, 0, progress.Investigation)

	alerts, err := svc.Alerts(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, alerts)
}
