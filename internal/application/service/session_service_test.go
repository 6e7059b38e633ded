package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carepath/medicaid-intake/internal/domain/intake"
)

func newSessionFixture() (*SessionService, *memDraftRepo) {
	repo := newMemDraftRepo()
	drafts := NewDraftService(repo, zap.NewNop())
	cfg := SessionConfig{AutosaveDelay: time.Hour, AutosaveEnabled: true}
	return NewSessionService(drafts, cfg, zap.NewNop()), repo
}

func TestSessionService_CreateAndGet(t *testing.T) {
	svc, _ := newSessionFixture()

	fs := svc.Create(context.Background(), "")
	require.NotEmpty(t, fs.ID)

	got, err := svc.Get(fs.ID)
	require.NoError(t, err)
	assert.Same(t, fs, got)

	_, err = svc.Get("unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_ApplyChange(t *testing.T) {
	svc, _ := newSessionFixture()
	fs := svc.Create(context.Background(), "")

	record, validation, err := svc.ApplyChange(fs.ID, intake.FieldChange{
		Name: "applicantName", Kind: intake.KindText, Value: "Jane Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", record.ApplicantName)
	assert.False(t, validation.Valid, "record is still incomplete")

	_, hasInteracted := fs.Flags()
	assert.True(t, hasInteracted)
}

func TestSessionService_ApplyChangeMirrorsStateIntoStore(t *testing.T) {
	svc, _ := newSessionFixture()
	fs := svc.Create(context.Background(), "")

	_, _, err := svc.ApplyChange(fs.ID, intake.FieldChange{
		Name: "state", Kind: intake.KindText, Value: "NY",
	})
	require.NoError(t, err)
	assert.Equal(t, "NY", fs.Store.State())

	_, _, err = svc.ApplyChange(fs.ID, intake.FieldChange{
		Name: "maritalStatus", Kind: intake.KindText, Value: "married",
	})
	require.NoError(t, err)
	assert.Equal(t, "married", fs.Store.ClientInfo().MaritalStatus)
}

func TestSessionService_ApplyChangeRejectsUnknownField(t *testing.T) {
	svc, _ := newSessionFixture()
	fs := svc.Create(context.Background(), "")

	_, _, err := svc.ApplyChange(fs.ID, intake.FieldChange{
		Name: "bogus", Kind: intake.KindText, Value: "x",
	})
	assert.Error(t, err)
}

func TestSessionService_RestoreDraft(t *testing.T) {
	svc, _ := newSessionFixture()
	ctx := context.Background()
	fs := svc.Create(ctx, "")

	restored, err := svc.RestoreDraft(ctx, fs.ID)
	require.NoError(t, err)
	assert.False(t, restored, "no draft yet")

	r := intake.NewFormRecord()
	r.ApplicantName = "Jane Doe"
	r.State = "NY"
	r.MaritalStatus = "married"
	require.NoError(t, svc.drafts.Save(ctx, fs.ID, r, false))

	restored, err = svc.RestoreDraft(ctx, fs.ID)
	require.NoError(t, err)
	assert.True(t, restored)

	record := fs.Record()
	assert.Equal(t, "Jane Doe", record.ApplicantName)
	assert.Equal(t, "NY", fs.Store.State())
	assert.Equal(t, "married", fs.Store.ClientInfo().MaritalStatus)

	_, hasInteracted := fs.Flags()
	assert.True(t, hasInteracted)
}

func TestSessionService_ResumeReturnsLiveSession(t *testing.T) {
	svc, _ := newSessionFixture()
	ctx := context.Background()
	fs := svc.Create(ctx, "")

	resumed := svc.Create(ctx, fs.ID)
	assert.Same(t, fs, resumed)
}

func TestSessionService_ResumeReachesDraftAfterRestart(t *testing.T) {
	repo := newMemDraftRepo()
	drafts := NewDraftService(repo, zap.NewNop())
	cfg := SessionConfig{AutosaveDelay: time.Hour, AutosaveEnabled: true}
	ctx := context.Background()

	first := NewSessionService(drafts, cfg, zap.NewNop())
	fs := first.Create(ctx, "")

	r := intake.NewFormRecord()
	r.ApplicantName = "Jane Doe"
	r.State = "NY"
	require.NoError(t, drafts.Save(ctx, fs.ID, r, false))

	// A fresh registry over the same storage, as after a process restart.
	second := NewSessionService(drafts, cfg, zap.NewNop())
	resumed := second.Create(ctx, fs.ID)
	assert.Equal(t, fs.ID, resumed.ID)

	has, age, err := second.DraftStatus(ctx, resumed.ID)
	require.NoError(t, err)
	assert.True(t, has)
	require.NotNil(t, age)

	restored, err := second.RestoreDraft(ctx, resumed.ID)
	require.NoError(t, err)
	assert.True(t, restored)
	assert.Equal(t, "Jane Doe", resumed.Record().ApplicantName)
}

func TestSessionService_DraftStatusAndDiscard(t *testing.T) {
	svc, repo := newSessionFixture()
	ctx := context.Background()
	fs := svc.Create(ctx, "")

	has, age, err := svc.DraftStatus(ctx, fs.ID)
	require.NoError(t, err)
	assert.False(t, has)
	assert.Nil(t, age)

	r := intake.NewFormRecord()
	r.ApplicantName = "Jane Doe"
	require.NoError(t, svc.drafts.Save(ctx, fs.ID, r, false))

	has, age, err = svc.DraftStatus(ctx, fs.ID)
	require.NoError(t, err)
	assert.True(t, has)
	require.NotNil(t, age)

	require.NoError(t, svc.DiscardDraft(ctx, fs.ID))
	assert.Empty(t, repo.payloads)
}

func TestSessionService_Close(t *testing.T) {
	svc, _ := newSessionFixture()
	fs := svc.Create(context.Background(), "")
	fs.Store.SetState("NY")

	require.NoError(t, svc.Close(fs.ID))

	_, err := svc.Get(fs.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, fs.Store.State(), "store resets on close")
}
