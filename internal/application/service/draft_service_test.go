package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carepath/medicaid-intake/internal/domain/intake"
)

type memDraftRepo struct {
	mu       sync.Mutex
	payloads map[string]string
	getErr   error
	putErr   error
}

func newMemDraftRepo() *memDraftRepo {
	return &memDraftRepo{payloads: make(map[string]string)}
}

func (m *memDraftRepo) Put(_ context.Context, sessionID, payload string, _ time.Time) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads[sessionID] = payload
	return nil
}

func (m *memDraftRepo) Get(_ context.Context, sessionID string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.payloads[sessionID]
	return payload, ok, nil
}

func (m *memDraftRepo) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.payloads, sessionID)
	return nil
}

func newDraftServiceAt(repo *memDraftRepo, now time.Time) *DraftService {
	s := NewDraftService(repo, zap.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func draftRecord() *intake.FormRecord {
	r := intake.NewFormRecord()
	r.ApplicantName = "Jane Doe"
	r.ApplicantSocialSecurity = "1200"
	intake.RecalculateTotals(r)
	return r
}

func TestDraftService_SaveAndLoad(t *testing.T) {
	repo := newMemDraftRepo()
	svc := newDraftServiceAt(repo, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, "sess-1", draftRecord(), false))

	loaded, err := svc.Load(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Jane Doe", loaded.ApplicantName)
	assert.Equal(t, "1200.00", loaded.TotalMonthlyIncome)
}

func TestDraftService_SaveSkipsEmptyRecord(t *testing.T) {
	repo := newMemDraftRepo()
	svc := newDraftServiceAt(repo, time.Now())
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, "sess-1", intake.NewFormRecord(), false))
	assert.Empty(t, repo.payloads, "empty record should not be persisted")
}

func TestDraftService_LoadAbsent(t *testing.T) {
	svc := newDraftServiceAt(newMemDraftRepo(), time.Now())

	loaded, err := svc.Load(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestDraftService_LoadPurgesCorruptDraft(t *testing.T) {
	repo := newMemDraftRepo()
	repo.payloads["sess-1"] = "not a valid payload"
	svc := newDraftServiceAt(repo, time.Now())

	loaded, err := svc.Load(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.Empty(t, repo.payloads, "corrupt draft should be deleted")
}

func TestDraftService_LoadPurgesExpiredDraft(t *testing.T) {
	repo := newMemDraftRepo()
	savedAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newDraftServiceAt(repo, savedAt)
	ctx := context.Background()
	require.NoError(t, svc.Save(ctx, "sess-1", draftRecord(), false))

	svc.now = func() time.Time { return savedAt.Add(8 * 24 * time.Hour) }
	loaded, err := svc.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.Empty(t, repo.payloads, "expired draft should be deleted")
}

func TestDraftService_LoadPurgesStaleSchemaVersion(t *testing.T) {
	repo := newMemDraftRepo()
	now := time.Now()
	envelope := intake.NewDraftEnvelope(draftRecord(), now, false)
	envelope.Version = "0.9"
	payload, err := envelope.Encode()
	require.NoError(t, err)
	repo.payloads["sess-1"] = payload

	svc := newDraftServiceAt(repo, now)
	loaded, err := svc.Load(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.Empty(t, repo.payloads, "stale-schema draft should be deleted")
}

func TestDraftService_LoadSurfacesStorageError(t *testing.T) {
	repo := newMemDraftRepo()
	repo.getErr = errors.New("disk gone")
	svc := newDraftServiceAt(repo, time.Now())

	_, err := svc.Load(context.Background(), "sess-1")
	assert.Error(t, err)
}

func TestDraftService_ClearIsIdempotent(t *testing.T) {
	repo := newMemDraftRepo()
	svc := newDraftServiceAt(repo, time.Now())
	ctx := context.Background()
	require.NoError(t, svc.Save(ctx, "sess-1", draftRecord(), false))

	require.NoError(t, svc.Clear(ctx, "sess-1"))
	require.NoError(t, svc.Clear(ctx, "sess-1"))
	assert.Empty(t, repo.payloads)
}

func TestDraftService_HasAndAge(t *testing.T) {
	repo := newMemDraftRepo()
	savedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newDraftServiceAt(repo, savedAt)
	ctx := context.Background()

	assert.False(t, svc.Has(ctx, "sess-1"))
	assert.Nil(t, svc.Age(ctx, "sess-1"))

	require.NoError(t, svc.Save(ctx, "sess-1", draftRecord(), false))
	assert.True(t, svc.Has(ctx, "sess-1"))

	svc.now = func() time.Time { return savedAt.Add(5 * time.Hour) }
	age := svc.Age(ctx, "sess-1")
	require.NotNil(t, age)
	assert.Equal(t, 5, *age)
}
