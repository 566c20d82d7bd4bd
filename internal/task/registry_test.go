package task

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistryCreate(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(testLogger())
	params := map[string]string{"csv": "/data/series.csv"}

	record := registry.Create(TypeFileAnalysis, params)

	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, TypeFileAnalysis, record.Type)
	assert.Equal(t, StatusQueued, record.Status)
	assert.Zero(t, record.Progress)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Nil(t, record.StartedAt)
	assert.Nil(t, record.CompletedAt)

	// The record must be observable immediately after Create returns.
	got, ok := registry.Get(record.ID)
	require.True(t, ok)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, params, got.Params)
}

func TestRegistryLifecycle(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(testLogger())
	record := registry.Create(TypeFileAnalysis, nil)

	registry.MarkRunning(record.ID)
	got, ok := registry.Get(record.ID)
	require.True(t, ok)
	assert.Equal(t, StatusRunning, got.Status)
	require.NotNil(t, got.StartedAt)
	startedAt := *got.StartedAt

	// A second MarkRunning must not restamp StartedAt.
	registry.MarkRunning(record.ID)
	got, _ = registry.Get(record.ID)
	assert.Equal(t, startedAt, *got.StartedAt)

	registry.SetProgress(record.ID, 0.5)
	got, _ = registry.Get(record.ID)
	assert.Equal(t, 0.5, got.Progress)

	registry.MarkSucceeded(record.ID, "done")
	got, _ = registry.Get(record.ID)
	assert.Equal(t, StatusSucceeded, got.Status)
	assert.Equal(t, "done", got.Result)
	assert.Equal(t, 1.0, got.Progress)
	require.NotNil(t, got.CompletedAt)

	// Terminal records must not transition again.
	registry.MarkFailed(record.ID, "late failure", "")
	got, _ = registry.Get(record.ID)
	assert.Equal(t, StatusSucceeded, got.Status)
	assert.Empty(t, got.Error)
}

func TestRegistryProgressNeverRegresses(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(testLogger())
	record := registry.Create(TypeFileAnalysis, nil)
	registry.MarkRunning(record.ID)

	registry.SetProgress(record.ID, 0.7)
	registry.SetProgress(record.ID, 0.2)
	got, _ := registry.Get(record.ID)
	assert.Equal(t, 0.7, got.Progress)

	registry.SetProgress(record.ID, 1.5)
	got, _ = registry.Get(record.ID)
	assert.Equal(t, 1.0, got.Progress, "progress should be capped at 1")
}

func TestRegistryProgressIgnoredWhileQueued(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(testLogger())
	record := registry.Create(TypeFileAnalysis, nil)

	registry.SetProgress(record.ID, 0.5)
	got, _ := registry.Get(record.ID)
	assert.Zero(t, got.Progress)
}

func TestRegistryMarkFailed(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(testLogger())
	record := registry.Create(TypeFileAnalysis, nil)

	// queued -> failed is allowed for requests rejected before dispatch.
	registry.MarkFailed(record.ID, "file not found", "")
	got, ok := registry.Get(record.ID)
	require.True(t, ok)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, "file not found", got.Error)
	assert.Empty(t, got.Trace)
	require.NotNil(t, got.CompletedAt)

	registry.MarkSucceeded(record.ID, "too late")
	got, _ = registry.Get(record.ID)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Nil(t, got.Result)
}

func TestRegistryUnknownIDIsNoOp(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(testLogger())
	unknown := uuid.New()

	registry.MarkRunning(unknown)
	registry.SetProgress(unknown, 0.5)
	registry.MarkSucceeded(unknown, nil)
	registry.MarkFailed(unknown, "boom", "")

	_, ok := registry.Get(unknown)
	assert.False(t, ok)
	assert.Empty(t, registry.List())
}

func TestRegistryGetReturnsSnapshot(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(testLogger())
	record := registry.Create(TypeFileAnalysis, nil)

	before, ok := registry.Get(record.ID)
	require.True(t, ok)

	registry.MarkRunning(record.ID)

	// The earlier snapshot must be unaffected by later transitions.
	assert.Equal(t, StatusQueued, before.Status)
}

func TestRegistryListOrderedByCreation(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(testLogger())
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		ids = append(ids, registry.Create(TypeFileAnalysis, nil).ID)
		time.Sleep(time.Millisecond)
	}

	records := registry.List()
	require.Len(t, records, 5)
	for i, record := range records {
		assert.Equal(t, ids[i], record.ID)
	}
}
