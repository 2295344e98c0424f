package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsplice/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func testRecord(run, output string, at time.Time) domain.GenerationRecord {
	return domain.GenerationRecord{
		RunID:       run,
		Source:      "posts/api-security.md",
		Output:      output,
		Digest:      "e3b0c44298fc1c149afbf4c8996fb924",
		Status:      domain.OutputWritten,
		GeneratedAt: at,
	}
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	store := setupTestStore(t)

	assert.FileExists(t, store.Path())
}

func TestNewStore_EmptyPath(t *testing.T) {
	_, err := NewStore("  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewStore_MigrationsRecorded(t *testing.T) {
	store := setupTestStore(t)

	var version int
	err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	first, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.RecordStore().SaveRecords(ctx, []domain.GenerationRecord{
		testRecord("run-1", "posts/doc.go", time.Now()),
	}))
	require.NoError(t, first.Close())

	second, err := NewStore(dbPath)
	require.NoError(t, err)
	defer second.Close()

	records, err := second.RecordStore().ListRecords(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// ==================== Record Store Tests ====================

func TestRecordStore_SaveAndList(t *testing.T) {
	store := setupTestStore(t)
	records := store.RecordStore()
	ctx := context.Background()

	at := time.Date(2026, 10, 16, 9, 30, 0, 123456789, time.UTC)
	err := records.SaveRecords(ctx, []domain.GenerationRecord{
		testRecord("run-1", "posts/doc.go", at),
		testRecord("run-1", "posts/api_security/doc.go", at),
	})
	require.NoError(t, err)

	got, err := records.ListRecords(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "posts/api_security/doc.go", got[0].Output)
	assert.Equal(t, "posts/doc.go", got[1].Output)
	assert.Equal(t, "run-1", got[0].RunID)
	assert.Equal(t, domain.OutputWritten, got[0].Status)
	assert.True(t, at.Equal(got[0].GeneratedAt))
}

func TestRecordStore_Limit(t *testing.T) {
	store := setupTestStore(t)
	records := store.RecordStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, records.SaveRecords(ctx, []domain.GenerationRecord{
			testRecord(fmt.Sprintf("run-%d", i), "posts/doc.go", time.Now()),
		}))
	}

	got, err := records.ListRecords(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "run-4", got[0].RunID)
	assert.Equal(t, "run-2", got[2].RunID)
}

func TestRecordStore_SaveEmpty(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.RecordStore().SaveRecords(context.Background(), nil))

	got, err := store.RecordStore().ListRecords(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
