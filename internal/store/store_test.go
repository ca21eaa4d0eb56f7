package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mseguy/aidesk/internal/domain"
	"github.com/mseguy/aidesk/internal/logging"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:", logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// --- DB/Migration tests ---

func TestOpen_InMemory(t *testing.T) {
	db := testDB(t)
	assert.NotNil(t, db)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "aidesk.db")
	db, err := Open(path, logging.Nop())
	require.NoError(t, err)
	db.Close()
}

func TestMigrations_Applied(t *testing.T) {
	db := testDB(t)

	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestMigrations_Idempotent(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.migrate())

	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

// --- HistoryStore tests ---

func testHistoryStore(t *testing.T) *HistoryStore {
	t.Helper()
	return NewHistoryStore(testDB(t), logging.Nop())
}

func TestHistoryStore_EmptySession(t *testing.T) {
	s := testHistoryStore(t)
	assert.Empty(t, s.History("nope"))
}

func TestHistoryStore_AppendAndHistory(t *testing.T) {
	s := testHistoryStore(t)

	s.Append("s1",
		domain.Turn{Role: domain.RoleUser, Content: "question"},
		domain.Turn{Role: domain.RoleAssistant, Content: "réponse"},
	)

	turns := s.History("s1")
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "question", turns[0].Content)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
}

func TestHistoryStore_SessionsAreIsolated(t *testing.T) {
	s := testHistoryStore(t)

	s.Append("s1", domain.Turn{Role: domain.RoleUser, Content: "un"})
	s.Append("s2", domain.Turn{Role: domain.RoleUser, Content: "deux"})

	assert.Len(t, s.History("s1"), 1)
	assert.Len(t, s.History("s2"), 1)
	assert.Equal(t, "deux", s.History("s2")[0].Content)
}

func TestHistoryStore_Trim(t *testing.T) {
	s := testHistoryStore(t)

	for i := 0; i < 14; i++ {
		s.Append("s1", domain.Turn{Role: domain.RoleUser, Content: fmt.Sprintf("m%d", i)})
	}
	s.Trim("s1", 10)

	turns := s.History("s1")
	require.Len(t, turns, 10)
	assert.Equal(t, "m4", turns[0].Content, "oldest turns evicted first")
	assert.Equal(t, "m13", turns[9].Content)
}

func TestHistoryStore_TrimLeavesOtherSessions(t *testing.T) {
	s := testHistoryStore(t)

	s.Append("s1", domain.Turn{Role: domain.RoleUser, Content: "a"})
	s.Append("s2", domain.Turn{Role: domain.RoleUser, Content: "b"})
	s.Trim("s1", 0)

	assert.Empty(t, s.History("s1"))
	assert.Len(t, s.History("s2"), 1)
}

func TestHistoryStore_Reset(t *testing.T) {
	s := testHistoryStore(t)

	s.Append("s1", domain.Turn{Role: domain.RoleUser, Content: "a"})
	s.Reset("s1")

	assert.Empty(t, s.History("s1"))

	// Resetting an unknown session is a no-op.
	s.Reset("unknown")
}

// --- MemoryStore tests ---

func TestMemoryStore_Roundtrip(t *testing.T) {
	s := NewMemoryStore()

	s.Append("s1",
		domain.Turn{Role: domain.RoleUser, Content: "question"},
		domain.Turn{Role: domain.RoleAssistant, Content: "réponse"},
	)

	turns := s.History("s1")
	require.Len(t, turns, 2)

	// Returned slice is a copy.
	turns[0].Content = "mutated"
	assert.Equal(t, "question", s.History("s1")[0].Content)
}

func TestMemoryStore_TrimAndReset(t *testing.T) {
	s := NewMemoryStore()
	for i := 0; i < 14; i++ {
		s.Append("s1", domain.Turn{Role: domain.RoleUser, Content: fmt.Sprintf("m%d", i)})
	}

	s.Trim("s1", 10)
	require.Len(t, s.History("s1"), 10)
	assert.Equal(t, "m4", s.History("s1")[0].Content)

	s.Reset("s1")
	assert.Empty(t, s.History("s1"))
}
