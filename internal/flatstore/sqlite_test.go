package flatstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE flat_records (
  tab TEXT NOT NULL,
  pos INTEGER NOT NULL,
  doc BLOB NOT NULL,
  PRIMARY KEY (tab, pos)
);
`)
	require.NoError(t, err)
	return db
}

func raw(s string) json.RawMessage {
	return json.RawMessage(s)
}

func TestReadTable_AbsentTableIsEmpty(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))

	got, err := s.ReadTable(context.Background(), "accounts")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestWriteTable_ReadBackPreservesOrder(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	records := []json.RawMessage{raw(`{"id":"a"}`), raw(`{"id":"b"}`), raw(`{"id":"c"}`)}
	require.NoError(t, s.WriteTable(ctx, "accounts", records))

	got, err := s.ReadTable(ctx, "accounts")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.JSONEq(t, `{"id":"a"}`, string(got[0]))
	assert.JSONEq(t, `{"id":"b"}`, string(got[1]))
	assert.JSONEq(t, `{"id":"c"}`, string(got[2]))
}

func TestWriteTable_ReplacesWholeTable(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.WriteTable(ctx, "attempts", []json.RawMessage{raw(`1`), raw(`2`)}))
	require.NoError(t, s.WriteTable(ctx, "attempts", []json.RawMessage{raw(`3`)}))

	got, err := s.ReadTable(ctx, "attempts")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `3`, string(got[0]))
}

func TestWriteTable_EmptyClearsTable(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.WriteTable(ctx, "session", []json.RawMessage{raw(`{"id":"x"}`)}))
	require.NoError(t, s.WriteTable(ctx, "session", nil))

	got, err := s.ReadTable(ctx, "session")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTables_AreIndependentNamespaces(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.WriteTable(ctx, "accounts", []json.RawMessage{raw(`"u1"`)}))
	require.NoError(t, s.WriteTable(ctx, "attempts", []json.RawMessage{raw(`"q1"`), raw(`"q2"`)}))

	accounts, err := s.ReadTable(ctx, "accounts")
	require.NoError(t, err)
	attempts, err := s.ReadTable(ctx, "attempts")
	require.NoError(t, err)

	assert.Len(t, accounts, 1)
	assert.Len(t, attempts, 2)

	// clearing one namespace must not touch the other
	require.NoError(t, s.WriteTable(ctx, "accounts", nil))
	attempts, err = s.ReadTable(ctx, "attempts")
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
}

type testRec struct {
	ID string `json:"id"`
	N  int    `json:"n"`
}

func TestReadAllWriteAll_TypedRoundtrip(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	in := []testRec{{ID: "a", N: 1}, {ID: "b", N: 2}}
	require.NoError(t, WriteAll(ctx, s, "accounts", in))

	out, err := ReadAll[testRec](ctx, s, "accounts")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadAll_BadDocumentFails(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.WriteTable(ctx, "accounts", []json.RawMessage{raw(`{not-json`)}))

	_, err := ReadAll[testRec](ctx, s, "accounts")
	assert.Error(t, err)
}
