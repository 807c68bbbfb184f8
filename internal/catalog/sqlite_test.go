package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenSQLiteStore_RequiresPath(t *testing.T) {
	_, err := OpenSQLiteStore("")
	assert.Error(t, err)
}

func TestSQLiteStore_PutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := sample("atlas")
	_, err := s.Put(ctx, want)
	require.NoError(t, err)

	got, err := s.Get(ctx, "atlas")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_ListKeepsInsertionOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"zeta", "alpha", "mid"} {
		_, err := s.Put(ctx, sample(id))
		require.NoError(t, err)
	}
	// Updating an existing record must not move it.
	upd := sample("zeta")
	upd.Title = "Zeta v2"
	_, err := s.Put(ctx, upd)
	require.NoError(t, err)

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "Zeta v2", got[0].Title)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSQLiteStore_PutAssignsDefaults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r, err := s.Put(ctx, Record{Title: "Untitled"})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, StatusInProgress, r.Status)

	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tech)
	assert.Empty(t, got.Links)
}

func TestSQLiteStore_PutRejectsInvalid(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Put(context.Background(), Record{ID: "x"})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestSQLiteStore_Delete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Put(ctx, sample("a"))
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, "a"))

	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "a"), ErrNotFound)
}

func TestSQLiteStore_IsSource(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, err := s.Put(ctx, sample("a"))
	require.NoError(t, err)

	got := FetchOrEmpty(ctx, s, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestSQLiteStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")
	ctx := context.Background()

	s, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	_, err = s.Put(ctx, sample("a"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
