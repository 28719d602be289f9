package storage

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")
	ctx := context.Background()

	fs, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok, err := fs.Get(ctx, "inspectionData")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fs.Set(ctx, "inspectionData", `{"address":"12 Elm St"}`))
	require.NoError(t, fs.Set(ctx, "selectedRooms", `["Kitchen"]`))
	require.NoError(t, fs.Remove(ctx, "selectedRooms"))

	// Reload from disk and verify persistence.
	fs2, err := NewFileStore(path)
	require.NoError(t, err)

	v, ok, err := fs2.Get(ctx, "inspectionData")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"address":"12 Elm St"}`, v)

	_, ok, err = fs2.Get(ctx, "selectedRooms")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	ms := NewMemStore()

	require.NoError(t, ms.Set(ctx, "a", "1"))
	require.NoError(t, ms.Set(ctx, "a", "2"))

	v, ok, err := ms.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	require.NoError(t, ms.Remove(ctx, "a"))
	_, ok, _ = ms.Get(ctx, "a")
	assert.False(t, ok)
}

// recordingStore captures the order of operations per key.
type recordingStore struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (rs *recordingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (rs *recordingStore) Set(_ context.Context, key, value string) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.events = append(rs.events, "set "+key+"="+value)
	return rs.err
}

func (rs *recordingStore) Remove(_ context.Context, key string) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.events = append(rs.events, "remove "+key)
	return rs.err
}

func TestWriterOrderingPerKey(t *testing.T) {
	rs := &recordingStore{}
	w := NewWriter(rs, zap.NewNop())

	w.Set("roomPhotos", "1")
	w.Set("roomPhotos", "2")
	w.Remove("roomPhotos")
	w.Set("roomPhotos", "3")
	w.Flush()

	assert.Equal(t, []string{
		"set roomPhotos=1",
		"set roomPhotos=2",
		"remove roomPhotos",
		"set roomPhotos=3",
	}, rs.events)
}

func TestWriterSwallowsErrors(t *testing.T) {
	rs := &recordingStore{err: errors.New("disk full")}
	w := NewWriter(rs, zap.NewNop())

	// Must not panic or block even though every write fails.
	w.Set("inspectionData", "{}")
	w.Remove("inspectionData")
	w.Flush()

	assert.Len(t, rs.events, 2)
}

func TestWriterFinalStateWins(t *testing.T) {
	ms := NewMemStore()
	w := NewWriter(ms, zap.NewNop())

	for i := 0; i < 50; i++ {
		w.Set("k", "old")
	}
	w.Set("k", "new")
	w.Flush()

	v, ok, err := ms.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", v)
}
