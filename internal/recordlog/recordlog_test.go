package recordlog

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/llehouerou/tunedeck/internal/storage"
)

type entry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type seedMap map[string]string

func (s seedMap) Seed(name string) ([]byte, bool) {
	data, ok := s[name]
	return []byte(data), ok
}

func TestLoadAll_NoOverlayNoSeed(t *testing.T) {
	l := New[entry]("comment_records", storage.NewMemory(), nil, zaptest.NewLogger(t))

	got := l.LoadAll(context.Background())

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadAll_FallsBackToSeed(t *testing.T) {
	seeds := seedMap{"styles": `[{"id":"PS1","text":"retro_cd"}]`}
	l := New[entry]("styles", storage.NewMemory(), seeds, zaptest.NewLogger(t))

	got := l.LoadAll(context.Background())

	assert.Equal(t, []entry{{ID: "PS1", Text: "retro_cd"}}, got)
}

func TestLoadAll_OverlayReplacesSeed(t *testing.T) {
	ctx := context.Background()
	seeds := seedMap{"styles": `[{"id":"PS1","text":"retro_cd"}]`}
	mem := storage.NewMemory()
	mem.Put("styles", []byte(`[]`))
	l := New[entry]("styles", mem, seeds, zaptest.NewLogger(t))

	assert.Empty(t, l.LoadAll(ctx))
}

func TestAppend_FirstWriteStartsFromSeed(t *testing.T) {
	ctx := context.Background()
	seeds := seedMap{"styles": `[{"id":"PS1","text":"retro_cd"}]`}
	mem := storage.NewMemory()
	l := New[entry]("styles", mem, seeds, zaptest.NewLogger(t))

	require.NoError(t, l.Append(ctx, entry{ID: "PS2", Text: "vinyl"}))

	assert.Equal(t, []entry{
		{ID: "PS1", Text: "retro_cd"},
		{ID: "PS2", Text: "vinyl"},
	}, l.LoadAll(ctx))
}

func TestAppend_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	l := New[entry]("download_records", storage.NewMemory(), nil, zaptest.NewLogger(t))

	for _, id := range []string{"DR1", "DR2", "DR3"} {
		require.NoError(t, l.Append(ctx, entry{ID: id}))
	}

	got := l.LoadAll(ctx)
	require.Len(t, got, 3)
	assert.Equal(t, "DR1", got[0].ID)
	assert.Equal(t, "DR2", got[1].ID)
	assert.Equal(t, "DR3", got[2].ID)
	assert.Equal(t, 3, l.Len(ctx))
}

func TestMalformedOverlay_RecoversOnAppend(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	dir, err := storage.NewDir(root)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	l := New[entry]("comment_records", dir, nil, zap.New(core))

	require.NoError(t, l.Append(ctx, entry{ID: "CM1"}))
	path := filepath.Join(root, "comment_records.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "CM1"`), 0o644))

	assert.Empty(t, l.LoadAll(ctx))
	assert.Equal(t, 1, logs.FilterMessage("malformed document, treating as empty").Len())

	require.NoError(t, l.Append(ctx, entry{ID: "CM2", Text: "fresh"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"CM2","text":"fresh"}]`, string(data))
}

func TestMalformedSeed_IsEmpty(t *testing.T) {
	seeds := seedMap{"playlists": `{not json`}
	l := New[entry]("playlists", storage.NewMemory(), seeds, zaptest.NewLogger(t))

	assert.Empty(t, l.LoadAll(context.Background()))
}

func TestAppend_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	l := New[entry]("search_records", mem, nil, zaptest.NewLogger(t))
	require.NoError(t, l.Append(ctx, entry{ID: "SR1"}))

	mem.SetFailWrites(true)
	err := l.Append(ctx, entry{ID: "SR2"})

	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrPersistence)
	assert.ErrorIs(t, err, storage.ErrInjected)

	mem.SetFailWrites(false)
	assert.Equal(t, []entry{{ID: "SR1"}}, l.LoadAll(ctx))
}

func TestWrites_ReadFailureLeavesOverlayIntact(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	l := New[entry]("collection_records", mem, nil, zaptest.NewLogger(t))
	require.NoError(t, l.Append(ctx, entry{ID: "CR1"}))
	require.NoError(t, l.Append(ctx, entry{ID: "CR2"}))
	writes := mem.Writes()

	mem.SetFailReads(true)
	assert.Empty(t, l.LoadAll(ctx))

	err := l.Append(ctx, entry{ID: "CR3"})
	assert.ErrorIs(t, err, storage.ErrPersistence)
	assert.ErrorIs(t, err, storage.ErrInjected)

	err = l.Update(ctx, func(records []entry) []entry { return records[:0] })
	assert.ErrorIs(t, err, storage.ErrPersistence)

	mem.SetFailReads(false)
	assert.Equal(t, writes, mem.Writes())
	assert.Equal(t, []entry{{ID: "CR1"}, {ID: "CR2"}}, l.LoadAll(ctx))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	seeds := seedMap{"search_records": `[{"id":"SR0"}]`}
	mem := storage.NewMemory()
	l := New[entry]("search_records", mem, seeds, zaptest.NewLogger(t))
	require.NoError(t, l.Append(ctx, entry{ID: "SR1"}))

	require.NoError(t, l.Clear(ctx))

	// Cleared overlay must not resurrect the seed.
	assert.Empty(t, l.LoadAll(ctx))
}

func TestReplaceAndUpdate(t *testing.T) {
	ctx := context.Background()
	l := New[entry]("search_records", storage.NewMemory(), nil, zaptest.NewLogger(t))

	require.NoError(t, l.Replace(ctx, []entry{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, l.Update(ctx, func(es []entry) []entry {
		return append([]entry{{ID: "c"}}, es[:1]...)
	}))

	assert.Equal(t, []entry{{ID: "c"}, {ID: "a"}}, l.LoadAll(ctx))
}

func TestAppend_ConcurrentWritersAllLand(t *testing.T) {
	ctx := context.Background()
	l := New[entry]("collection_records", storage.NewMemory(), nil, zaptest.NewLogger(t))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Append(ctx, entry{ID: "CR"}))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, l.Len(ctx))
}

func TestDocument_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	d := NewDocument[entry]("playlists", mem, nil, nil)

	_, err := mem.Read(ctx, "playlists")
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, d.Save(ctx, nil))

	data, err := mem.Read(ctx, "playlists")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
