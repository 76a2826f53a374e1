package presets

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempus-dev/tempus-go/pkg/duration"
)

func TestStoreSaveAndGet(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/data/presets.json")

	standup := duration.MustParse("PT15M")
	require.NoError(t, store.Save("standup", standup))

	got, err := store.Get("standup")
	require.NoError(t, err)
	assert.Equal(t, standup, got)
}

func TestStoreGetNotFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/data/presets.json")

	_, err := store.Get("lunch")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreSaveEmptyName(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/data/presets.json")

	err := store.Save("", duration.MustParse("PT1H"))
	assert.Error(t, err)
}

func TestStoreSaveOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/data/presets.json")

	require.NoError(t, store.Save("break", duration.MustParse("PT5M")))
	require.NoError(t, store.Save("break", duration.MustParse("PT10M")))

	got, err := store.Get("break")
	require.NoError(t, err)
	assert.Equal(t, "PT10M", got.String())
}

func TestStoreDelete(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/data/presets.json")

	require.NoError(t, store.Save("standup", duration.MustParse("PT15M")))
	require.NoError(t, store.Delete("standup"))

	_, err := store.Get("standup")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again reports not found
	assert.ErrorIs(t, store.Delete("standup"), ErrNotFound)
}

func TestStoreListSorted(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/data/presets.json")

	require.NoError(t, store.Save("sprint", duration.MustParse("P2W")))
	require.NoError(t, store.Save("break", duration.MustParse("PT5M")))
	require.NoError(t, store.Save("standup", duration.MustParse("PT15M")))

	assert.Equal(t, []string{"break", "sprint", "standup"}, store.List())
}

func TestStoreListEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/data/presets.json")

	assert.Empty(t, store.List())
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	fs := afero.NewMemMapFs()

	store1 := NewStore(fs, "/data/presets.json")
	require.NoError(t, store1.Save("standup", duration.MustParse("PT15M")))
	require.NoError(t, store1.Save("sprint", duration.MustParse("P2W")))

	// A fresh store on the same filesystem sees the saved presets.
	store2 := NewStore(fs, "/data/presets.json")
	require.NoError(t, store2.Load())

	got, err := store2.Get("sprint")
	require.NoError(t, err)
	assert.Equal(t, "P2W", got.String())
	assert.Equal(t, []string{"sprint", "standup"}, store2.List())
}

func TestStoreLoadMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/data/nonexistent.json")

	require.NoError(t, store.Load())
	assert.Empty(t, store.List())
}

func TestStoreLoadReplacesEntries(t *testing.T) {
	fs := afero.NewMemMapFs()

	store := NewStore(fs, "/data/presets.json")
	require.NoError(t, store.Save("keep", duration.MustParse("PT1H")))

	// Mutate in memory without persisting, then reload.
	store.entries["stray"] = duration.MustParse("PT2H")
	require.NoError(t, store.Load())

	_, err := store.Get("stray")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get("keep")
	assert.NoError(t, err)
}

func TestStoreLoadCorruptFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/presets.json", []byte("{not json"), 0644))

	store := NewStore(fs, "/data/presets.json")
	assert.Error(t, store.Load())
}

func TestStoreLoadBadDuration(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `{"version":1,"saved_at":"2026-01-01T00:00:00Z","presets":{"bad":"P1Y1W"}}`
	require.NoError(t, afero.WriteFile(fs, "/data/presets.json", []byte(content), 0644))

	store := NewStore(fs, "/data/presets.json")
	err := store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, duration.ErrParse)
}

func TestStoreFileFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/data/presets.json")

	require.NoError(t, store.Save("standup", duration.MustParse("PT15M")))

	data, err := afero.ReadFile(fs, "/data/presets.json")
	require.NoError(t, err)

	// Durations are stored as ISO text in a versioned envelope.
	var file struct {
		Version int               `json:"version"`
		Presets map[string]string `json:"presets"`
	}
	require.NoError(t, json.Unmarshal(data, &file))
	assert.Equal(t, StoreVersion, file.Version)
	assert.Equal(t, "PT15M", file.Presets["standup"])
}

func TestStoreFlush(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/deep/nested/dir/presets.json")

	// Flush on an empty store still creates the file and directories.
	require.NoError(t, store.Flush())

	exists, err := afero.Exists(fs, "/deep/nested/dir/presets.json")
	require.NoError(t, err)
	assert.True(t, exists)
}
