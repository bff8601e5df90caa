package assets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tie/mclaunch/assets"
	"github.com/tie/mclaunch/models"
)

const indexJSON = `{
	"objects": {
		"minecraft/sounds/ambient/cave/cave1.ogg": {"hash": "a9b8c4a1f3c8b2e7d6f5a4b3c2d1e0f9a8b7c6d5", "size": 13},
		"icons/icon_16x16.png": {"hash": "bdf48ef6b5d0d23bbb02e17d04865216179f510a", "size": 3665}
	}
}`

func TestObjects(t *testing.T) {
	idx, err := assets.ParseIndex([]byte(indexJSON))
	require.NoError(t, err)
	dir := t.TempDir()

	ds, err := assets.Resolver{}.Objects(idx, dir)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, models.Download{
		URL:  assets.DefaultBaseURL + "/bd/bdf48ef6b5d0d23bbb02e17d04865216179f510a",
		Path: filepath.Join(dir, "objects", "bd", "bdf48ef6b5d0d23bbb02e17d04865216179f510a"),
		SHA1: "bdf48ef6b5d0d23bbb02e17d04865216179f510a",
		Size: 3665,
	}, ds[0])
	assert.Equal(t, filepath.Join(dir, "objects", "a9", "a9b8c4a1f3c8b2e7d6f5a4b3c2d1e0f9a8b7c6d5"), ds[1].Path)

	// present objects are skipped
	require.NoError(t, os.MkdirAll(filepath.Dir(ds[0].Path), 0755))
	require.NoError(t, os.WriteFile(ds[0].Path, []byte("png"), 0644))
	ds, err = assets.Resolver{BaseURL: "http://mirror.test"}.Objects(idx, dir)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "http://mirror.test/a9/a9b8c4a1f3c8b2e7d6f5a4b3c2d1e0f9a8b7c6d5", ds[0].URL)
}

func TestObjectsVirtual(t *testing.T) {
	idx := &assets.Index{
		Virtual:        true,
		MapToResources: true,
		Objects: map[string]assets.Object{
			"sound/step/grass1.ogg": {Hash: "4e9d2bd8f6a1c2b3d4e5f60718293a4b5c6d7e8f", Size: 1},
		},
	}
	dir := t.TempDir()
	ds, err := assets.Resolver{}.Objects(idx, dir)
	require.NoError(t, err)
	require.Len(t, ds, 3)
	assert.Equal(t, filepath.Join(dir, "virtual", "legacy", "sound", "step", "grass1.ogg"), ds[1].Path)
	assert.Equal(t, filepath.Join(dir, "resources", "sound", "step", "grass1.ogg"), ds[2].Path)
	assert.Equal(t, ds[0].URL, ds[2].URL)
}

func TestIndexDownload(t *testing.T) {
	d := &models.VersionDescriptor{AssetIndex: models.AssetIndex{ID: "5", URL: "https://meta.test/5.json", SHA1: "abc", Size: 10}}
	got := assets.IndexDownload(d, "assets")
	assert.Equal(t, filepath.Join("assets", "indexes", "5.json"), got.Path)
	assert.Equal(t, "abc", got.SHA1)
}
