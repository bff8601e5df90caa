package manifest_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/akrylysov/pogreb"
	pogrebfs "github.com/akrylysov/pogreb/fs"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tie/mclaunch/manifest"
	"github.com/tie/mclaunch/models"
)

const indexJSON = `{
	"latest": {"release": "1.20.1", "snapshot": "23w31a"},
	"versions": [
		{"id": "23w31a", "type": "snapshot", "url": "https://meta.test/23w31a.json"},
		{"id": "1.20.1", "type": "release", "url": "https://meta.test/1.20.1.json"}
	]
}`

// fakeDownloader serves canned bodies by URL into a billy filesystem.
type fakeDownloader struct {
	fs     billy.Filesystem
	bodies map[string]string
	urls   []string
}

func (f *fakeDownloader) Fetch(_ context.Context, ds []models.Download) error {
	for _, d := range ds {
		f.urls = append(f.urls, d.URL)
		body, ok := f.bodies[d.URL]
		if !ok {
			return fmt.Errorf("GET %s: 404 Not Found", d.URL)
		}
		if err := util.WriteFile(f.fs, d.Path, []byte(body), 0644); err != nil {
			return err
		}
	}
	return nil
}

func newStore(t *testing.T) (*manifest.Store, *fakeDownloader) {
	files := memfs.New()
	dl := &fakeDownloader{
		fs: files,
		bodies: map[string]string{
			"https://meta.test/index.json":  indexJSON,
			"https://meta.test/1.20.1.json": `{"id": "1.20.1", "mainClass": "net.minecraft.client.main.Main"}`,
		},
	}
	return &manifest.Store{
		Files:      files,
		Dir:        "versions",
		IndexPath:  "versions/index.json",
		IndexURL:   "https://meta.test/index.json",
		Downloader: dl,
	}, dl
}

func TestIndexGet(t *testing.T) {
	idx, err := manifest.ParseIndex([]byte(indexJSON))
	require.NoError(t, err)

	v, ok := idx.Get("release")
	require.True(t, ok)
	assert.Equal(t, "1.20.1", v.ID)
	v, ok = idx.Get("snapshot")
	require.True(t, ok)
	assert.Equal(t, "23w31a", v.ID)
	_, ok = idx.Get("b1.7.3")
	assert.False(t, ok)
}

func TestStoreFetchesMissing(t *testing.T) {
	s, dl := newStore(t)
	d, err := s.Load(context.Background(), "1.20.1")
	require.NoError(t, err)
	assert.Equal(t, "1.20.1", d.ID)
	assert.Equal(t, []string{"https://meta.test/index.json", "https://meta.test/1.20.1.json"}, dl.urls)

	_, err = s.Files.Stat(s.Path("1.20.1"))
	require.NoError(t, err)

	// second load reads the stored descriptor
	_, err = s.Load(context.Background(), "1.20.1")
	require.NoError(t, err)
	assert.Len(t, dl.urls, 2)
}

func TestStoreAlias(t *testing.T) {
	s, _ := newStore(t)
	d, err := s.Load(context.Background(), "release")
	require.NoError(t, err)
	assert.Equal(t, "1.20.1", d.ID)
}

func TestStoreLocalPath(t *testing.T) {
	s, dl := newStore(t)
	require.NoError(t, util.WriteFile(s.Files, "forge.json",
		[]byte(`{"id": "forge", "inheritsFrom": "1.20.1", "mainClass": "cpw.mods.bootstraplauncher.BootstrapLauncher"}`), 0644))
	d, err := s.Load(context.Background(), "forge.json")
	require.NoError(t, err)
	assert.Equal(t, "forge", d.ID)
	assert.Equal(t, "1.20.1", d.InheritsFrom)
	assert.Empty(t, dl.urls)
}

func TestStoreUnknownVersion(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Load(context.Background(), "b1.7.3")
	assert.ErrorIs(t, err, models.ErrVersionNotFound)
}

func TestStoreOffline(t *testing.T) {
	s := &manifest.Store{Files: memfs.New(), Dir: "versions", IndexPath: "versions/index.json"}
	_, err := s.Load(context.Background(), "1.20.1")
	assert.ErrorIs(t, err, models.ErrVersionNotFound)
}

func TestStoreDatabaseCache(t *testing.T) {
	db, err := pogreb.Open(t.Name(), &pogreb.Options{FileSystem: pogrebfs.Mem})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, dl := newStore(t)
	s.DB = db
	_, err = s.Load(context.Background(), "1.20.1")
	require.NoError(t, err)

	data, err := db.Get([]byte("1.20.1"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "net.minecraft.client.main.Main")

	// the descriptor is served from the database even without the file
	require.NoError(t, s.Files.Remove(s.Path("1.20.1")))
	d, err := s.Load(context.Background(), "1.20.1")
	require.NoError(t, err)
	assert.Equal(t, "1.20.1", d.ID)
	assert.Len(t, dl.urls, 2)
}

func TestStoreFileWinsOverDatabase(t *testing.T) {
	db, err := pogreb.Open(t.Name(), &pogreb.Options{FileSystem: pogrebfs.Mem})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Put([]byte("1.20.1"), []byte(`{"id": "1.20.1", "mainClass": "stale.Main"}`)))

	s, dl := newStore(t)
	s.DB = db
	require.NoError(t, util.WriteFile(s.Files, s.Path("1.20.1"),
		[]byte(`{"id": "1.20.1", "mainClass": "edited.Main"}`), 0644))

	d, err := s.Load(context.Background(), "1.20.1")
	require.NoError(t, err)
	assert.Equal(t, "edited.Main", d.MainClass)
	assert.Empty(t, dl.urls)

	data, err := db.Get([]byte("1.20.1"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "edited.Main")
}
