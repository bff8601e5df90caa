// Package manifest loads version descriptors by id or path, fetching them
// from the version index when they are not available locally.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/akrylysov/pogreb"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	slogctx "github.com/veqryn/slog-context"

	"github.com/tie/mclaunch/inherit"
	"github.com/tie/mclaunch/models"
)

var _ inherit.Loader = (*Store)(nil)

// Downloader fetches download targets into the store's filesystem.
type Downloader interface {
	Fetch(ctx context.Context, ds []models.Download) error
}

// Store is a descriptor loader backed by a versions directory.
//
// Descriptors live at Dir/<id>/<id>.json on Files. DB, when set, caches the
// raw descriptor bytes by id.
type Store struct {
	Files      billy.Filesystem
	Dir        string
	IndexPath  string
	IndexURL   string
	Downloader Downloader
	DB         *pogreb.DB

	mu    sync.Mutex
	index *Index
}

// Path is where the descriptor of id is stored.
func (s *Store) Path(id string) string {
	return s.Files.Join(s.Dir, id, id+".json")
}

// Load returns the descriptor at the path ref, or the descriptor with id ref.
// A stored descriptor file wins over the database, which only stands in for
// a missing file before the index is consulted.
func (s *Store) Load(ctx context.Context, ref string) (*models.VersionDescriptor, error) {
	if fi, err := s.Files.Stat(ref); err == nil && !fi.IsDir() {
		return s.read(ref)
	}
	id := ref

	fpath := s.Path(id)
	_, err := s.Files.Stat(fpath)
	if err == nil {
		return s.read(fpath)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if s.DB != nil {
		data, err := s.DB.Get([]byte(id))
		if err != nil {
			return nil, err
		}
		if data != nil {
			slogctx.FromCtx(ctx).Debug("descriptor cache hit", "id", id)
			return models.ParseDescriptor(data)
		}
	}

	fpath, err = s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.read(fpath)
}

// fetch downloads the descriptor of id and returns its path.
func (s *Store) fetch(ctx context.Context, id string) (string, error) {
	idx, err := s.Index(ctx)
	if err != nil {
		return "", err
	}
	v, ok := idx.Get(id)
	if !ok {
		return "", fmt.Errorf("%q: %w", id, models.ErrVersionNotFound)
	}
	fpath := s.Path(v.ID)
	slogctx.FromCtx(ctx).Info("fetching descriptor", "id", v.ID, "url", v.URL)
	err = s.download(ctx, models.Download{URL: v.URL, Path: fpath, SHA1: v.SHA1})
	return fpath, err
}

// Index returns the version index, downloading it when missing.
func (s *Store) Index(ctx context.Context) (*Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index != nil {
		return s.index, nil
	}
	_, err := s.Files.Stat(s.IndexPath)
	if errors.Is(err, os.ErrNotExist) {
		rawurl := s.IndexURL
		if rawurl == "" {
			rawurl = DefaultIndexURL
		}
		err = s.download(ctx, models.Download{URL: rawurl, Path: s.IndexPath})
	}
	if err != nil {
		return nil, err
	}
	data, err := util.ReadFile(s.Files, s.IndexPath)
	if err != nil {
		return nil, err
	}
	idx, err := ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", s.IndexPath, err)
	}
	s.index = idx
	return idx, nil
}

func (s *Store) download(ctx context.Context, d models.Download) error {
	if s.Downloader == nil {
		return fmt.Errorf("%q: %w", d.Path, models.ErrVersionNotFound)
	}
	return s.Downloader.Fetch(ctx, []models.Download{d})
}

func (s *Store) read(fpath string) (*models.VersionDescriptor, error) {
	data, err := util.ReadFile(s.Files, fpath)
	if err != nil {
		return nil, err
	}
	d, err := models.ParseDescriptor(data)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", fpath, err)
	}
	if s.DB != nil {
		if err := s.DB.Put([]byte(d.ID), data); err != nil {
			return nil, err
		}
	}
	return d, nil
}
