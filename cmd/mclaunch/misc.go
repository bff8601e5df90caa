package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akrylysov/pogreb"
	pogrebfs "github.com/akrylysov/pogreb/fs"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/term"

	"github.com/tie/internal/robustio"

	"github.com/tie/mclaunch"
	"github.com/tie/mclaunch/fetcher"
	"github.com/tie/mclaunch/manifest"
	"github.com/tie/mclaunch/profile"
	"github.com/tie/mclaunch/profile/hclspec"
	"github.com/tie/mclaunch/rules"
	"github.com/tie/mclaunch/runtime"
)

func cacheDir(p string) (string, error) {
	c, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(c, p), nil
}

func makeCache(p string) (string, error) {
	c, err := cacheDir(p)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(c, 0700); err != nil {
		return "", err
	}
	return c, nil
}

func newDiagWr(p *hclparse.Parser) (diagWr hcl.DiagnosticWriter, color bool) {
	files := p.Files()
	stderr := os.Stderr
	fd := int(stderr.Fd())
	istty, color := fdinfo(fd)
	if !istty {
		return hcl.NewDiagnosticTextWriter(stderr, files, 80, color), color
	}
	width := uint(80)
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		width = uint(w)
	}
	return hcl.NewDiagnosticTextWriter(stderr, files, width, color), color
}

func fdinfo(fd int) (istty, color bool) {
	istty = term.IsTerminal(fd)
	if istty {
		color = true
	}
	// See https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color = false
	}
	return
}

// parseProfiles parses every profile and writes diagnostics for all of them
// before reporting failure.
func parseProfiles(paths []string) ([]hclspec.Profile, bool) {
	parser := hclparse.NewParser()
	ms := make([]hclspec.Profile, 0, len(paths))
	var diags hcl.Diagnostics
	for _, fpath := range paths {
		src, err := robustio.ReadFile(fpath)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Failed to read profile",
				Detail:   fmt.Sprintf("read %q: %v", fpath, err),
			})
			continue
		}
		m, mdiags := profile.Parse(parser, src, fpath)
		diags = append(diags, mdiags...)
		ms = append(ms, m)
	}
	if len(diags) > 0 {
		diagWr, _ := newDiagWr(parser)
		if err := diagWr.WriteDiagnostics(diags); err != nil {
			fmt.Fprintf(os.Stderr, "write diags: %+v\n", err)
		}
	}
	return ms, !diags.HasErrors()
}

// session wires the collaborators of one command run.
type session struct {
	profile profile.Profile
	layout  mclaunch.Layout
	fetcher *fetcher.Fetcher
	store   *manifest.Store
	db      *pogreb.DB
}

func openSession(ctx context.Context, paths []string, disableCache bool) (*session, error) {
	if len(paths) == 0 {
		paths = []string{defaultProfile}
	}
	ms, ok := parseProfiles(paths)
	if !ok {
		return nil, fmt.Errorf("invalid profiles")
	}
	prof := profile.Merge(ms)
	if prof.Version == "" {
		return nil, fmt.Errorf("no version set in %q", paths)
	}
	dir := prof.Directory
	if dir == "" {
		dir = "."
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	var cache billy.Filesystem
	var db *pogreb.DB
	if !disableCache {
		cachePath, err := makeCache(programName)
		if err != nil {
			return nil, fmt.Errorf("make cache: %w", err)
		}
		cache = osfs.New(cachePath)
		db, err = pogreb.Open(filepath.Join(cachePath, "db"), nil)
		if err != nil {
			return nil, fmt.Errorf("open pogreb: %w", err)
		}
	} else {
		db, err = pogreb.Open("db", &pogreb.Options{FileSystem: pogrebfs.Mem})
		if err != nil {
			return nil, fmt.Errorf("open pogreb: %w", err)
		}
	}

	files := osfs.New("")
	f := fetcher.New(files, cache, prof.MaxRedirects, prof.MaxConcurrent)
	layout := mclaunch.Layout{Root: root}
	store := &manifest.Store{
		Files:      files,
		Dir:        layout.Versions(),
		IndexPath:  layout.IndexPath(),
		Downloader: f,
		DB:         db,
	}
	slogctx.FromCtx(ctx).Debug("session opened", "root", root, "version", prof.Version, "cache", !disableCache)
	return &session{
		profile: prof,
		layout:  layout,
		fetcher: f,
		store:   store,
		db:      db,
	}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// sumsCache gives the fetcher a cache even when caching is disabled, since
// sums are read from it.
func (s *session) sumsCache() {
	if s.fetcher.Cache == nil {
		s.fetcher.Cache = memfs.New()
	}
}

func (s *session) plan(ctx context.Context) (*mclaunch.Plan, error) {
	platform := rules.Detect()
	opts := mclaunch.Options{
		Layout:   s.layout,
		Platform: platform,
		Features: s.profile.Features,
		Vars:     s.profile.Vars,
		JVMArgs:  s.profile.JVMArgs,
		Runtime: runtime.Provisioner{
			Distribution: s.profile.Distribution,
			Platform:     platform,
		},
		Java:   s.profile.Java,
		Logger: slogctx.FromCtx(ctx),
	}
	p, err := mclaunch.Prepare(ctx, s.profile.Version, s.store, opts)
	if err != nil {
		return nil, err
	}
	p.Downloads = s.profile.Pin(p.Downloads)
	return p, nil
}
