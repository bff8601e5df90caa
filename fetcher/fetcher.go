// Package fetcher downloads resolved artifacts into a billy filesystem,
// verifying their checksums and unpacking them when asked to.
package fetcher

import (
	"bufio"
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/crypto/sha3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/tie/mclaunch/archive"
	"github.com/tie/mclaunch/models"
)

const (
	DefaultMaxRedirects  = 30
	DefaultMaxConcurrent = 8
)

var ErrTooManyRedirects = errors.New("too many redirects")

// Fetcher downloads models.Download targets.
//
// Files holds the destination paths. Cache, when set, keeps every fetched
// blob keyed by its URL next to a sums file, so later runs and other
// destinations reuse it.
type Fetcher struct {
	Files  billy.Filesystem
	Cache  billy.Filesystem
	Client *http.Client

	MaxRedirects  int
	MaxConcurrent int

	// fills collapses concurrent cache fills of one URL.
	fills singleflight.Group
}

// New returns a Fetcher with its own http.Client honoring maxRedirects.
func New(files, cache billy.Filesystem, maxRedirects, maxConcurrent int) *Fetcher {
	if maxRedirects <= 0 {
		maxRedirects = DefaultMaxRedirects
	}
	c := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("%s: %w", req.URL, ErrTooManyRedirects)
			}
			return nil
		},
	}
	return &Fetcher{
		Files:         files,
		Cache:         cache,
		Client:        c,
		MaxRedirects:  maxRedirects,
		MaxConcurrent: maxConcurrent,
	}
}

// Fetch downloads all targets with at most MaxConcurrent transfers in
// flight. Targets already present at their destination are skipped, and only
// the first target for a destination path is fetched.
func (dl *Fetcher) Fetch(ctx context.Context, ds []models.Download) error {
	limit := dl.MaxConcurrent
	if limit <= 0 {
		limit = DefaultMaxConcurrent
	}
	seen := make(map[string]bool, len(ds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, d := range ds {
		if seen[d.Path] {
			continue
		}
		seen[d.Path] = true
		g.Go(func() error {
			if err := dl.Get(ctx, d); err != nil {
				return fmt.Errorf("fetch %q: %w", d.URL, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Get downloads a single target. An archive already at its destination is
// not fetched again but is still unpacked, since its unpack directory may be
// new or emptied.
func (dl *Fetcher) Get(ctx context.Context, d models.Download) error {
	log := slogctx.FromCtx(ctx)
	done, err := dl.present(d)
	if err != nil {
		return err
	}
	switch {
	case done:
		log.Debug("already downloaded", "path", d.Path)
	case dl.Cache == nil:
		log.Debug("downloading", "url", d.URL, "path", d.Path, "size", d.Size)
		if err := dl.download(ctx, d); err != nil {
			return err
		}
	default:
		log.Debug("downloading", "url", d.URL, "path", d.Path, "size", d.Size)
		if err := dl.fromCache(ctx, d); err != nil {
			return err
		}
	}

	if d.Unpack == nil {
		return nil
	}
	log.Debug("unpacking", "path", d.Path, "dir", d.Unpack.Dir)
	if err := archive.Extract(dl.Files, d.Path, *d.Unpack); err != nil {
		return fmt.Errorf("unpack %q: %w", d.Path, err)
	}
	if d.Unpack.DeleteAfter {
		return dl.Files.Remove(d.Path)
	}
	return nil
}

// Sums returns the checksums recorded for the target's URL, downloading it
// into the cache first if needed. Sums are formatted as "name:hex".
func (dl *Fetcher) Sums(ctx context.Context, d models.Download) ([]string, error) {
	if dl.Cache == nil {
		return nil, errors.New("sums: no cache filesystem")
	}
	dir, base := cachePath(dl.Cache, d.URL)
	if err := dl.cache(ctx, d.URL, dir, base); err != nil {
		return nil, err
	}
	return readSums(dl.Cache, dir, base)
}

// present reports whether the destination already holds the target.
func (dl *Fetcher) present(d models.Download) (bool, error) {
	fi, err := dl.Files.Stat(d.Path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if d.Size > 0 && fi.Size() != d.Size {
		return false, nil
	}
	return true, nil
}

// download streams the target straight into its destination.
func (dl *Fetcher) download(ctx context.Context, d models.Download) error {
	sums, err := dl.writeFile(ctx, dl.Files, d.URL, d.Path)
	if err != nil {
		return err
	}
	if err := verify(d, sums); err != nil {
		_ = dl.Files.Remove(d.Path)
		return err
	}
	return nil
}

func (dl *Fetcher) fromCache(ctx context.Context, d models.Download) error {
	dir, base := cachePath(dl.Cache, d.URL)
	if err := dl.cache(ctx, d.URL, dir, base); err != nil {
		return err
	}
	sums, err := readSums(dl.Cache, dir, base)
	if err != nil {
		return err
	}
	if err := verify(d, sums); err != nil {
		dl.evict(ctx, dir, base)
		return err
	}
	src, err := dl.Cache.Open(dl.Cache.Join(dir, base+".dat"))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			slogctx.FromCtx(ctx).Warn("close cache file", "name", src.Name(), "error", cerr)
		}
	}()
	if err := dl.Files.MkdirAll(filepath.Dir(d.Path), 0755); err != nil {
		return err
	}
	dst, err := dl.Files.Create(d.Path)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	return err
}

// cache downloads rawurl into the cache unless it is already there.
// Concurrent callers for the same URL share one transfer.
func (dl *Fetcher) cache(ctx context.Context, rawurl, dir, base string) error {
	_, err, _ := dl.fills.Do(base, func() (interface{}, error) {
		_, err := dl.Cache.Stat(dl.Cache.Join(dir, base+".sum"))
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		sums, err := dl.writeFile(ctx, dl.Cache, rawurl, dl.Cache.Join(dir, base+".dat"))
		if err != nil {
			return nil, err
		}
		return nil, writeSums(dl.Cache, dir, base, sums)
	})
	return err
}

// evict drops a cache entry whose content failed verification.
func (dl *Fetcher) evict(ctx context.Context, dir, base string) {
	for _, ext := range []string{".sum", ".dat"} {
		name := dl.Cache.Join(dir, base+ext)
		if err := dl.Cache.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			slogctx.FromCtx(ctx).Warn("evict cache entry", "name", name, "error", err)
		}
	}
}

// writeFile fetches rawurl into name on fs and returns its sums.
func (dl *Fetcher) writeFile(ctx context.Context, fs billy.Filesystem, rawurl, name string) (sums []string, err error) {
	hashNames := []string{
		"md5",
		"sha1",
		"sha256",
		"keccak256",
	}
	hashes := []hash.Hash{
		md5.New(),
		sha1.New(),
		sha256.New(),
		sha3.NewLegacyKeccak256(),
	}
	if err := fs.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return nil, err
	}
	f, err := fs.OpenFile(name, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	ww := make([]io.Writer, 0, len(hashes)+1)
	for _, h := range hashes {
		ww = append(ww, h)
	}
	ww = append(ww, f)
	n, err := dl.fetchFile(ctx, io.MultiWriter(ww...), rawurl)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = fs.Remove(name)
		return nil, err
	}
	sums = make([]string, 0, len(hashes)+1)
	for i, hn := range hashNames {
		sums = append(sums, fmt.Sprintf("%s:%x", hn, hashes[i].Sum(nil)))
	}
	sums = append(sums, fmt.Sprintf("size:%d", n))
	return sums, nil
}

func (dl *Fetcher) fetchFile(ctx context.Context, w io.Writer, rawurl string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return 0, err
	}
	c := dl.Client
	if c == nil {
		c = http.DefaultClient
	}
	resp, err := c.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slogctx.FromCtx(ctx).Warn("close response body", "url", rawurl, "error", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("GET %s: %s", rawurl, resp.Status)
	}
	return io.Copy(w, resp.Body)
}

// verify checks the expected checksums and size against the recorded sums.
func verify(d models.Download, sums []string) error {
	have := make(map[string]struct{}, len(sums))
	for _, s := range sums {
		have[s] = struct{}{}
	}
	if d.Size > 0 {
		if _, ok := have[fmt.Sprintf("size:%d", d.Size)]; !ok {
			return fmt.Errorf("%s: %w", d.URL, models.ErrSizeMismatch)
		}
	}
	want := map[string]string{
		"sha1":   d.SHA1,
		"sha256": d.SHA256,
	}
	for name, sum := range want {
		if sum == "" {
			continue
		}
		if _, ok := have[name+":"+strings.ToLower(sum)]; !ok {
			return fmt.Errorf("%s %s: %w", d.URL, name, models.ErrSumsMismatch)
		}
	}
	return nil
}

func cachePath(fs billy.Basic, rawurl string) (dir, base string) {
	sum := sha1.Sum([]byte(rawurl))
	hex := fmt.Sprintf("%x", sum)
	return fs.Join("http", hex[:2]), hex
}

func readSums(fs billy.Basic, dir, base string) ([]string, error) {
	f, err := fs.Open(fs.Join(dir, base+".sum"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var sums []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		if sum := strings.TrimSpace(s.Text()); sum != "" {
			sums = append(sums, sum)
		}
	}
	return sums, s.Err()
}

func writeSums(fs billy.Basic, dir, base string, sums []string) error {
	var b strings.Builder
	for _, sum := range sums {
		fmt.Fprintf(&b, "%s\r\n", sum)
	}
	return util.WriteFile(fs, fs.Join(dir, base+".sum"), []byte(b.String()), 0644)
}
