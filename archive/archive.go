// Package archive unpacks downloaded archives into a billy filesystem.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/tie/mclaunch/models"
)

var ErrUnsafePath = errors.New("archive entry escapes destination")

// Extract unpacks the archive name on fs into u.Dir using u.Method.
func Extract(fs billy.Filesystem, name string, u models.Unpack) (err error) {
	f, err := fs.Open(name)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()
	x := &Extractor{Files: fs, Dir: u.Dir, Exclude: u.Exclude}
	switch u.Method {
	case models.UnpackZip:
		fi, err := fs.Stat(name)
		if err != nil {
			return err
		}
		return x.AddZip(f, fi.Size())
	case models.UnpackTarGz:
		return x.AddTarGz(f)
	}
	return fmt.Errorf("%q: %w", u.Method, models.ErrUnknownUnpackMethod)
}

// Extractor writes archive entries below Dir, skipping entries whose name
// starts with one of the Exclude prefixes.
type Extractor struct {
	Files   billy.Filesystem
	Dir     string
	Exclude []string
}

func (x *Extractor) AddZip(r io.ReaderAt, size int64) error {
	z, err := zip.NewReader(r, size)
	if err != nil {
		return err
	}
	for _, f := range z.File {
		// Names ending in a slash are directories; they are created
		// on demand for the files below them.
		if strings.HasSuffix(f.Name, "/") || x.excluded(f.Name) {
			continue
		}
		name, err := x.target(f.Name)
		if err != nil {
			return err
		}
		if err := x.addZipFile(f, name); err != nil {
			return err
		}
	}
	return nil
}

func (x *Extractor) addZipFile(f *zip.File, name string) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	return x.addReader(r, name, f.Mode().Perm())
}

func (x *Extractor) AddTarGz(r io.Reader) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer gz.Close()
	t := tar.NewReader(gz)
	for {
		hdr, err := t.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if x.excluded(hdr.Name) {
			continue
		}
		name, err := x.target(hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := x.Files.MkdirAll(name, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := x.addReader(t, name, os.FileMode(hdr.Mode).Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := x.Files.MkdirAll(filepath.Dir(name), 0755); err != nil {
				return err
			}
			if err := x.Files.Symlink(hdr.Linkname, name); err != nil && !errors.Is(err, os.ErrExist) {
				return err
			}
		}
	}
}

func (x *Extractor) addReader(r io.Reader, name string, perm os.FileMode) (err error) {
	if perm == 0 {
		perm = 0644
	}
	if err := x.Files.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}
	w, err := x.Files.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		cerr := w.Close()
		if err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(w, r)
	return err
}

func (x *Extractor) excluded(name string) bool {
	for _, prefix := range x.Exclude {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// target maps an entry name to its path below Dir.
func (x *Extractor) target(name string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%q: %w", name, ErrUnsafePath)
	}
	return x.Files.Join(x.Dir, filepath.FromSlash(clean)), nil
}
