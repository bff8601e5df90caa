// Package assets turns an asset index into content-addressed download
// targets.
package assets

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/tie/mclaunch/models"
)

// DefaultBaseURL serves asset objects by hash.
const DefaultBaseURL = "https://resources.download.minecraft.net"

// Index is a decoded asset index.
type Index struct {
	Objects        map[string]Object `json:"objects"`
	Virtual        bool              `json:"virtual,omitempty"`
	MapToResources bool              `json:"map_to_resources,omitempty"`
}

type Object struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

func ParseIndex(data []byte) (*Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// IndexPath is where the asset index of d is stored below dir.
func IndexPath(d *models.VersionDescriptor, dir string) string {
	return filepath.Join(dir, "indexes", d.AssetIndex.ID+".json")
}

// IndexDownload returns the target fetching the asset index of d.
func IndexDownload(d *models.VersionDescriptor, dir string) models.Download {
	return models.Download{
		URL:  d.AssetIndex.URL,
		Path: IndexPath(d, dir),
		SHA1: d.AssetIndex.SHA1,
		Size: d.AssetIndex.Size,
	}
}

// Resolver maps asset objects to download targets.
type Resolver struct {
	BaseURL string
}

// Objects returns targets for every object of idx not yet present below
// dir, ordered by asset name. Objects are stored as objects/<hh>/<hash>;
// virtual and resource-mapped indexes also get a copy under their name.
func (r Resolver) Objects(idx *Index, dir string) ([]models.Download, error) {
	base := r.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	names := make([]string, 0, len(idx.Objects))
	for name := range idx.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	var ds []models.Download
	for _, name := range names {
		obj := idx.Objects[name]
		if len(obj.Hash) < 2 {
			continue
		}
		prefix := obj.Hash[:2]
		url := base + "/" + prefix + "/" + obj.Hash
		paths := []string{filepath.Join(dir, "objects", prefix, obj.Hash)}
		if idx.Virtual {
			paths = append(paths, filepath.Join(dir, "virtual", "legacy", filepath.FromSlash(name)))
		}
		if idx.MapToResources {
			paths = append(paths, filepath.Join(dir, "resources", filepath.FromSlash(name)))
		}
		for _, p := range paths {
			ok, err := exists(p)
			if err != nil {
				return nil, err
			}
			if ok {
				continue
			}
			ds = append(ds, models.Download{
				URL:  url,
				Path: p,
				SHA1: obj.Hash,
				Size: obj.Size,
			})
		}
	}
	return ds, nil
}

func exists(p string) (bool, error) {
	_, err := os.Stat(p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
