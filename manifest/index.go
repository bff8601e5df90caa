package manifest

import (
	"encoding/json"
)

// DefaultIndexURL is the published version index.
const DefaultIndexURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

// Index is the version index listing every published descriptor.
type Index struct {
	Latest   Latest    `json:"latest"`
	Versions []Version `json:"versions"`
}

type Latest struct {
	Release  string `json:"release"`
	Snapshot string `json:"snapshot"`
}

type Version struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
	SHA1        string `json:"sha1,omitempty"`
}

// ParseIndex decodes a version index.
func ParseIndex(data []byte) (*Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// Get returns the entry for id. The aliases "release" and "snapshot" name
// the latest version of that kind.
func (idx *Index) Get(id string) (Version, bool) {
	switch id {
	case "release":
		id = idx.Latest.Release
	case "snapshot":
		id = idx.Latest.Snapshot
	}
	for _, v := range idx.Versions {
		if v.ID == id {
			return v, true
		}
	}
	return Version{}, false
}
