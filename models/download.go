package models

// Unpack methods understood by the archive extractor.
const (
	UnpackZip   = "zip"
	UnpackTarGz = "tar.gz"
)

// Download is a single target handed to the downloader: fetch URL into Path,
// verify it, and optionally unpack it afterwards.
type Download struct {
	URL  string
	Path string

	// Expected checksums in hex. Empty values are not checked.
	SHA1   string
	SHA256 string

	// Size is the expected size in bytes, zero when unknown.
	Size int64

	Unpack *Unpack
}

// Unpack asks the downloader to extract the file after it is verified.
type Unpack struct {
	Method string
	Dir    string

	// DeleteAfter removes the archive once extracted.
	DeleteAfter bool

	// Exclude lists entry name prefixes that are not extracted.
	Exclude []string
}
