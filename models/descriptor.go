package models

import (
	"encoding/json"
	"fmt"
)

// VersionDescriptor describes one launchable build. A descriptor that names
// a parent in InheritsFrom is not effective until merged with it.
type VersionDescriptor struct {
	ID           string `json:"id"`
	InheritsFrom string `json:"inheritsFrom,omitempty"`
	MainClass    string `json:"mainClass"`
	Type         string `json:"type,omitempty"`
	Time         string `json:"time,omitempty"`
	ReleaseTime  string `json:"releaseTime,omitempty"`

	// MinecraftArguments is the legacy single-string game argument blob.
	// Exactly one of MinecraftArguments and Arguments is authoritative.
	MinecraftArguments *string    `json:"minecraftArguments,omitempty"`
	Arguments          *Arguments `json:"arguments,omitempty"`

	Libraries []Library `json:"libraries"`

	Assets     string           `json:"assets,omitempty"`
	AssetIndex AssetIndex       `json:"assetIndex"`
	Downloads  ClientDownloads  `json:"downloads"`
	Java       JavaVersion      `json:"javaVersion"`
	Logging    *LoggingSettings `json:"logging,omitempty"`

	ComplianceLevel        int `json:"complianceLevel,omitempty"`
	MinimumLauncherVersion int `json:"minimumLauncherVersion,omitempty"`
}

// Arguments holds the structured argument templates of both phases.
type Arguments struct {
	Game []Argument `json:"game"`
	JVM  []Argument `json:"jvm"`
}

type AssetIndex struct {
	ID        string `json:"id"`
	SHA1      string `json:"sha1"`
	Size      int64  `json:"size"`
	TotalSize int64  `json:"totalSize"`
	URL       string `json:"url"`
}

type ClientDownloads struct {
	Client         *File `json:"client,omitempty"`
	ClientMappings *File `json:"client_mappings,omitempty"`
	Server         *File `json:"server,omitempty"`
	ServerMappings *File `json:"server_mappings,omitempty"`
}

// File is a download reference without a repository-relative path.
type File struct {
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

type JavaVersion struct {
	Component    string `json:"component"`
	MajorVersion int    `json:"majorVersion"`
}

type LoggingSettings struct {
	Client LoggingClient `json:"client"`
}

type LoggingClient struct {
	Argument string      `json:"argument"`
	File     LoggingFile `json:"file"`
	Type     string      `json:"type"`
}

type LoggingFile struct {
	ID   string `json:"id"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// Library is a single classpath entry, possibly with native sub-artifacts.
type Library struct {
	// Name is the maven coordinate group:artifact:version[:classifier].
	Name string `json:"name"`

	// Rules gate the primary artifact. Nil means no rules were declared.
	Rules []Rule `json:"rules,omitempty"`

	Downloads *LibraryDownloads `json:"downloads,omitempty"`

	// Natives maps an os name to a classifier key template,
	// e.g. "natives-windows-${arch}".
	Natives map[string]string `json:"natives,omitempty"`

	Extract *Extract `json:"extract,omitempty"`

	// URL is the repository base used when Downloads is absent.
	URL string `json:"url,omitempty"`

	// Optional checksums published by loaders for coordinate-only libraries.
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
}

type LibraryDownloads struct {
	Artifact    *Artifact           `json:"artifact,omitempty"`
	Classifiers map[string]Artifact `json:"classifiers,omitempty"`
}

// Artifact is a downloadable file with a repository-relative Path.
type Artifact struct {
	Path string `json:"path"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

type Extract struct {
	Exclude []string `json:"exclude,omitempty"`
}

// Rule is a conditional predicate. Action is "allow" or anything else.
type Rule struct {
	Action   string          `json:"action"`
	OS       *OSRule         `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// OSRule narrows a rule to an operating system. Arch and Version are
// carried for completeness; real descriptors only populate Name.
type OSRule struct {
	Name    string `json:"name,omitempty"`
	Arch    string `json:"arch,omitempty"`
	Version string `json:"version,omitempty"`
}

// ParseDescriptor decodes a descriptor and checks required fields.
func ParseDescriptor(data []byte) (*VersionDescriptor, error) {
	var d VersionDescriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	if d.ID == "" {
		return nil, fmt.Errorf("descriptor: missing id")
	}
	if d.MainClass == "" {
		return nil, fmt.Errorf("descriptor %q: %w", d.ID, ErrMissingMainClass)
	}
	return &d, nil
}

// LegacyArguments reports the legacy argument string, if any.
func (d *VersionDescriptor) LegacyArguments() (string, bool) {
	if d.MinecraftArguments == nil {
		return "", false
	}
	return *d.MinecraftArguments, true
}
