// Package runtime provisions the Java runtime a descriptor asks for.
package runtime

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tie/mclaunch/models"
	"github.com/tie/mclaunch/rules"
)

// Adoptium is the Eclipse Temurin distribution.
const Adoptium = "adopt"

var ErrRuntimeNotFound = errors.New("no runtime build for this platform")

// Build is one published runtime archive.
type Build struct {
	// Release is the top-level directory inside the archive.
	Release string
	URL     string
	SHA256  string
	Size    int64
	Method  string
}

type buildKey struct {
	distribution string
	platform     rules.Platform
	major        int
}

var builds = map[buildKey]Build{
	{Adoptium, rules.Windows, 21}: {"jdk-21.0.7+6-jre", "https://github.com/adoptium/temurin21-binaries/releases/download/jdk-21.0.7%2B6/OpenJDK21U-jre_x64_windows_hotspot_21.0.7_6.zip", "b2850a96293048ed3020f8bfca2d92a785ae9bf80c7d96bbfe3ec4ccf45aef98", 48875360, models.UnpackZip},
	{Adoptium, rules.Linux, 21}:   {"jdk-21.0.7+6-jre", "https://github.com/adoptium/temurin21-binaries/releases/download/jdk-21.0.7%2B6/OpenJDK21U-jre_x64_linux_hotspot_21.0.7_6.tar.gz", "6d48379e00d47e6fdd417e96421e973898ac90765ea8ff2d09ae0af6d5d6a1c6", 51863597, models.UnpackTarGz},
	{Adoptium, rules.Windows, 17}: {"jdk-17.0.9+9-jre", "https://github.com/adoptium/temurin17-binaries/releases/download/jdk-17.0.9%2B9.1/OpenJDK17U-jre_x64_windows_hotspot_17.0.9_9.zip", "6c491d6f8c28c6f451f08110a30348696a04b009f8c58592191046e0fab1477b", 43447242, models.UnpackZip},
	{Adoptium, rules.Linux, 17}:   {"jdk-17.0.9+9-jre", "https://github.com/adoptium/temurin17-binaries/releases/download/jdk-17.0.9%2B9/OpenJDK17U-jre_x64_linux_hotspot_17.0.9_9.tar.gz", "c37f729200b572884b8f8e157852c739be728d61d9a1da0f920104876d324733", 46280224, models.UnpackTarGz},
	{Adoptium, rules.Windows, 8}:  {"jdk8u452-b09-jre", "https://github.com/adoptium/temurin8-binaries/releases/download/jdk8u452-b09/OpenJDK8U-jre_x64_windows_hotspot_8u452b09.zip", "802b1277505308290b6f00d8addde93e537d559cea1c826752d0cc46e7b58a5f", 40652901, models.UnpackZip},
	{Adoptium, rules.Linux, 8}:    {"jdk8u452-b09-jre", "https://github.com/adoptium/temurin8-binaries/releases/download/jdk8u452-b09/OpenJDK8U-jre_x64_linux_hotspot_8u452b09.tar.gz", "0c76f94e1b400a4da932a3f581b0788af2101819083184f40a6c76ac9b97081f", 41420532, models.UnpackTarGz},
}

// Provisioner picks runtime builds of one distribution for one platform.
// The distribution is part of the value; there is no process-wide default.
type Provisioner struct {
	Distribution string
	Platform     rules.Platform
}

// Lookup returns the build for a runtime major version.
func (p Provisioner) Lookup(major int) (Build, error) {
	if !p.Platform.Supported() {
		return Build{}, models.ErrUnsupportedPlatform
	}
	dist := p.Distribution
	if dist == "" {
		dist = Adoptium
	}
	b, ok := builds[buildKey{dist, p.Platform, major}]
	if !ok {
		return Build{}, fmt.Errorf("%s %d on %s: %w", dist, major, p.Platform, ErrRuntimeNotFound)
	}
	return b, nil
}

// Download returns the download target installing the runtime below dir.
// It returns nil when the runtime is already installed.
func (p Provisioner) Download(major int, dir string) (*models.Download, error) {
	b, err := p.Lookup(major)
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(filepath.Join(dir, b.Release))
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return &models.Download{
		URL:    b.URL,
		Path:   filepath.Join(dir, b.Release+".tmp"),
		SHA256: b.SHA256,
		Size:   b.Size,
		Unpack: &models.Unpack{
			Method:      b.Method,
			Dir:         dir,
			DeleteAfter: true,
		},
	}, nil
}

// Executable is the path of the java binary of an installed runtime.
func (p Provisioner) Executable(major int, dir string) (string, error) {
	b, err := p.Lookup(major)
	if err != nil {
		return "", err
	}
	exe := "java"
	if p.Platform == rules.Windows {
		exe = "java.exe"
	}
	return filepath.Join(dir, b.Release, "bin", exe), nil
}
