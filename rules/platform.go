package rules

import goruntime "runtime"

// Platform is the operating system family rules are evaluated against.
type Platform int

const (
	Unsupported Platform = iota
	Linux
	Windows
	OSX
)

// Detect returns the platform of the running process.
func Detect() Platform {
	return FromGOOS(goruntime.GOOS)
}

// FromGOOS maps a GOOS value to a Platform.
func FromGOOS(goos string) Platform {
	switch goos {
	case "linux":
		return Linux
	case "windows":
		return Windows
	case "darwin":
		return OSX
	}
	return Unsupported
}

// Parse maps a descriptor os name to a Platform.
func Parse(name string) Platform {
	switch name {
	case "linux":
		return Linux
	case "windows":
		return Windows
	case "osx":
		return OSX
	}
	return Unsupported
}

// String returns the name descriptors use for p.
func (p Platform) String() string {
	switch p {
	case Linux:
		return "linux"
	case Windows:
		return "windows"
	case OSX:
		return "osx"
	}
	return "unknown"
}

// Supported reports whether p is one of linux, windows or osx.
func (p Platform) Supported() bool {
	return p != Unsupported
}

// ClasspathSeparator is the list separator the runtime expects on p.
func (p Platform) ClasspathSeparator() string {
	if p == Windows {
		return ";"
	}
	return ":"
}
