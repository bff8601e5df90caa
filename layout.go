package mclaunch

import "path/filepath"

// Layout places launcher files below a game directory.
type Layout struct {
	Root string
}

func (l Layout) Libraries() string { return filepath.Join(l.Root, "libraries") }
func (l Layout) Versions() string  { return filepath.Join(l.Root, "versions") }
func (l Layout) Assets() string    { return filepath.Join(l.Root, "assets") }
func (l Layout) Runtimes() string  { return filepath.Join(l.Root, "runtime") }

// Natives is the per-version directory native classifiers are unpacked to.
func (l Layout) Natives(id string) string {
	return filepath.Join(l.Root, "natives", id)
}

// ClientJar is the main artifact of version id.
func (l Layout) ClientJar(id string) string {
	return filepath.Join(l.Versions(), id, id+".jar")
}

// IndexPath is the cached version index.
func (l Layout) IndexPath() string {
	return filepath.Join(l.Versions(), "version_manifest_v2.json")
}
