package classpath

import "strings"

// Classpath is an insertion ordered set of local artifact paths. The first
// occurrence of a path fixes its position.
type Classpath struct {
	paths []string
	seen  map[string]struct{}
}

func NewClasspath() *Classpath {
	return &Classpath{seen: make(map[string]struct{})}
}

// Add appends p unless it is already present and reports whether it did.
func (c *Classpath) Add(p string) bool {
	if _, ok := c.seen[p]; ok {
		return false
	}
	c.seen[p] = struct{}{}
	c.paths = append(c.paths, p)
	return true
}

func (c *Classpath) Contains(p string) bool {
	_, ok := c.seen[p]
	return ok
}

func (c *Classpath) Len() int {
	return len(c.paths)
}

// Paths returns a copy of the entries in order.
func (c *Classpath) Paths() []string {
	return append([]string(nil), c.paths...)
}

// Join renders the classpath with the given separator.
func (c *Classpath) Join(sep string) string {
	return strings.Join(c.paths, sep)
}
