package classpath

import (
	"fmt"
	"path"
	"strings"

	"github.com/tie/mclaunch/models"
)

// DefaultRepository serves coordinate-only libraries without a repository.
const DefaultRepository = "https://libraries.minecraft.net/"

// Coordinate is a pinned maven coordinate.
type Coordinate struct {
	Group      string
	Artifact   string
	Version    string
	Classifier string
}

// ParseCoordinate parses group:artifact:version[:classifier].
func ParseCoordinate(name string) (Coordinate, error) {
	parts := strings.Split(name, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return Coordinate{}, fmt.Errorf("%q: %w", name, models.ErrMalformedCoordinate)
	}
	for _, p := range parts {
		if p == "" {
			return Coordinate{}, fmt.Errorf("%q: %w", name, models.ErrMalformedCoordinate)
		}
	}
	c := Coordinate{
		Group:    parts[0],
		Artifact: parts[1],
		Version:  parts[2],
	}
	if len(parts) == 4 {
		c.Classifier = parts[3]
	}
	return c, nil
}

// FileName is the conventional jar name, artifact-version[-classifier].jar.
func (c Coordinate) FileName() string {
	if c.Classifier != "" {
		return fmt.Sprintf("%s-%s-%s.jar", c.Artifact, c.Version, c.Classifier)
	}
	return fmt.Sprintf("%s-%s.jar", c.Artifact, c.Version)
}

// Path is the slash separated maven layout path of the jar.
func (c Coordinate) Path() string {
	group := strings.ReplaceAll(c.Group, ".", "/")
	return path.Join(group, c.Artifact, c.Version, c.FileName())
}

// URL joins the repository base with the layout path.
func (c Coordinate) URL(repository string) string {
	if repository == "" {
		repository = DefaultRepository
	}
	if !strings.HasSuffix(repository, "/") {
		repository += "/"
	}
	return repository + c.Path()
}

func (c Coordinate) String() string {
	s := fmt.Sprintf("%s:%s:%s", c.Group, c.Artifact, c.Version)
	if c.Classifier != "" {
		s += ":" + c.Classifier
	}
	return s
}
