// Package config handles loading of generation parameters.
package config

import (
	"fmt"
	"os"

	"github.com/woozymasta/geofixture/internal/randgeo"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
// Every field is optional; unset or zero values fall back to Default(),
// except max_rotation where an explicit 0 means straight paths.
// Negative values are rejected.
type Config struct {
	Polygon Polygon `yaml:"polygon"`
	Path    Path    `yaml:"path"`
	Preview Preview `yaml:"preview"`
}

// Polygon holds the shape of generated objects.
type Polygon struct {
	Vertices        int     `yaml:"vertices,omitempty"`
	MaxRadialLength float64 `yaml:"max_radial_length,omitempty"` // degrees
}

// Path holds the shape of generated flight paths.
type Path struct {
	Vertices    int      `yaml:"vertices,omitempty"`
	MaxLength   float64  `yaml:"max_length,omitempty"`   // degrees per segment
	MaxRotation *float64 `yaml:"max_rotation,omitempty"` // radians per vertex
}

// Preview holds the WebP preview image settings.
type Preview struct {
	Size    int     `yaml:"size,omitempty"` // pixels on the longest side
	Quality float32 `yaml:"quality,omitempty"`
}

// Default returns the built-in generation parameters.
func Default() *Config {
	return &Config{
		Polygon: Polygon{Vertices: 4, MaxRadialLength: 0.001},
		Path:    Path{Vertices: 10, MaxLength: 0.010, MaxRotation: float64Ptr(0.03)},
		Preview: Preview{Size: 1024, Quality: 85},
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Polygon.Vertices < 0:
		return fmt.Errorf("polygon.vertices must not be negative, got %d", c.Polygon.Vertices)
	case c.Polygon.MaxRadialLength < 0:
		return fmt.Errorf("polygon.max_radial_length must not be negative, got %v", c.Polygon.MaxRadialLength)
	case c.Path.Vertices < 0:
		return fmt.Errorf("path.vertices must not be negative, got %d", c.Path.Vertices)
	case c.Path.MaxLength < 0:
		return fmt.Errorf("path.max_length must not be negative, got %v", c.Path.MaxLength)
	case c.Path.MaxRotation != nil && *c.Path.MaxRotation < 0:
		return fmt.Errorf("path.max_rotation must not be negative, got %v", *c.Path.MaxRotation)
	case c.Preview.Size < 0:
		return fmt.Errorf("preview.size must not be negative, got %d", c.Preview.Size)
	}

	return nil
}

func (c *Config) applyDefaults() {
	def := Default()

	if c.Polygon.Vertices <= 0 {
		c.Polygon.Vertices = def.Polygon.Vertices
	}
	if c.Polygon.MaxRadialLength <= 0 {
		c.Polygon.MaxRadialLength = def.Polygon.MaxRadialLength
	}
	if c.Path.Vertices <= 0 {
		c.Path.Vertices = def.Path.Vertices
	}
	if c.Path.MaxLength <= 0 {
		c.Path.MaxLength = def.Path.MaxLength
	}
	if c.Path.MaxRotation == nil {
		c.Path.MaxRotation = def.Path.MaxRotation
	}
	if c.Preview.Size <= 0 {
		c.Preview.Size = def.Preview.Size
	}
	if c.Preview.Quality <= 0 || c.Preview.Quality > 100 {
		c.Preview.Quality = def.Preview.Quality
	}
}

// PolygonOptions converts the polygon section for the geometry generator.
func (c *Config) PolygonOptions() randgeo.PolygonOptions {
	return randgeo.PolygonOptions{
		Vertices:        c.Polygon.Vertices,
		MaxRadialLength: c.Polygon.MaxRadialLength,
	}
}

// LineOptions converts the path section for the geometry generator.
func (c *Config) LineOptions() randgeo.LineOptions {
	return randgeo.LineOptions{
		Vertices:    c.Path.Vertices,
		MaxLength:   c.Path.MaxLength,
		MaxRotation: *c.Path.MaxRotation,
	}
}

func float64Ptr(v float64) *float64 { return &v }
