// Package synth turns random geometries into generated fixture records.
package synth

import (
	"github.com/woozymasta/geofixture/internal/geo"
	"github.com/woozymasta/geofixture/internal/randgeo"

	"github.com/paulmach/orb"
)

// Attribute bounds, min inclusive and max exclusive.
const (
	HeightMin   = 10
	HeightMax   = 200
	AltitudeMin = 1000
	AltitudeMax = 6000
)

// Geometry is the random geometry capability used by the Synthesizer.
type Geometry interface {
	Polygons(n int, bbox geo.BoundingBox, opts randgeo.PolygonOptions) ([]orb.Ring, error)
	LineStrings(n int, bbox geo.BoundingBox, opts randgeo.LineOptions) ([]orb.LineString, error)
}

// Object is a generated building-like polygon.
type Object struct {
	Coordinates orb.Ring `json:"coordinates" yaml:"coordinates,flow"`
	ID          string   `json:"id" yaml:"id"`
	Height      int      `json:"height" yaml:"height"`
	Base        int      `json:"base" yaml:"base"`
}

// Path is a generated flight path.
type Path struct {
	Coordinates orb.LineString `json:"coordinates" yaml:"coordinates,flow"`
	ID          string         `json:"id" yaml:"id"`
	Altitude    int            `json:"altitude" yaml:"altitude"`
}
