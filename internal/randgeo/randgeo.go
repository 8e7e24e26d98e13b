// Package randgeo generates random polygons and linestrings inside a bounding box.
package randgeo

import (
	"errors"
	"fmt"
	"math"

	"github.com/woozymasta/geofixture/internal/geo"

	"github.com/paulmach/orb"
	"github.com/samber/lo"
)

// Source is the uniform [0, 1) random number source used by the generator.
type Source interface {
	Float64() float64
}

// PolygonOptions controls the shape of generated polygons.
type PolygonOptions struct {
	// Vertices is the number of distinct ring vertices (the ring has Vertices+1 points).
	Vertices int
	// MaxRadialLength is the maximum vertex distance from the polygon hub, in degrees.
	MaxRadialLength float64
}

// LineOptions controls the shape of generated linestrings.
type LineOptions struct {
	Vertices    int
	MaxLength   float64 // per segment, degrees
	MaxRotation float64 // per vertex, radians
}

// Generator produces random geometries from a Source.
type Generator struct {
	rnd Source
}

// New returns a Generator reading from rnd.
func New(rnd Source) *Generator {
	return &Generator{rnd: rnd}
}

var errNegativeCount = errors.New("feature count must not be negative")

func checkCount(n int) error {
	if n < 0 {
		return errNegativeCount
	}
	if n > geo.MaxFeatures {
		return fmt.Errorf("%w: %d exceeds %d", geo.ErrTooManyFeatures, n, geo.MaxFeatures)
	}
	return nil
}

// Polygons returns n closed rings scattered uniformly over bbox.
func (g *Generator) Polygons(n int, bbox geo.BoundingBox, opts PolygonOptions) ([]orb.Ring, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if opts.Vertices < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d", opts.Vertices)
	}
	if opts.MaxRadialLength <= 0 {
		return nil, fmt.Errorf("polygon radial length must be positive, got %v", opts.MaxRadialLength)
	}

	// Keep hubs far enough from the edges for the ring to stay inside.
	area, _ := bbox.Shrink(opts.MaxRadialLength)

	return lo.Times(n, func(_ int) orb.Ring {
		return g.polygon(area, opts)
	}), nil
}

func (g *Generator) polygon(area geo.BoundingBox, opts PolygonOptions) orb.Ring {
	offsets := make([]float64, opts.Vertices+1)
	for i := range offsets {
		offsets[i] = g.rnd.Float64()
		if i > 0 {
			offsets[i] += offsets[i-1]
		}
	}

	hub := g.position(area)
	total := offsets[len(offsets)-1]

	ring := make(orb.Ring, 0, len(offsets))
	for _, off := range offsets {
		angle := off * 2 * math.Pi / total
		radius := g.rnd.Float64() * opts.MaxRadialLength
		ring = append(ring, orb.Point{
			hub[0] + radius*math.Sin(angle),
			hub[1] + radius*math.Cos(angle),
		})
	}
	ring[len(ring)-1] = ring[0]

	return ring
}

// LineStrings returns n linestrings scattered uniformly over bbox.
func (g *Generator) LineStrings(n int, bbox geo.BoundingBox, opts LineOptions) ([]orb.LineString, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if opts.Vertices < 2 {
		return nil, fmt.Errorf("linestring needs at least 2 vertices, got %d", opts.Vertices)
	}
	if opts.MaxLength <= 0 {
		return nil, fmt.Errorf("linestring segment length must be positive, got %v", opts.MaxLength)
	}
	if opts.MaxRotation < 0 {
		return nil, fmt.Errorf("linestring rotation must not be negative, got %v", opts.MaxRotation)
	}

	// A line can drift at most (Vertices-1)*MaxLength from its start.
	area, _ := bbox.Shrink(float64(opts.Vertices-1) * opts.MaxLength)

	return lo.Times(n, func(_ int) orb.LineString {
		return g.lineString(area, opts)
	}), nil
}

func (g *Generator) lineString(area geo.BoundingBox, opts LineOptions) orb.LineString {
	line := make(orb.LineString, 1, opts.Vertices)
	line[0] = g.position(area)

	heading := g.rnd.Float64() * 2 * math.Pi
	for j := 1; j < opts.Vertices; j++ {
		if j > 1 {
			prev, cur := line[j-2], line[j-1]
			heading = math.Atan2(cur[1]-prev[1], cur[0]-prev[0])
		}

		angle := heading + (g.rnd.Float64()-0.5)*opts.MaxRotation*2
		distance := g.rnd.Float64() * opts.MaxLength

		last := line[j-1]
		line = append(line, orb.Point{
			last[0] + distance*math.Cos(angle),
			last[1] + distance*math.Sin(angle),
		})
	}

	return line
}

// position returns a uniformly distributed point inside bbox.
func (g *Generator) position(bbox geo.BoundingBox) orb.Point {
	return orb.Point{
		g.rnd.Float64()*(bbox[2]-bbox[0]) + bbox[0],
		g.rnd.Float64()*(bbox[3]-bbox[1]) + bbox[1],
	}
}
