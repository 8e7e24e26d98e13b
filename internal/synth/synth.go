package synth

import (
	"fmt"
	"io"
	"math"

	"github.com/woozymasta/geofixture/internal/geo"
	"github.com/woozymasta/geofixture/internal/randgeo"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Synthesizer requests geometries and attaches random attributes to them.
type Synthesizer struct {
	geometry Geometry
	rnd      randgeo.Source
	ids      io.Reader

	polygon randgeo.PolygonOptions
	line    randgeo.LineOptions
}

// New creates a Synthesizer. Attributes are drawn from rnd. Identifiers are
// read from ids, or from crypto/rand when ids is nil.
func New(geometry Geometry, rnd randgeo.Source, ids io.Reader, polygon randgeo.PolygonOptions, line randgeo.LineOptions) *Synthesizer {
	return &Synthesizer{
		geometry: geometry,
		rnd:      rnd,
		ids:      ids,
		polygon:  polygon,
		line:     line,
	}
}

// Objects generates n polygons inside bbox.
func (s *Synthesizer) Objects(n int, bbox geo.BoundingBox) ([]Object, error) {
	rings, err := s.geometry.Polygons(n, bbox, s.polygon)
	if err != nil {
		return nil, fmt.Errorf("generate polygons: %w", err)
	}

	objects := make([]Object, 0, len(rings))
	for _, ring := range rings {
		id, err := s.newID()
		if err != nil {
			return nil, err
		}

		objects = append(objects, Object{
			ID:          id,
			Coordinates: ring,
			Height:      RandomInt(s.rnd, HeightMax, HeightMin),
			Base:        0,
		})
	}

	log.Debug().Int("count", len(objects)).Msg("Objects generated")
	return objects, nil
}

// Paths generates n linestrings inside bbox.
func (s *Synthesizer) Paths(n int, bbox geo.BoundingBox) ([]Path, error) {
	lines, err := s.geometry.LineStrings(n, bbox, s.line)
	if err != nil {
		return nil, fmt.Errorf("generate linestrings: %w", err)
	}

	paths := make([]Path, 0, len(lines))
	for _, line := range lines {
		id, err := s.newID()
		if err != nil {
			return nil, err
		}

		paths = append(paths, Path{
			ID:          id,
			Coordinates: line,
			Altitude:    RandomInt(s.rnd, AltitudeMax, AltitudeMin),
		})
	}

	log.Debug().Int("count", len(paths)).Msg("Paths generated")
	return paths, nil
}

func (s *Synthesizer) newID() (string, error) {
	var (
		id  uuid.UUID
		err error
	)
	if s.ids != nil {
		id, err = uuid.NewRandomFromReader(s.ids)
	} else {
		id, err = uuid.NewRandom()
	}
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}

	return id.String(), nil
}

// RandomInt returns floor(r*(high-low)+low) for r uniform in [0, 1),
// so the result lies in [low, high-1].
func RandomInt(rnd randgeo.Source, high, low int) int {
	return int(math.Floor(rnd.Float64()*float64(high-low) + float64(low)))
}
