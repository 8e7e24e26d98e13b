package output

import (
	"github.com/woozymasta/geofixture/internal/request"
	"github.com/woozymasta/geofixture/internal/synth"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/samber/lo"
)

// FeatureCollection converts the dataset into GeoJSON. Objects become
// Polygon features, paths become LineString features; attributes are
// copied into the properties.
func FeatureCollection(d Dataset) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if d.Kind == request.Paths {
		fc.Features = lo.Map(d.Paths, func(p synth.Path, _ int) *geojson.Feature {
			f := geojson.NewFeature(p.Coordinates)
			f.ID = p.ID
			f.Properties["id"] = p.ID
			f.Properties["altitude"] = p.Altitude
			return f
		})
		return fc
	}

	fc.Features = lo.Map(d.Objects, func(o synth.Object, _ int) *geojson.Feature {
		f := geojson.NewFeature(orb.Polygon{o.Coordinates})
		f.ID = o.ID
		f.Properties["id"] = o.ID
		f.Properties["height"] = o.Height
		f.Properties["base"] = o.Base
		return f
	})
	return fc
}
