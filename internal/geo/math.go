package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// EarthRadiusMiles is the mean Earth radius (6371008.8 m) in statute miles.
const EarthRadiusMiles = 6371008.8 / 1609.344

// Distance returns the great-circle distance in miles between two
// [lon, lat] points. s2 computes the angle with the haversine formula.
func Distance(a, b orb.Point) float64 {
	from := s2.LatLngFromDegrees(a.Lat(), a.Lon())
	to := s2.LatLngFromDegrees(b.Lat(), b.Lon())

	return from.Distance(to).Radians() * EarthRadiusMiles
}

// Dimensions returns the width (top edge) and height (left edge) of the box in miles.
func Dimensions(b BoundingBox) (width, height float64) {
	width = Distance(b.TopLeft(), b.TopRight())
	height = Distance(b.TopLeft(), b.BottomLeft())

	return width, height
}

// Area returns the box area in square miles as width * height.
func Area(b BoundingBox) float64 {
	width, height := Dimensions(b)
	return width * height
}

// MaxFeatures is the largest feature count a single run generates.
const MaxFeatures = 10_000_000

// ErrTooManyFeatures is returned when a box and density exceed MaxFeatures.
var ErrTooManyFeatures = errors.New("too many features")

// FeatureCount derives the target number of features for a box at the given
// density (features per square mile). count is the raw product, n is count
// floored and clamped at zero. Counts above MaxFeatures, +Inf included,
// return ErrTooManyFeatures.
func FeatureCount(b BoundingBox, density float64) (count float64, n int, err error) {
	count = Area(b) * density
	if count <= 0 || math.IsNaN(count) {
		return count, 0, nil
	}
	if count >= MaxFeatures+1 {
		return count, 0, fmt.Errorf("%w: %g exceeds %d", ErrTooManyFeatures, count, MaxFeatures)
	}

	return count, int(math.Floor(count)), nil
}
