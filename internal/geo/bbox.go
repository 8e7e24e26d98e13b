// Package geo handles bounding boxes and great-circle measurements.
package geo

import "github.com/paulmach/orb"

// BoundingBox is given as two opposite corners: [lon1, lat1, lon2, lat2].
// The corners are not required to be ordered.
type BoundingBox [4]float64

// TopLeft returns the (lon1, lat1) corner.
func (b BoundingBox) TopLeft() orb.Point { return orb.Point{b[0], b[1]} }

// TopRight returns the (lon2, lat1) corner.
func (b BoundingBox) TopRight() orb.Point { return orb.Point{b[2], b[1]} }

// BottomLeft returns the (lon1, lat2) corner.
func (b BoundingBox) BottomLeft() orb.Point { return orb.Point{b[0], b[3]} }

// BottomRight returns the (lon2, lat2) corner.
func (b BoundingBox) BottomRight() orb.Point { return orb.Point{b[2], b[3]} }

// Bound returns the box as a normalized orb.Bound (Min <= Max on both axes).
func (b BoundingBox) Bound() orb.Bound {
	return orb.MultiPoint{b.TopLeft(), b.BottomRight()}.Bound()
}

// Shrink returns the box with every side moved inwards by pad degrees.
// ok is false when the box is too narrow on either axis, in which case
// the normalized box is returned unchanged.
func (b BoundingBox) Shrink(pad float64) (out BoundingBox, ok bool) {
	bound := b.Bound()
	out = BoundingBox{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]}

	if pad <= 0 {
		return out, true
	}
	if bound.Max[0]-bound.Min[0] < 2*pad || bound.Max[1]-bound.Min[1] < 2*pad {
		return out, false
	}

	return BoundingBox{
		bound.Min[0] + pad,
		bound.Min[1] + pad,
		bound.Max[0] - pad,
		bound.Max[1] - pad,
	}, true
}
