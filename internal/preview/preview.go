// Package preview renders generated features into a WebP image of the bounding box.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/woozymasta/geofixture/internal/geo"
	"github.com/woozymasta/geofixture/internal/output"

	"github.com/chai2010/webp"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Options controls the preview image.
type Options struct {
	Size    int // pixels on the longest side
	Quality float32
}

var (
	background = color.RGBA{R: 0xf4, G: 0xf1, B: 0xea, A: 0xff}
	objectFill = color.RGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff}
	pathStroke = color.RGBA{R: 0x1f, G: 0x4e, B: 0x9c, A: 0xff}
)

// Render draws the dataset and writes it as a lossy WebP to path.
func Render(path string, bbox geo.BoundingBox, d output.Dataset, opts Options) error {
	img := Draw(bbox, d, opts.Size)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create preview dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	if err := webp.Encode(f, img, &webp.Options{Lossless: false, Quality: opts.Quality}); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}

	log.Info().
		Str("path", path).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Msg("Preview written")

	return nil
}

// Draw rasterizes the dataset onto an image whose longest side is size pixels.
func Draw(bbox geo.BoundingBox, d output.Dataset, size int) *image.RGBA {
	p := newProjection(bbox.Bound(), size)

	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, xdraw.Src)

	z := vector.NewRasterizer(p.width, p.height)
	z.DrawOp = xdraw.Over

	for _, o := range d.Objects {
		p.fillRing(z, o.Coordinates)
	}
	z.Draw(img, img.Bounds(), image.NewUniform(objectFill), image.Point{})

	z.Reset(p.width, p.height)
	z.DrawOp = xdraw.Over

	for _, path := range d.Paths {
		p.strokeLine(z, path.Coordinates)
	}
	z.Draw(img, img.Bounds(), image.NewUniform(pathStroke), image.Point{})

	return img
}

// projection maps lon/lat onto pixel space, north up.
type projection struct {
	bound         orb.Bound
	width, height int
	sx, sy        float64
}

func newProjection(bound orb.Bound, size int) projection {
	if size <= 0 {
		size = 1
	}

	dx := bound.Max[0] - bound.Min[0]
	dy := bound.Max[1] - bound.Min[1]

	width, height := size, size
	switch {
	case dx > dy && dy > 0:
		height = max(1, int(math.Round(float64(size)*dy/dx)))
	case dy > dx && dx > 0:
		width = max(1, int(math.Round(float64(size)*dx/dy)))
	}

	p := projection{bound: bound, width: width, height: height}
	if dx > 0 {
		p.sx = float64(width) / dx
	}
	if dy > 0 {
		p.sy = float64(height) / dy
	}

	return p
}

func (p projection) pixel(pt orb.Point) (float32, float32) {
	x := (pt[0] - p.bound.Min[0]) * p.sx
	y := (p.bound.Max[1] - pt[1]) * p.sy

	return float32(x), float32(y)
}

func (p projection) fillRing(z *vector.Rasterizer, ring orb.Ring) {
	if len(ring) < 3 {
		return
	}

	z.MoveTo(p.pixel(ring[0]))
	for _, pt := range ring[1:] {
		z.LineTo(p.pixel(pt))
	}
	z.ClosePath()
}

// strokeLine adds every segment as a one pixel wide quad.
func (p projection) strokeLine(z *vector.Rasterizer, line orb.LineString) {
	const half = 0.5

	for i := 1; i < len(line); i++ {
		ax, ay := p.pixel(line[i-1])
		bx, by := p.pixel(line[i])

		dx, dy := bx-ax, by-ay
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*half, dx/length*half

		z.MoveTo(ax+nx, ay+ny)
		z.LineTo(bx+nx, by+ny)
		z.LineTo(bx-nx, by-ny)
		z.LineTo(ax-nx, ay-ny)
		z.ClosePath()
	}
}
