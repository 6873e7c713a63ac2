package pagemask

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/gogpu/pagemask/internal/raster"
)

// MaxCanvasPixels bounds the canvas area Render allocates: 1 GiB of RGBA.
const MaxCanvasPixels = 1 << 28

// Render draws the regions of doc onto a new white canvas of the page size
// multiplied by scale.
//
// Regions are drawn in document order; later regions overwrite earlier
// ones. Regions with fewer than two points after scaling are skipped.
func Render(doc *PageDocument, settings Settings, scale float64) (*image.RGBA, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	w := math.Round(float64(doc.Width) * scale)
	h := math.Round(float64(doc.Height) * scale)
	if w*h > MaxCanvasPixels {
		return nil, fmt.Errorf("%w: %dx%d page at scale %v exceeds %d pixels",
			ErrInvalidDimensions, doc.Width, doc.Height, scale, MaxCanvasPixels)
	}
	size := doc.Size(scale)
	if size.X < 1 || size.Y < 1 {
		return nil, fmt.Errorf("%w: %v shrinks %dx%d page to %dx%d",
			ErrInvalidScale, scale, doc.Width, doc.Height, size.X, size.Y)
	}

	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Bounds(), image.NewUniform(White.RGBA()), image.Point{}, draw.Src)

	r := &renderer{
		settings: settings,
		size:     size,
		pixmap:   raster.NewImagePixmap(img),
		raster:   raster.NewRasterizer(),
	}

	for _, region := range doc.Regions {
		points := region.Scaled(scale)
		if len(points) < 2 {
			continue
		}

		switch mode := settings.Mode(); mode {
		case ModeAllTypes, ModeTextLine:
			r.fill(region, points, SchemeFull)
		case ModeTextNonText:
			r.fill(region, points, SchemeTextNonText)
		case ModeBaseline:
			r.baseline(points)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownMode, string(mode))
		}
	}

	return img, nil
}

// renderer draws the regions of one page.
type renderer struct {
	settings Settings
	size     image.Point
	pixmap   *raster.ImagePixmap
	raster   *raster.Rasterizer
}

// fill paints a region polygon. Collinear polygons have no interior and
// are drawn as a one pixel outline so they stay visible.
func (r *renderer) fill(region Region, points []Point, scheme Scheme) {
	c, ok := Lookup(region.Kind, region.SubType, scheme)
	if !ok {
		Logger().Debug("region kind has no color, skipping", "region", string(region.Kind))
		return
	}

	if collinear(points) {
		outline := append(centred(points), centred(points[:1])...)
		r.raster.Stroke(r.pixmap, outline, 1, c.RGBA())
		return
	}

	poly := make([]raster.Point, len(points))
	for i, p := range points {
		poly[i] = raster.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	r.raster.Fill(r.pixmap, poly, raster.FillRuleEvenOdd, c.RGBA())
}

// baseline strokes a baseline and its end ticks.
func (r *renderer) baseline(points []Point) {
	lineWidth := float64(r.settings.LineWidth())

	stroke, _ := DefaultColor(KindTextRegion, SchemeTextNonText)
	r.raster.Stroke(r.pixmap, centred(points), lineWidth, stroke.RGBA())

	if r.settings.TickLength() <= 0 {
		return
	}

	marker, _ := DefaultColor(KindGraphicRegion, SchemeTextNonText)
	for _, seg := range BaselineTicks(points, float64(r.settings.TickLength()), lineWidth, r.size) {
		line := []raster.Point{
			{X: seg.From.X + 0.5, Y: seg.From.Y + 0.5},
			{X: seg.To.X + 0.5, Y: seg.To.Y + 0.5},
		}
		r.raster.Stroke(r.pixmap, line, lineWidth, marker.RGBA())
	}
}

// centred maps integer coordinates to pixel centres for stroking.
func centred(points []Point) []raster.Point {
	out := make([]raster.Point, len(points))
	for i, p := range points {
		out[i] = raster.Point{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5}
	}
	return out
}

// collinear reports whether all points lie on one line.
func collinear(points []Point) bool {
	origin := points[0]
	var dir Point
	for _, p := range points[1:] {
		if p != origin {
			dir = Point{X: p.X - origin.X, Y: p.Y - origin.Y}
			break
		}
	}
	for _, p := range points {
		cross := int64(dir.X)*int64(p.Y-origin.Y) - int64(dir.Y)*int64(p.X-origin.X)
		if cross != 0 {
			return false
		}
	}
	return true
}
