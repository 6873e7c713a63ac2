// Package raster provides non-antialiased scanline rasterization for
// polygons and thick polylines.
//
// Every pixel is either fully painted or untouched, which keeps class
// masks free of blended colors. A pixel is painted when its centre lies
// inside the shape.
package raster

import (
	"image"
	"image/color"
	"math"
)

// Pixmap is an interface for writing pixels.
type Pixmap interface {
	Width() int
	Height() int
	SetPixel(x, y int, c color.RGBA)
}

// SpanFiller is an optional interface that pixmaps can implement for optimized span filling.
type SpanFiller interface {
	FillSpan(x1, x2, y int, c color.RGBA)
}

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd FillRule = iota
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero
)

// minEdgeHeight is the vertical extent below which an edge is treated as horizontal.
const minEdgeHeight = 0.001

// Rasterizer performs scanline rasterization.
// A Rasterizer reuses its edge buffers and is not safe for concurrent use.
type Rasterizer struct {
	aet   *ActiveEdgeTable
	edges []Edge
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		aet: NewActiveEdgeTable(),
	}
}

// Fill rasterizes a polygon onto a pixmap. The polygon is closed
// implicitly: the last point connects back to the first.
func (r *Rasterizer) Fill(pixmap Pixmap, points []Point, fillRule FillRule, c color.RGBA) {
	if len(points) < 3 {
		return
	}

	// Build edge list
	r.edges = r.edges[:0]
	for i := range points {
		p0 := points[i]
		p1 := points[(i+1)%len(points)]

		// Skip horizontal edges
		if math.Abs(p1.Y-p0.Y) < minEdgeHeight {
			continue
		}

		r.edges = append(r.edges, NewEdge(p0, p1))
	}

	if len(r.edges) == 0 {
		return
	}

	// Find y bounds
	yMin := math.MaxFloat64
	yMax := -math.MaxFloat64
	for _, e := range r.edges {
		yMin = math.Min(yMin, e.y0)
		yMax = math.Max(yMax, e.y1)
	}

	first, last := pixelRange(yMin, yMax)
	if first < 0 {
		first = 0
	}
	if last > pixmap.Height() {
		last = pixmap.Height()
	}

	for y := first; y < last; y++ {
		r.scanline(pixmap, float64(y)+0.5, y, fillRule, c)
	}
}

// scanline processes a single scanline sampled at pixel centres.
func (r *Rasterizer) scanline(pixmap Pixmap, scanY float64, y int, fillRule FillRule, c color.RGBA) {
	r.aet.Clear()

	for i := range r.edges {
		if r.edges[i].Spans(scanY) {
			r.aet.AddAtY(r.edges[i], scanY)
		}
	}

	if len(r.aet.Edges()) == 0 {
		return
	}

	r.aet.Sort()

	activeEdges := r.aet.Edges()
	if fillRule == FillRuleNonZero {
		r.fillNonZero(pixmap, activeEdges, y, c)
	} else {
		r.fillEvenOdd(pixmap, activeEdges, y, c)
	}
}

// fillNonZero fills using the non-zero winding rule.
func (r *Rasterizer) fillNonZero(pixmap Pixmap, edges []ActiveEdge, y int, c color.RGBA) {
	winding := 0
	var x1 float64

	for _, edge := range edges {
		if winding == 0 {
			x1 = edge.x
		}

		winding += edge.dir

		if winding == 0 {
			fillSpan(pixmap, x1, edge.x, y, c)
		}
	}
}

// fillEvenOdd fills using the even-odd rule.
func (r *Rasterizer) fillEvenOdd(pixmap Pixmap, edges []ActiveEdge, y int, c color.RGBA) {
	for i := 0; i+1 < len(edges); i += 2 {
		fillSpan(pixmap, edges[i].x, edges[i+1].x, y, c)
	}
}

// pixelRange converts the half-open interval [lo, hi) into the pixels
// whose centres it contains.
func pixelRange(lo, hi float64) (first, last int) {
	return int(math.Ceil(lo - 0.5)), int(math.Ceil(hi - 0.5))
}

// fillSpan paints the pixels of row y whose centres lie in [x1, x2).
func fillSpan(pixmap Pixmap, x1, x2 float64, y int, c color.RGBA) {
	if y < 0 || y >= pixmap.Height() {
		return
	}

	if x1 > x2 {
		x1, x2 = x2, x1
	}

	first, last := pixelRange(x1, x2)
	if first < 0 {
		first = 0
	}
	if last > pixmap.Width() {
		last = pixmap.Width()
	}
	if first >= last {
		return
	}

	// Try to use optimized FillSpan if available
	if spanFiller, ok := pixmap.(SpanFiller); ok {
		spanFiller.FillSpan(first, last, y, c)
		return
	}

	for x := first; x < last; x++ {
		pixmap.SetPixel(x, y, c)
	}
}

// Stroke rasterizes an open polyline with round caps and joins.
// Widths below one pixel are widened to one pixel.
func (r *Rasterizer) Stroke(pixmap Pixmap, points []Point, lineWidth float64, c color.RGBA) {
	if len(points) == 0 {
		return
	}

	if lineWidth < 1 {
		lineWidth = 1
	}

	for i := 0; i < len(points)-1; i++ {
		r.strokeLine(pixmap, points[i], points[i+1], lineWidth, c)
	}

	radius := lineWidth / 2
	for _, p := range points {
		r.FillCircle(pixmap, p, radius, c)
	}
}

// strokeLine draws a thick line segment without caps.
func (r *Rasterizer) strokeLine(pixmap Pixmap, p0, p1 Point, width float64, c color.RGBA) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	length := math.Sqrt(dx*dx + dy*dy)

	if length < 0.001 {
		return
	}

	// Perpendicular vector
	nx := -dy / length
	ny := dx / length

	// Offset by half width
	offset := width / 2

	quad := []Point{
		{X: p0.X + nx*offset, Y: p0.Y + ny*offset},
		{X: p0.X - nx*offset, Y: p0.Y - ny*offset},
		{X: p1.X - nx*offset, Y: p1.Y - ny*offset},
		{X: p1.X + nx*offset, Y: p1.Y + ny*offset},
	}
	r.Fill(pixmap, quad, FillRuleNonZero, c)
}

// FillCircle paints the pixels whose centres lie within radius of center.
func (r *Rasterizer) FillCircle(pixmap Pixmap, center Point, radius float64, c color.RGBA) {
	if radius <= 0 {
		return
	}

	first := int(math.Ceil(center.Y - radius - 0.5))
	last := int(math.Floor(center.Y + radius - 0.5))
	if first < 0 {
		first = 0
	}
	if last >= pixmap.Height() {
		last = pixmap.Height() - 1
	}

	for y := first; y <= last; y++ {
		dy := float64(y) + 0.5 - center.Y
		d := radius*radius - dy*dy
		if d < 0 {
			continue
		}
		half := math.Sqrt(d)
		fillSpan(pixmap, center.X-half, center.X+half, y, c)
	}
}

// ImagePixmap adapts an *image.RGBA to the Pixmap interface.
type ImagePixmap struct {
	img *image.RGBA
}

// NewImagePixmap wraps img. Pixel (0, 0) is img.Rect.Min.
func NewImagePixmap(img *image.RGBA) *ImagePixmap {
	return &ImagePixmap{img: img}
}

// Width returns the pixmap width.
func (p *ImagePixmap) Width() int { return p.img.Rect.Dx() }

// Height returns the pixmap height.
func (p *ImagePixmap) Height() int { return p.img.Rect.Dy() }

// SetPixel writes c at (x, y), ignoring out of range coordinates.
func (p *ImagePixmap) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= p.Width() || y >= p.Height() {
		return
	}
	p.img.SetRGBA(p.img.Rect.Min.X+x, p.img.Rect.Min.Y+y, c)
}

// FillSpan writes c to pixels [x1, x2) of row y. The caller clamps the range.
func (p *ImagePixmap) FillSpan(x1, x2, y int, c color.RGBA) {
	off := p.img.PixOffset(p.img.Rect.Min.X+x1, p.img.Rect.Min.Y+y)
	row := p.img.Pix[off : off+(x2-x1)*4]
	for i := 0; i < len(row); i += 4 {
		row[i+0] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
		row[i+3] = c.A
	}
}
