package pagemask

import (
	"image"
	"math"
)

// Point is a PageXML coordinate in image pixels.
type Point struct {
	X, Y int
}

// Region is one drawable unit extracted from a page: a region outline,
// a text line outline or a baseline, depending on the mode.
type Region struct {
	// Points is the polygon or polyline. Fewer than two points is degenerate.
	Points []Point
	Kind   RegionKind
	// SubType is the "type" attribute of the region element, or "".
	SubType string
}

// Scaled returns the points of r multiplied by scale and rounded to the
// nearest integer. r itself is not modified.
func (r Region) Scaled(scale float64) []Point {
	out := make([]Point, len(r.Points))
	for i, p := range r.Points {
		out[i] = Point{X: scaleCoord(p.X, scale), Y: scaleCoord(p.Y, scale)}
	}
	return out
}

// PageDocument is the extraction result of one PageXML file.
type PageDocument struct {
	Width, Height int
	// Name is the XML file name without directory and extension.
	// Output files are named after it.
	Name string
	// ImageFilename is the imageFilename attribute declared in the document.
	ImageFilename string
	// Regions in document order, which is also the drawing order.
	Regions []Region
}

// Size returns the canvas size at scale.
func (d *PageDocument) Size(scale float64) image.Point {
	return image.Point{X: scaleCoord(d.Width, scale), Y: scaleCoord(d.Height, scale)}
}

func scaleCoord(v int, scale float64) int {
	return int(math.Round(float64(v) * scale))
}
