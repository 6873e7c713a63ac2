// Package pagemask renders PageXML layout documents into class mask images.
//
// # Overview
//
// A PageXML file describes the layout of one scanned page as a list of
// regions (text, images, graphics, separators, ...), each outlined by a
// polygon. pagemask extracts those regions and paints each one with a color
// that encodes its type, producing a mask that segmentation models can be
// trained on.
//
// # Quick Start
//
//	import "github.com/gogpu/pagemask"
//
//	settings := pagemask.NewSettings(pagemask.WithMode(pagemask.ModeAllTypes))
//
//	doc, err := pagemask.ExtractFile("0001.xml", settings)
//	if err != nil {
//		return err
//	}
//	img, err := pagemask.Render(doc, settings, 1.0)
//
// Batch conversion of many files goes through [Converter].
//
// # Modes
//
// Four rendering modes are supported:
//   - [ModeAllTypes]: region polygons, one color per region type and sub-type
//   - [ModeTextNonText]: region polygons, text vs. non-text colors
//   - [ModeTextLine]: text line polygons, colored like their parent region
//   - [ModeBaseline]: text line baselines as strokes with optional end ticks
//
// # Rasterization
//
// Masks are drawn without anti-aliasing: every pixel carries exactly one
// class color. A pixel belongs to a polygon when its centre lies inside it.
// Regions are drawn in document order, so later regions overwrite earlier
// ones where they overlap.
//
// # Coordinate System
//
// PageXML coordinates are image pixels:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package pagemask

// Version information
const (
	// Version is the current version of the module
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
