package pagemask

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// xmlNode is a generic element tree. PageXML namespaces differ between
// schema releases, so elements are matched by namespace at lookup time
// rather than through struct tags.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
}

// attr returns the value of the unqualified attribute local.
func (n *xmlNode) attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// child returns the first child element named {ns}local.
func (n *xmlNode) child(ns, local string) *xmlNode {
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Space == ns && c.XMLName.Local == local {
			return c
		}
	}
	return nil
}

// children returns all child elements named {ns}local.
func (n *xmlNode) children(ns, local string) []*xmlNode {
	var out []*xmlNode
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Space == ns && c.XMLName.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// find returns the first descendant of n named {ns}local, depth first.
func (n *xmlNode) find(ns, local string) *xmlNode {
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Space == ns && c.XMLName.Local == local {
			return c
		}
		if found := c.find(ns, local); found != nil {
			return found
		}
	}
	return nil
}

// namespaceCandidates returns the namespaces to probe: the preferred
// version first, then every known version in fixed order.
func namespaceCandidates(preferred SchemaVersion) []string {
	out := make([]string, 0, len(schemaVersions)+1)
	if ns := preferred.Namespace(); ns != "" {
		out = append(out, ns)
	}
	for _, v := range schemaVersions {
		if v != preferred {
			out = append(out, v.Namespace())
		}
	}
	return out
}

// extraction holds the state of one Extract call. The namespace found for
// the Page element is kept here and used for every later lookup.
type extraction struct {
	settings Settings
	name     string
	ns       string
}

// ExtractFile reads the PageXML document at path.
// The document is named after the file, without directory and extension.
func ExtractFile(path string, settings Settings) (*PageDocument, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("pagemask: open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Extract(f, Stem(path), settings)
}

// Extract parses a PageXML document and collects the regions to draw for
// settings.Mode(). name becomes the document name.
//
// Unknown page children and unknown region sub-types are logged and do not
// fail extraction.
func Extract(r io.Reader, name string, settings Settings) (*PageDocument, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root xmlNode
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	ex := &extraction{settings: settings, name: name}

	page := ex.probePage(&root)
	if page == nil {
		return nil, fmt.Errorf("%w: no Page element in a known PageXML namespace", ErrMalformedDocument)
	}

	width, err := dimension(page, "imageWidth")
	if err != nil {
		return nil, err
	}
	height, err := dimension(page, "imageHeight")
	if err != nil {
		return nil, err
	}

	doc := &PageDocument{
		Width:  width,
		Height: height,
		Name:   name,
	}
	if filename, ok := page.attr("imageFilename"); ok {
		doc.ImageFilename = filename
		if declared := Stem(filename); declared != name {
			Logger().Info("document name differs from declared image filename",
				"file", name, "image_filename", declared)
		}
	}

	for i := range page.Children {
		regions, err := ex.regions(&page.Children[i])
		if err != nil {
			return nil, err
		}
		doc.Regions = append(doc.Regions, regions...)
	}

	Logger().Debug("extracted document",
		"file", name, "namespace", ex.ns, "mode", string(settings.Mode()), "regions", len(doc.Regions))
	return doc, nil
}

// probePage finds the Page element under the first candidate namespace
// that has one and records that namespace.
func (ex *extraction) probePage(root *xmlNode) *xmlNode {
	for _, ns := range namespaceCandidates(ex.settings.SchemaVersion()) {
		if page := root.find(ns, "Page"); page != nil {
			ex.ns = ns
			return page
		}
		Logger().Debug("no Page element in namespace", "file", ex.name, "namespace", ns)
	}
	return nil
}

// regions returns the regions contributed by one child of the Page element.
func (ex *extraction) regions(el *xmlNode) ([]Region, error) {
	if el.XMLName.Space != ex.ns {
		Logger().Debug("skipping foreign element", "file", ex.name,
			"element", el.XMLName.Local, "namespace", el.XMLName.Space)
		return nil, nil
	}

	kind, ok := ParseRegionKind(el.XMLName.Local)
	if !ok {
		Logger().Warn("unknown page element, skipping", "file", ex.name, "element", el.XMLName.Local)
		return nil, nil
	}

	subType, _ := el.attr("type")

	var outlines []*xmlNode
	switch mode := ex.settings.Mode(); mode {
	case ModeAllTypes, ModeTextNonText:
		if coords := el.child(ex.ns, "Coords"); coords != nil {
			outlines = append(outlines, coords)
		}
	case ModeTextLine:
		for _, line := range el.children(ex.ns, "TextLine") {
			if coords := line.child(ex.ns, "Coords"); coords != nil {
				outlines = append(outlines, coords)
			}
		}
	case ModeBaseline:
		for _, line := range el.children(ex.ns, "TextLine") {
			if baseline := line.child(ex.ns, "Baseline"); baseline != nil {
				outlines = append(outlines, baseline)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, string(mode))
	}

	out := make([]Region, 0, len(outlines))
	for _, o := range outlines {
		raw, _ := o.attr("points")
		points, err := ParsePoints(raw)
		if err != nil {
			id, _ := el.attr("id")
			return nil, fmt.Errorf("%s %q: %w", kind, id, err)
		}
		out = append(out, Region{Points: points, Kind: kind, SubType: subType})
	}
	return out, nil
}

// dimension reads a positive integer page attribute.
func dimension(page *xmlNode, attr string) (int, error) {
	raw, ok := page.attr(attr)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingDimensions, attr)
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidDimensions, attr, raw)
	}
	return v, nil
}

// ParsePoints parses a PageXML points attribute: whitespace separated
// "x,y" integer pairs. An empty string yields no points.
func ParsePoints(s string) ([]Point, error) {
	fields := strings.Fields(s)
	points := make([]Point, 0, len(fields))
	for _, tok := range fields {
		xs, ys, ok := strings.Cut(tok, ",")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPoints, tok)
		}
		x, errX := strconv.Atoi(xs)
		y, errY := strconv.Atoi(ys)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPoints, tok)
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
