package pagemask

import (
	"encoding/json"
	"fmt"
	"image/color"
)

// RGB is an opaque 8-bit mask color.
type RGB struct {
	R, G, B uint8
}

// RGBA converts c to an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// MarshalJSON encodes c as a [r, g, b] array.
func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]uint8{c.R, c.G, c.B})
}

// UnmarshalJSON decodes a [r, g, b] array.
func (c *RGB) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("pagemask: color: %w", err)
	}
	if len(v) != 3 {
		return fmt.Errorf("pagemask: color: want 3 components, got %d", len(v))
	}
	for _, x := range v {
		if x < 0 || x > 255 {
			return fmt.Errorf("pagemask: color: component %d out of range", x)
		}
	}
	*c = RGB{R: uint8(v[0]), G: uint8(v[1]), B: uint8(v[2])}
	return nil
}

// White is the mask background.
var White = RGB{255, 255, 255}

// Scheme selects one of the two color sets of the color table.
type Scheme int

const (
	// SchemeFull gives every region kind and sub-type its own color.
	SchemeFull Scheme = iota
	// SchemeTextNonText reduces every region to the text or the non-text color.
	SchemeTextNonText
)

func (s Scheme) String() string {
	switch s {
	case SchemeFull:
		return "full"
	case SchemeTextNonText:
		return "text_non_text"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// Text and non-text colors of the binary scheme.
var (
	TextColor    = RGB{255, 0, 0}
	NonTextColor = RGB{0, 255, 0}
)

// colorPair holds the colors of one table entry in both schemes.
type colorPair struct {
	full, textNonText RGB
}

func (p colorPair) pick(s Scheme) RGB {
	if s == SchemeTextNonText {
		return p.textNonText
	}
	return p.full
}

// kindColors holds the default color of each kind.
// ReadingOrder is structural and has no entry.
var kindColors = map[RegionKind]colorPair{
	KindTextRegion:      {RGB{255, 0, 0}, TextColor},
	KindImageRegion:     {RGB{0, 255, 0}, NonTextColor},
	KindGraphicRegion:   {RGB{0, 0, 255}, NonTextColor},
	KindSeparatorRegion: {RGB{255, 255, 0}, NonTextColor},
	KindBorder:          {White, White},
	KindMathsRegion:     {RGB{128, 255, 255}, NonTextColor},
	KindTableRegion:     {RGB{64, 255, 255}, NonTextColor},
	KindRelations:       {RGB{64, 255, 255}, NonTextColor},
	KindPrintSpace:      {White, White},
	KindMusicRegion:     {RGB{32, 255, 255}, NonTextColor},
	KindNoiseRegion:     {RGB{255, 32, 255}, NonTextColor},
}

type subTypeKey struct {
	kind    RegionKind
	subType string
}

// subTypeColors overrides the kind default for recognized sub-types.
var subTypeColors = map[subTypeKey]colorPair{
	{KindTextRegion, TextParagraph}:         {RGB{255, 128, 0}, TextColor},
	{KindTextRegion, TextHeading}:           {RGB{255, 128, 128}, TextColor},
	{KindTextRegion, TextHeader}:            {RGB{255, 64, 128}, TextColor},
	{KindTextRegion, TextCatchWord}:         {RGB{255, 128, 64}, TextColor},
	{KindTextRegion, TextPageNumber}:        {RGB{255, 32, 128}, TextColor},
	{KindTextRegion, TextSignatureMark}:     {RGB{255, 128, 32}, TextColor},
	{KindTextRegion, TextMarginalia}:        {RGB{255, 64, 32}, TextColor},
	{KindTextRegion, TextOther}:             {RGB{255, 32, 64}, TextColor},
	{KindTextRegion, TextDropCapital}:       {RGB{255, 64, 64}, NonTextColor},
	{KindTextRegion, TextFloating}:          {RGB{255, 0, 128}, TextColor},
	{KindTextRegion, TextCaption}:           {RGB{255, 64, 0}, TextColor},
	{KindTextRegion, TextEndnote}:           {RGB{255, 0, 64}, TextColor},
	{KindTextRegion, TextFootnote}:          {RGB{255, 32, 0}, TextColor},
	{KindTextRegion, TextFootnoteContinued}: {RGB{255, 0, 32}, TextColor},
	{KindTextRegion, TextFooter}:            {RGB{255, 32, 32}, TextColor},

	{KindGraphicRegion, GraphicStamp}:                 {RGB{128, 0, 255}, NonTextColor},
	{KindGraphicRegion, GraphicHandwrittenAnnotation}: {RGB{0, 128, 255}, TextColor},
	{KindGraphicRegion, GraphicDecoration}:            {RGB{128, 0, 255}, NonTextColor},
	{KindGraphicRegion, GraphicBarcode}:               {RGB{128, 128, 255}, NonTextColor},
	{KindGraphicRegion, GraphicOther}:                 {RGB{128, 64, 255}, NonTextColor},
}

// Lookup returns the mask color of a region of the given kind and sub-type.
//
// A recognized sub-type uses its own color. An empty or unrecognized
// sub-type falls back to the kind default; an unrecognized one is logged
// as a warning. ok is false only for kinds without a color (ReadingOrder)
// and for unknown kinds.
func Lookup(kind RegionKind, subType string, scheme Scheme) (c RGB, ok bool) {
	if subType != "" {
		if p, found := subTypeColors[subTypeKey{kind: kind, subType: subType}]; found {
			return p.pick(scheme), true
		}
		Logger().Warn("unknown region sub-type, using region default",
			"sub_type", subType, "region", string(kind))
	}

	p, found := kindColors[kind]
	if !found {
		return RGB{}, false
	}
	return p.pick(scheme), true
}

// DefaultColor returns the default color of kind, ignoring sub-types.
func DefaultColor(kind RegionKind, scheme Scheme) (RGB, bool) {
	return Lookup(kind, "", scheme)
}
