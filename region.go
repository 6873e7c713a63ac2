package pagemask

// RegionKind is the element name of a top-level PageXML page child.
type RegionKind string

// Region kinds known to the PageXML schema.
const (
	KindTextRegion      RegionKind = "TextRegion"
	KindImageRegion     RegionKind = "ImageRegion"
	KindGraphicRegion   RegionKind = "GraphicRegion"
	KindSeparatorRegion RegionKind = "SeparatorRegion"
	KindReadingOrder    RegionKind = "ReadingOrder"
	KindBorder          RegionKind = "Border"
	KindMathsRegion     RegionKind = "MathsRegion"
	KindTableRegion     RegionKind = "TableRegion"
	KindRelations       RegionKind = "Relations"
	KindPrintSpace      RegionKind = "PrintSpace"
	KindMusicRegion     RegionKind = "MusicRegion"
	KindNoiseRegion     RegionKind = "NoiseRegion"
)

// regionKinds lists every kind in canonical order.
var regionKinds = []RegionKind{
	KindTextRegion,
	KindImageRegion,
	KindGraphicRegion,
	KindSeparatorRegion,
	KindReadingOrder,
	KindBorder,
	KindMathsRegion,
	KindTableRegion,
	KindRelations,
	KindPrintSpace,
	KindMusicRegion,
	KindNoiseRegion,
}

// RegionKinds returns all region kinds in canonical order.
func RegionKinds() []RegionKind {
	out := make([]RegionKind, len(regionKinds))
	copy(out, regionKinds)
	return out
}

// ParseRegionKind maps an element local name to its kind.
func ParseRegionKind(name string) (RegionKind, bool) {
	for _, k := range regionKinds {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}

// Text region sub-types (the "type" attribute of TextRegion).
const (
	TextParagraph         = "paragraph"
	TextHeading           = "heading"
	TextHeader            = "header"
	TextCatchWord         = "catch-word"
	TextPageNumber        = "page-number"
	TextSignatureMark     = "signature-mark"
	TextMarginalia        = "marginalia"
	TextOther             = "other"
	TextDropCapital       = "drop-capital"
	TextFloating          = "floating"
	TextCaption           = "caption"
	TextEndnote           = "endnote"
	TextFootnote          = "footnote"
	TextFootnoteContinued = "footnote-continued"
	TextFooter            = "footer"
)

// Graphic region sub-types (the "type" attribute of GraphicRegion).
const (
	GraphicStamp                 = "stamp"
	GraphicHandwrittenAnnotation = "handwritten-annotation"
	GraphicDecoration            = "decoration"
	GraphicBarcode               = "barcode"
	GraphicOther                 = "other"
)

var textSubTypes = []string{
	TextParagraph,
	TextHeading,
	TextHeader,
	TextCatchWord,
	TextPageNumber,
	TextSignatureMark,
	TextMarginalia,
	TextOther,
	TextDropCapital,
	TextFloating,
	TextCaption,
	TextEndnote,
	TextFootnote,
	TextFootnoteContinued,
	TextFooter,
}

var graphicSubTypes = []string{
	GraphicStamp,
	GraphicHandwrittenAnnotation,
	GraphicDecoration,
	GraphicBarcode,
	GraphicOther,
}

// SubTypes returns the sub-types valid for k in canonical order.
// Kinds without sub-types return nil.
func (k RegionKind) SubTypes() []string {
	var src []string
	switch k {
	case KindTextRegion:
		src = textSubTypes
	case KindGraphicRegion:
		src = graphicSubTypes
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// HasSubType reports whether subType is a member of the sub-type set of k.
func (k RegionKind) HasSubType(subType string) bool {
	if subType == "" {
		return false
	}
	_, ok := subTypeColors[subTypeKey{kind: k, subType: subType}]
	return ok
}

func (k RegionKind) String() string { return string(k) }
