package pagemask

import (
	"errors"
	"fmt"
)

// Mode selects what is extracted from a page and how it is drawn.
type Mode string

const (
	// ModeAllTypes fills region polygons with full-scheme colors.
	ModeAllTypes Mode = "all_types"
	// ModeTextNonText fills region polygons with text/non-text colors.
	ModeTextNonText Mode = "text_non_text"
	// ModeBaseline strokes text line baselines.
	ModeBaseline Mode = "baseline"
	// ModeTextLine fills text line polygons with their region's full-scheme color.
	ModeTextLine Mode = "text_line"
)

// Modes returns all modes.
func Modes() []Mode {
	return []Mode{ModeAllTypes, ModeTextNonText, ModeBaseline, ModeTextLine}
}

// ErrUnknownMode is returned by ParseMode for unrecognized names.
var ErrUnknownMode = errors.New("pagemask: unknown mode")

// ParseMode parses a mode name such as "all_types".
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Scheme returns the color scheme the mode renders with.
func (m Mode) Scheme() Scheme {
	switch m {
	case ModeTextNonText, ModeBaseline:
		return SchemeTextNonText
	default:
		return SchemeFull
	}
}

func (m Mode) String() string { return string(m) }

// SchemaVersion names a PageXML schema release and URI scheme.
// Versions with an "s" suffix use https namespace URIs.
type SchemaVersion string

const (
	Schema2017  SchemaVersion = "2017"
	Schema2013  SchemaVersion = "2013"
	Schema2019  SchemaVersion = "2019"
	Schema2019S SchemaVersion = "2019s"
	Schema2013S SchemaVersion = "2013s"
	Schema2017S SchemaVersion = "2017s"
)

// schemaVersions is the fixed probe order used when a document does not
// use the namespace of the configured version.
var schemaVersions = []SchemaVersion{
	Schema2017,
	Schema2013,
	Schema2019,
	Schema2019S,
	Schema2013S,
	Schema2017S,
}

// SchemaVersions returns all known schema versions in probe order.
func SchemaVersions() []SchemaVersion {
	out := make([]SchemaVersion, len(schemaVersions))
	copy(out, schemaVersions)
	return out
}

var namespaces = map[SchemaVersion]string{
	Schema2017:  "http://schema.primaresearch.org/PAGE/gts/pagecontent/2017-07-15",
	Schema2013:  "http://schema.primaresearch.org/PAGE/gts/pagecontent/2013-07-15",
	Schema2019:  "http://schema.primaresearch.org/PAGE/gts/pagecontent/2019-07-15",
	Schema2013S: "https://schema.primaresearch.org/PAGE/gts/pagecontent/2013-07-15",
	Schema2017S: "https://schema.primaresearch.org/PAGE/gts/pagecontent/2017-07-15",
	Schema2019S: "https://schema.primaresearch.org/PAGE/gts/pagecontent/2019-07-15",
}

// Namespace returns the XML namespace URI of v, or "" for unknown versions.
func (v SchemaVersion) Namespace() string {
	return namespaces[v]
}

// ErrUnknownSchemaVersion is returned by ParseSchemaVersion for unrecognized names.
var ErrUnknownSchemaVersion = errors.New("pagemask: unknown schema version")

// ParseSchemaVersion parses a version name such as "2019" or "2013s".
func ParseSchemaVersion(s string) (SchemaVersion, error) {
	v := SchemaVersion(s)
	if _, ok := namespaces[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSchemaVersion, s)
	}
	return v, nil
}

func (v SchemaVersion) String() string { return string(v) }

// Settings is the immutable configuration threaded through extraction and
// rendering. The zero value is not useful; use NewSettings.
type Settings struct {
	extension     string
	mode          Mode
	schemaVersion SchemaVersion
	lineWidth     int
	tickLength    int
}

// Default settings values.
const (
	DefaultExtension  = "png"
	DefaultLineWidth  = 5
	DefaultTickLength = 20
)

// NewSettings returns settings with defaults overridden by opts.
// Nothing is validated: options that do not apply to the mode are inert.
func NewSettings(opts ...Option) Settings {
	s := Settings{
		extension:     DefaultExtension,
		mode:          ModeAllTypes,
		schemaVersion: Schema2017,
		lineWidth:     DefaultLineWidth,
		tickLength:    DefaultTickLength,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Extension returns the output image extension without the dot.
func (s Settings) Extension() string { return s.extension }

// Mode returns the rendering mode.
func (s Settings) Mode() Mode { return s.mode }

// SchemaVersion returns the schema version whose namespace is probed first.
func (s Settings) SchemaVersion() SchemaVersion { return s.schemaVersion }

// LineWidth returns the baseline stroke width in pixels.
func (s Settings) LineWidth() int { return s.lineWidth }

// TickLength returns the half length of baseline end ticks in pixels; 0 disables them.
func (s Settings) TickLength() int { return s.tickLength }

// ToMap returns the documentation mapping of s. Enumerations are stored
// as their literal string values.
func (s Settings) ToMap() map[string]any {
	return map[string]any{
		"mask_extension":  s.extension,
		"mask_type":       string(s.mode),
		"pcgts_version":   string(s.schemaVersion),
		"line_width":      s.lineWidth,
		"baseline_length": s.tickLength,
	}
}
