package pagemask

import (
	"errors"
	"testing"
)

func TestNewSettingsDefaults(t *testing.T) {
	s := NewSettings()

	if s.Extension() != "png" {
		t.Errorf("Extension() = %q, want png", s.Extension())
	}
	if s.Mode() != ModeAllTypes {
		t.Errorf("Mode() = %q, want all_types", s.Mode())
	}
	if s.SchemaVersion() != Schema2017 {
		t.Errorf("SchemaVersion() = %q, want 2017", s.SchemaVersion())
	}
	if s.LineWidth() != 5 {
		t.Errorf("LineWidth() = %d, want 5", s.LineWidth())
	}
	if s.TickLength() != 20 {
		t.Errorf("TickLength() = %d, want 20", s.TickLength())
	}
}

func TestSettingsOptions(t *testing.T) {
	s := NewSettings(
		WithMode(ModeBaseline),
		WithExtension("tif"),
		WithSchemaVersion(Schema2019S),
		WithLineWidth(7),
		WithTickLength(0),
	)

	if s.Mode() != ModeBaseline || s.Extension() != "tif" || s.SchemaVersion() != Schema2019S {
		t.Errorf("settings = %+v", s)
	}
	if s.LineWidth() != 7 || s.TickLength() != 0 {
		t.Errorf("LineWidth/TickLength = %d/%d, want 7/0", s.LineWidth(), s.TickLength())
	}
}

func TestSettingsToMap(t *testing.T) {
	m := NewSettings(WithMode(ModeTextNonText), WithSchemaVersion(Schema2013)).ToMap()

	want := map[string]any{
		"mask_extension":  "png",
		"mask_type":       "text_non_text",
		"pcgts_version":   "2013",
		"line_width":      5,
		"baseline_length": 20,
	}
	if len(m) != len(want) {
		t.Fatalf("ToMap() has %d keys, want %d: %v", len(m), len(want), m)
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("ToMap()[%q] = %v (%T), want %v", k, m[k], m[k], v)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMode("ALL_TYPES"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseMode(ALL_TYPES) error = %v, want ErrUnknownMode", err)
	}
}

func TestModeScheme(t *testing.T) {
	tests := map[Mode]Scheme{
		ModeAllTypes:    SchemeFull,
		ModeTextLine:    SchemeFull,
		ModeTextNonText: SchemeTextNonText,
		ModeBaseline:    SchemeTextNonText,
	}
	for m, want := range tests {
		if got := m.Scheme(); got != want {
			t.Errorf("%s.Scheme() = %v, want %v", m, got, want)
		}
	}
}

func TestSchemaVersions(t *testing.T) {
	want := []SchemaVersion{Schema2017, Schema2013, Schema2019, Schema2019S, Schema2013S, Schema2017S}
	got := SchemaVersions()
	if len(got) != len(want) {
		t.Fatalf("SchemaVersions() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SchemaVersions()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Mutating the result must not change the probe order.
	got[0] = "x"
	if SchemaVersions()[0] != Schema2017 {
		t.Error("SchemaVersions() exposes internal slice")
	}
}

func TestSchemaVersionNamespace(t *testing.T) {
	if ns := Schema2019S.Namespace(); ns != "https://schema.primaresearch.org/PAGE/gts/pagecontent/2019-07-15" {
		t.Errorf("2019s namespace = %q", ns)
	}
	if ns := Schema2013.Namespace(); ns != "http://schema.primaresearch.org/PAGE/gts/pagecontent/2013-07-15" {
		t.Errorf("2013 namespace = %q", ns)
	}
	if ns := SchemaVersion("2021").Namespace(); ns != "" {
		t.Errorf("unknown namespace = %q, want empty", ns)
	}
}

func TestParseSchemaVersion(t *testing.T) {
	if v, err := ParseSchemaVersion("2013s"); err != nil || v != Schema2013S {
		t.Errorf("ParseSchemaVersion(2013s) = %q, %v", v, err)
	}
	if _, err := ParseSchemaVersion("2021"); !errors.Is(err, ErrUnknownSchemaVersion) {
		t.Errorf("ParseSchemaVersion(2021) error = %v", err)
	}
}

func TestConverterOptions(t *testing.T) {
	o := defaultConverterOptions()
	if o.scale != 1 || o.workers != 0 || o.failFast {
		t.Errorf("defaults = %+v", o)
	}

	for _, opt := range []ConverterOption{WithScale(0.5), WithWorkers(3), WithFailFast(true)} {
		opt(&o)
	}
	if o.scale != 0.5 || o.workers != 3 || !o.failFast {
		t.Errorf("options = %+v", o)
	}
}

func TestRegionKinds(t *testing.T) {
	kinds := RegionKinds()
	if len(kinds) != 12 || kinds[0] != KindTextRegion || kinds[11] != KindNoiseRegion {
		t.Errorf("RegionKinds() = %v", kinds)
	}
	if k, ok := ParseRegionKind("SeparatorRegion"); !ok || k != KindSeparatorRegion {
		t.Errorf("ParseRegionKind(SeparatorRegion) = %q, %v", k, ok)
	}
	if _, ok := ParseRegionKind("FooRegion"); ok {
		t.Error("ParseRegionKind(FooRegion) ok = true")
	}
	if !KindGraphicRegion.HasSubType(GraphicBarcode) || KindGraphicRegion.HasSubType(TextHeading) {
		t.Error("HasSubType mismatch for GraphicRegion")
	}
	if KindImageRegion.SubTypes() != nil {
		t.Error("ImageRegion should have no sub-types")
	}
}
