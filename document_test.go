package pagemask

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNewSettingsDocument(t *testing.T) {
	tests := []struct {
		mode Mode
		text RGB // color of the heading sub-type
	}{
		{ModeAllTypes, RGB{255, 128, 128}},
		{ModeTextLine, RGB{255, 128, 128}},
		{ModeTextNonText, TextColor},
		{ModeBaseline, TextColor},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			doc := NewSettingsDocument(NewSettings(WithMode(tt.mode)))
			if doc.MaskType != tt.mode {
				t.Errorf("MaskType = %q", doc.MaskType)
			}
			heading := doc.ColorMap[0].SubTypes[1]
			if heading.Name != TextHeading || heading.Color != tt.text {
				t.Errorf("heading = %+v, want color %v", heading, tt.text)
			}
		})
	}
}

func TestSettingsDocument_WriteJSON(t *testing.T) {
	doc := NewSettingsDocument(NewSettings(WithLineWidth(7), WithTickLength(15)))

	var buf bytes.Buffer
	if err := doc.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(buf.Bytes(), &generic); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"mask_extension", "mask_type", "pcgts_version", "line_width", "baseline_length", "Color_Map"} {
		if _, ok := generic[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if generic["line_width"] != float64(7) || generic["baseline_length"] != float64(15) {
		t.Errorf("line_width/baseline_length = %v/%v", generic["line_width"], generic["baseline_length"])
	}
	if !strings.Contains(buf.String(), "\n    \"mask_extension\": \"png\"") {
		t.Errorf("expected four space indentation:\n%s", buf.String())
	}
}

func TestSettingsDocument_WriteYAML(t *testing.T) {
	doc := NewSettingsDocument(NewSettings(WithMode(ModeBaseline)))

	var buf bytes.Buffer
	if err := doc.WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "mask_extension: png\nmask_type: baseline\n") {
		t.Errorf("unexpected YAML header:\n%s", out)
	}
	if !strings.Contains(out, `pcgts_version: "2017"`) {
		t.Errorf("schema version should stay a string:\n%s", out)
	}

	var back struct {
		ColorMap map[string]any `yaml:"Color_Map"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("YAML does not parse back: %v", err)
	}
	if len(back.ColorMap) != len(RegionKinds()) {
		t.Errorf("Color_Map kinds = %d", len(back.ColorMap))
	}
}

func TestReadSettingsDocument_RoundTrip(t *testing.T) {
	want := NewSettings(WithMode(ModeTextNonText), WithExtension("tif"), WithSchemaVersion(Schema2019), WithLineWidth(3), WithTickLength(9))

	var buf bytes.Buffer
	if err := NewSettingsDocument(want).WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadSettingsDocument(&buf)
	if err != nil {
		t.Fatalf("ReadSettingsDocument() error = %v", err)
	}
	got, err := doc.Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if got != want {
		t.Errorf("Settings() = %+v, want %+v", got, want)
	}
	if doc.ColorMap.Swatches() != 31 {
		t.Errorf("Swatches() = %d, want 31", doc.ColorMap.Swatches())
	}
}

func TestReadSettingsDocument_LegacyKeys(t *testing.T) {
	in := `{
		"MASK_EXTENSION": "png",
		"MASK_TYPE": "all_types",
		"LINEWIDTH": 5,
		"Color_Map": {
			"TextRegion": {"default_color": [255, 0, 0], "region_type_colors": {"heading": [255, 128, 128]}},
			"ReadingOrder": {"default_color": null, "region_type_colors": {}}
		}
	}`

	doc, err := ReadSettingsDocument(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadSettingsDocument() error = %v", err)
	}
	if got := doc.ColorMap.Swatches(); got != 2 {
		t.Errorf("Swatches() = %d, want 2", got)
	}
	s, err := doc.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if s != NewSettings() {
		t.Errorf("Settings() = %+v, want defaults", s)
	}
}

func TestReadSettingsDocument_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":        `{`,
		"no color map":    `{"mask_type": "all_types"}`,
		"bad mode":        `{"mask_type": "outline", "Color_Map": {}}`,
		"bad version":     `{"pcgts_version": "2021", "Color_Map": {}}`,
		"short color":     `{"Color_Map": {"TextRegion": {"default_color": [1, 2], "region_type_colors": {}}}}`,
		"color overflow":  `{"Color_Map": {"TextRegion": {"default_color": [1, 2, 300], "region_type_colors": {}}}}`,
		"missing default": `{"Color_Map": {"TextRegion": {"region_type_colors": {}}}}`,
		"zero line width": `{"line_width": 0, "Color_Map": {}}`,
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadSettingsDocument(strings.NewReader(in))
			if !errors.Is(err, ErrInvalidSettingsDocument) {
				t.Errorf("error = %v, want ErrInvalidSettingsDocument", err)
			}
		})
	}
}
