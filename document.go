package pagemask

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Settings document file names written next to the masks.
const (
	SettingsDocumentName = "mask_setting"
	LegendFileName       = "image_palette.png"
)

// SettingsDocument records the settings a batch was rendered with and the
// color table of its scheme, so masks can be decoded later.
type SettingsDocument struct {
	MaskExtension  string        `json:"mask_extension" yaml:"mask_extension"`
	MaskType       Mode          `json:"mask_type" yaml:"mask_type"`
	PcGtsVersion   SchemaVersion `json:"pcgts_version" yaml:"pcgts_version"`
	LineWidth      int           `json:"line_width" yaml:"line_width"`
	BaselineLength int           `json:"baseline_length" yaml:"baseline_length"`
	ColorMap       ColorMap      `json:"Color_Map" yaml:"Color_Map"`
}

// NewSettingsDocument describes s together with the color table of the
// scheme its mode renders with.
func NewSettingsDocument(s Settings) *SettingsDocument {
	return &SettingsDocument{
		MaskExtension:  s.Extension(),
		MaskType:       s.Mode(),
		PcGtsVersion:   s.SchemaVersion(),
		LineWidth:      s.LineWidth(),
		BaselineLength: s.TickLength(),
		ColorMap:       NewColorMap(s.Mode().Scheme()),
	}
}

// WriteJSON writes d as indented JSON.
func (d *SettingsDocument) WriteJSON(w io.Writer) error {
	b, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return fmt.Errorf("pagemask: encode settings document: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("pagemask: write settings document: %w", err)
	}
	return nil
}

// WriteYAML writes d as YAML.
func (d *SettingsDocument) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("pagemask: encode settings document: %w", err)
	}
	return enc.Close()
}

// Settings rebuilds the settings recorded in d. Missing fields keep their
// defaults.
func (d *SettingsDocument) Settings() (Settings, error) {
	var opts []Option
	if d.MaskExtension != "" {
		opts = append(opts, WithExtension(d.MaskExtension))
	}
	if d.MaskType != "" {
		m, err := ParseMode(string(d.MaskType))
		if err != nil {
			return Settings{}, err
		}
		opts = append(opts, WithMode(m))
	}
	if d.PcGtsVersion != "" {
		v, err := ParseSchemaVersion(string(d.PcGtsVersion))
		if err != nil {
			return Settings{}, err
		}
		opts = append(opts, WithSchemaVersion(v))
	}
	if d.LineWidth > 0 {
		opts = append(opts, WithLineWidth(d.LineWidth))
	}
	if d.BaselineLength > 0 {
		opts = append(opts, WithTickLength(d.BaselineLength))
	}
	return NewSettings(opts...), nil
}

// ErrInvalidSettingsDocument is returned by ReadSettingsDocument for input
// that does not match the settings document schema.
var ErrInvalidSettingsDocument = errors.New("pagemask: invalid settings document")

//go:embed settings.schema.json
var settingsSchemaJSON []byte

var (
	settingsSchemaOnce sync.Once
	settingsSchema     *jsonschema.Schema
	settingsSchemaErr  error
)

func compiledSettingsSchema() (*jsonschema.Schema, error) {
	settingsSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("settings.schema.json", bytes.NewReader(settingsSchemaJSON)); err != nil {
			settingsSchemaErr = fmt.Errorf("pagemask: load settings schema: %w", err)
			return
		}
		settingsSchema, settingsSchemaErr = compiler.Compile("settings.schema.json")
		if settingsSchemaErr != nil {
			settingsSchemaErr = fmt.Errorf("pagemask: compile settings schema: %w", settingsSchemaErr)
		}
	})
	return settingsSchema, settingsSchemaErr
}

// ReadSettingsDocument decodes a JSON settings document after validating
// it against the settings document schema.
func ReadSettingsDocument(r io.Reader) (*SettingsDocument, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("pagemask: read settings document: %w", err)
	}

	schema, err := compiledSettingsSchema()
	if err != nil {
		return nil, err
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettingsDocument, err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettingsDocument, err)
	}

	var doc SettingsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettingsDocument, err)
	}
	return &doc, nil
}
