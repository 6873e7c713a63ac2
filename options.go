package pagemask

// Option configures Settings during creation.
// Use functional options to customize settings.
//
// Example:
//
//	// Default settings: all_types, png, 2017 schema
//	s := pagemask.NewSettings()
//
//	// Baselines with 7 pixel strokes and 15 pixel ticks
//	s := pagemask.NewSettings(
//		pagemask.WithMode(pagemask.ModeBaseline),
//		pagemask.WithLineWidth(7),
//		pagemask.WithTickLength(15),
//	)
type Option func(*Settings)

// WithMode sets the rendering mode.
func WithMode(m Mode) Option {
	return func(s *Settings) {
		s.mode = m
	}
}

// WithExtension sets the output image extension, for example "png" or "tif".
func WithExtension(ext string) Option {
	return func(s *Settings) {
		s.extension = ext
	}
}

// WithSchemaVersion sets the schema version whose namespace is tried first.
// Documents using another known namespace are still accepted.
func WithSchemaVersion(v SchemaVersion) Option {
	return func(s *Settings) {
		s.schemaVersion = v
	}
}

// WithLineWidth sets the baseline stroke width in pixels.
func WithLineWidth(px int) Option {
	return func(s *Settings) {
		s.lineWidth = px
	}
}

// WithTickLength sets the baseline end tick length in pixels.
// Zero disables ticks.
func WithTickLength(px int) Option {
	return func(s *Settings) {
		s.tickLength = px
	}
}

// ConverterOption configures a Converter.
type ConverterOption func(*converterOptions)

// converterOptions holds optional configuration for Converter creation.
type converterOptions struct {
	scale    float64
	workers  int
	failFast bool
}

// defaultConverterOptions returns the default converter options.
func defaultConverterOptions() converterOptions {
	return converterOptions{
		scale:   1.0,
		workers: 0, // GOMAXPROCS
	}
}

// WithScale sets the uniform scale factor applied to page size and coordinates.
func WithScale(scale float64) ConverterOption {
	return func(o *converterOptions) {
		o.scale = scale
	}
}

// WithWorkers sets the number of files converted concurrently.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) ConverterOption {
	return func(o *converterOptions) {
		o.workers = n
	}
}

// WithFailFast stops starting new files after the first failure.
// Outputs already written are kept.
func WithFailFast(enabled bool) ConverterOption {
	return func(o *converterOptions) {
		o.failFast = enabled
	}
}
