package pagemask

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	imageio "github.com/gogpu/pagemask/internal/image"
	"github.com/gogpu/pagemask/internal/parallel"
)

// ErrUnsupportedFormat is returned for mask extensions no encoder handles.
var ErrUnsupportedFormat = imageio.ErrUnsupportedFormat

// ErrSkipped is recorded for files not started because an earlier file
// failed in fail-fast mode.
var ErrSkipped = errors.New("pagemask: skipped after earlier failure")

// MaskSuffix is inserted between the document name and the image extension.
const MaskSuffix = ".mask."

// Converter turns PageXML files into mask images in an output directory.
//
// A Converter is safe for concurrent use: every call extracts and renders
// with its own state.
type Converter struct {
	settings  Settings
	outputDir string
	opts      converterOptions
}

// NewConverter creates a converter writing into outputDir, which is created
// if missing.
//
// Example:
//
//	c, err := pagemask.NewConverter(settings, "masks",
//		pagemask.WithScale(0.5),
//		pagemask.WithWorkers(4),
//	)
func NewConverter(settings Settings, outputDir string, opts ...ConverterOption) (*Converter, error) {
	o := defaultConverterOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.scale <= 0 || math.IsNaN(o.scale) || math.IsInf(o.scale, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, o.scale)
	}
	if !imageio.Supported(settings.Extension()) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, settings.Extension())
	}
	if _, err := ParseMode(string(settings.Mode())); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return nil, fmt.Errorf("pagemask: create output directory: %w", err)
	}

	return &Converter{settings: settings, outputDir: outputDir, opts: o}, nil
}

// Settings returns the settings the converter renders with.
func (c *Converter) Settings() Settings { return c.settings }

// OutputDir returns the directory masks are written to.
func (c *Converter) OutputDir() string { return c.outputDir }

// OutputPath returns the mask path for a document named name.
func (c *Converter) OutputPath(name string) string {
	return filepath.Join(c.outputDir, name+MaskSuffix+c.settings.Extension())
}

// Mask renders the document at path without writing it.
func (c *Converter) Mask(path string) (*image.RGBA, error) {
	img, _, err := c.render(path)
	return img, err
}

// Convert renders the document at path and writes the mask. It returns the
// path of the written file. Errors are *FileError values naming path.
func (c *Converter) Convert(path string) (string, error) {
	start := time.Now()

	img, doc, err := c.render(path)
	if err != nil {
		return "", err
	}

	out := c.OutputPath(doc.Name)
	if err := imageio.Save(out, img); err != nil {
		return "", &FileError{Path: path, Err: err}
	}

	Logger().Info("converted",
		"file", path, "output", out, "regions", len(doc.Regions), "elapsed", time.Since(start))
	return out, nil
}

func (c *Converter) render(path string) (*image.RGBA, *PageDocument, error) {
	doc, err := ExtractFile(path, c.settings)
	if err != nil {
		return nil, nil, &FileError{Path: path, Err: err}
	}
	img, err := Render(doc, c.settings, c.opts.scale)
	if err != nil {
		return nil, nil, &FileError{Path: path, Err: err}
	}
	return img, doc, nil
}

// Result is the outcome of converting one file in a batch.
type Result struct {
	Input  string
	Output string
	Err    error
}

// convertSafe runs Convert and reports a panic as the file's error so one
// file cannot take down the batch.
func (c *Converter) convertSafe(path string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FileError{Path: path, Err: fmt.Errorf("pagemask: panic: %v", r)}
		}
	}()
	return c.Convert(path)
}

// ConvertAll converts paths on a pool of workers and returns one result
// per path, in input order. A failing file does not stop the others unless
// fail-fast is enabled; cancelling ctx stops files that have not started.
func (c *Converter) ConvertAll(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results
	}

	pool := parallel.NewWorkerPool(c.opts.workers)
	defer pool.Close()

	Logger().Info("converting batch", "files", len(paths), "workers", pool.Workers(),
		"mode", string(c.settings.Mode()), "output_dir", c.outputDir)

	var failed atomic.Bool
	work := make([]func(), len(paths))
	for i, path := range paths {
		work[i] = func() {
			results[i].Input = path
			if err := ctx.Err(); err != nil {
				results[i].Err = &FileError{Path: path, Err: err}
				return
			}
			if c.opts.failFast && failed.Load() {
				results[i].Err = &FileError{Path: path, Err: ErrSkipped}
				return
			}

			out, err := c.convertSafe(path)
			if err != nil {
				failed.Store(true)
				Logger().Error("conversion failed", "file", path, "err", err)
				results[i].Err = err
				return
			}
			results[i].Output = out
		}
	}
	pool.ExecuteAll(work)

	return results
}

// WriteSettingsDocument writes the settings document into the output
// directory as mask_setting.json, or mask_setting.yaml when format is
// "yaml". It returns the written path.
func (c *Converter) WriteSettingsDocument(format string) (string, error) {
	doc := NewSettingsDocument(c.settings)

	format = strings.ToLower(format)
	if format == "yml" {
		format = "yaml"
	}
	write := doc.WriteJSON
	switch format {
	case "", "json":
		format = "json"
	case "yaml":
		write = doc.WriteYAML
	default:
		return "", fmt.Errorf("pagemask: unknown settings document format %q", format)
	}

	path := filepath.Join(c.outputDir, SettingsDocumentName+"."+format)
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pagemask: create settings document: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("pagemask: close settings document: %w", err)
	}
	return path, nil
}

// WriteLegend draws the color legend of the converter's scheme into the
// output directory as image_palette.png. It returns the written path.
func (c *Converter) WriteLegend(opts ...LegendOption) (string, error) {
	path := filepath.Join(c.outputDir, LegendFileName)
	img := Legend(NewColorMap(c.settings.Mode().Scheme()), opts...)
	if err := imageio.Save(path, img); err != nil {
		return "", err
	}
	return path, nil
}

// ExpandInputs resolves an input argument into PageXML file paths: every
// *.xml file of a directory, or the matches of a glob pattern. A plain file
// path matches itself. Results are sorted.
func ExpandInputs(input string) ([]string, error) {
	if info, err := os.Stat(input); err == nil {
		if !info.IsDir() {
			return []string{input}, nil
		}
		return xmlFiles(input)
	}

	matches, err := filepath.Glob(input)
	if err != nil {
		return nil, fmt.Errorf("pagemask: input pattern %q: %w", input, err)
	}

	files := matches[:0]
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && !info.IsDir() {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// xmlFiles lists the *.xml files directly inside dir, sorted.
func xmlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("pagemask: read input directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".xml" {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
