package pagemask

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/pagemask/internal/raster"
)

// Default legend layout in pixels.
const (
	DefaultLegendWidth   = 1000
	DefaultSwatchSize    = 130
	DefaultLegendGap     = 20
	DefaultLegendTextGap = 20
	DefaultLabelSize     = 12
)

// LegendOption configures Legend.
type LegendOption func(*legendOptions)

type legendOptions struct {
	width     int
	swatch    int
	gap       int
	textGap   int
	labelSize float64
}

func defaultLegendOptions() legendOptions {
	return legendOptions{
		width:     DefaultLegendWidth,
		swatch:    DefaultSwatchSize,
		gap:       DefaultLegendGap,
		textGap:   DefaultLegendTextGap,
		labelSize: DefaultLabelSize,
	}
}

// WithLegendWidth sets the image width. Rows wrap within it.
func WithLegendWidth(px int) LegendOption {
	return func(o *legendOptions) {
		if px > 0 {
			o.width = px
		}
	}
}

// WithSwatchSize sets the side length of each color square.
func WithSwatchSize(px int) LegendOption {
	return func(o *legendOptions) {
		if px > 0 {
			o.swatch = px
		}
	}
}

// WithLegendGap sets the spacing between swatches and around the border.
func WithLegendGap(px int) LegendOption {
	return func(o *legendOptions) {
		if px >= 0 {
			o.gap = px
		}
	}
}

// WithLabelSize sets the label font size in pixels.
func WithLabelSize(px float64) LegendOption {
	return func(o *legendOptions) {
		if px > 0 {
			o.labelSize = px
		}
	}
}

// swatch is one labeled color square of a legend.
type swatch struct {
	label string
	color RGB
	at    image.Point
}

// Legend draws a color key for m: one outlined square per colored kind
// default and per sub-type, each labeled with its name. Squares are laid
// out left to right and wrap to a new row before overflowing the width.
// The height grows to fit every square.
func Legend(m ColorMap, opts ...LegendOption) *image.RGBA {
	o := defaultLegendOptions()
	for _, opt := range opts {
		opt(&o)
	}

	swatches, height := o.layout(m)

	img := image.NewRGBA(image.Rect(0, 0, o.width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(White.RGBA()), image.Point{}, draw.Src)

	pixmap := raster.NewImagePixmap(img)
	r := raster.NewRasterizer()
	black := color.RGBA{A: 255}

	face := labelFace(o.labelSize)
	defer func() { _ = face.Close() }()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(black),
		Face: face,
	}

	for _, s := range swatches {
		box := image.Rect(s.at.X, s.at.Y, s.at.X+o.swatch, s.at.Y+o.swatch)
		draw.Draw(img, box, image.NewUniform(s.color.RGBA()), image.Point{}, draw.Src)

		x0, y0 := float64(box.Min.X)+0.5, float64(box.Min.Y)+0.5
		x1, y1 := float64(box.Max.X)-0.5, float64(box.Max.Y)-0.5
		r.Stroke(pixmap, []raster.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0}}, 1, black)

		d.Dot = fixed.P(box.Min.X, box.Min.Y-o.gap/4)
		d.DrawString(s.label)
	}

	return img
}

// layout places every swatch of m and returns the image height.
func (o legendOptions) layout(m ColorMap) ([]swatch, int) {
	var out []swatch
	x, y := o.gap, o.gap+o.textGap

	place := func(label string, c RGB) {
		out = append(out, swatch{label: label, color: c, at: image.Point{X: x, Y: y}})
		if x+o.gap+2*o.swatch < o.width {
			x += o.gap + o.swatch
		} else {
			x, y = o.gap, y+o.gap+o.swatch
		}
	}

	for _, kc := range m {
		if kc.Default != nil {
			place(string(kc.Kind), *kc.Default)
		}
		for _, st := range kc.SubTypes {
			place(st.Name, st.Color)
		}
	}

	if len(out) == 0 {
		return nil, 2*o.gap + o.textGap
	}
	last := out[len(out)-1].at.Y
	return out, last + o.swatch + o.gap
}

var (
	labelFaceOnce sync.Once
	labelFont     *opentype.Font
)

// labelFace returns Go Regular at size pixels, or the built-in bitmap face
// when the embedded font cannot be loaded.
func labelFace(size float64) font.Face {
	labelFaceOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			Logger().Warn("legend font unavailable, using bitmap labels", "err", err)
			return
		}
		labelFont = f
	})
	if labelFont == nil {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(labelFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		Logger().Warn("legend face unavailable, using bitmap labels", "err", err)
		return basicfont.Face7x13
	}
	return face
}
