// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pagemask

import (
	"image"
	"math"
)

// Vec is a point in continuous image coordinates.
type Vec struct {
	X, Y float64
}

// Segment is a straight line from From to To.
type Segment struct {
	From, To Vec
}

// Tick computes the end marker of a baseline at anchor, where neighbor is
// the adjacent baseline point.
//
// The anchor is pushed half a line width further along the neighbor→anchor
// direction so the tick sits past the round cap of the baseline stroke,
// clamped to [0, bounds.X] x [0, bounds.Y]. The tick is perpendicular to
// that direction and extends length pixels to each side of the anchor.
// ok is false when anchor and neighbor coincide.
func Tick(anchor, neighbor Point, length, lineWidth float64, bounds image.Point) (seg Segment, ok bool) {
	dx := float64(anchor.X - neighbor.X)
	dy := float64(anchor.Y - neighbor.Y)
	mag := math.Hypot(dx, dy)
	if mag == 0 {
		return Segment{}, false
	}
	ux, uy := dx/mag, dy/mag

	px := clamp(float64(anchor.X)+ux*lineWidth/2, 0, float64(bounds.X))
	py := clamp(float64(anchor.Y)+uy*lineWidth/2, 0, float64(bounds.Y))

	// Rotate the direction by 90 degrees.
	rx, ry := -uy, ux

	return Segment{
		From: Vec{X: px + rx*length, Y: py + ry*length},
		To:   Vec{X: px - rx*length, Y: py - ry*length},
	}, true
}

// BaselineTicks returns the ticks at the first and last point of a baseline.
// Baselines with fewer than two points have no ticks.
func BaselineTicks(points []Point, length, lineWidth float64, bounds image.Point) []Segment {
	n := len(points)
	if n < 2 || length <= 0 {
		return nil
	}
	var ticks []Segment
	if seg, ok := Tick(points[0], points[1], length, lineWidth, bounds); ok {
		ticks = append(ticks, seg)
	}
	if seg, ok := Tick(points[n-1], points[n-2], length, lineWidth, bounds); ok {
		ticks = append(ticks, seg)
	}
	return ticks
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
