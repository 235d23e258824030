package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/logistic/internal/logistic"
)

const (
	colorCurve    = "#1f77b4"
	colorIdentity = "#ff7f0e"
	colorSteps    = "#2ca02c"
	colorPoints   = "#00ccff"
	colorAxis     = "#888899"
	colorText     = "#ffffff"
	background    = "#0a0a0a"

	margin = 48.0
)

// StepPlot is the data behind a cobweb diagram.
type StepPlot struct {
	A, X0      float64
	CurveX     []float64
	CurveY     []float64
	Trajectory []float64
}

// frame maps data coordinates into the plotting area of an image.
type frame struct {
	width, height          float64
	minX, maxX, minY, maxY float64
}

func newFrame(width, height int, minX, maxX, minY, maxY float64) frame {
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}
	return frame{
		width: float64(width), height: float64(height),
		minX: minX, maxX: maxX, minY: minY, maxY: maxY,
	}
}

func (f frame) px(x float64) float64 {
	return margin + (x-f.minX)/(f.maxX-f.minX)*(f.width-2*margin)
}

func (f frame) py(y float64) float64 {
	return f.height - margin - (y-f.minY)/(f.maxY-f.minY)*(f.height-2*margin)
}

func header(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

func axes(sb *strings.Builder, f frame, title, xLabel, yLabel string) {
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s"/>
`, margin, margin, f.width-2*margin, f.height-2*margin, colorAxis))
	sb.WriteString(fmt.Sprintf(`<g fill="%s" font-family="sans-serif" font-size="12">
<text x="%.1f" y="%.1f" text-anchor="middle" font-size="16">%s</text>
<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>
<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>
<text x="%.1f" y="%.1f">%.3g</text>
<text x="%.1f" y="%.1f" text-anchor="end">%.3g</text>
<text x="%.1f" y="%.1f" text-anchor="end">%.3g</text>
<text x="%.1f" y="%.1f" text-anchor="end">%.3g</text>
</g>
`, colorText,
		f.width/2, margin/2, title,
		f.width/2, f.height-margin/4, xLabel,
		margin/3, f.height/2, yLabel,
		margin, f.height-margin/2, f.minX,
		f.width-margin, f.height-margin/2, f.maxX,
		margin-4, f.height-margin, f.minY,
		margin-4, margin+4, f.maxY))
}

func polyline(sb *strings.Builder, f frame, xs, ys []float64, color string) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n < 2 {
		return
	}
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
	for i := 0; i < n; i++ {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", f.px(xs[i]), f.py(ys[i])))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", f.px(xs[i]), f.py(ys[i])))
		}
	}
	sb.WriteString("\"/>\n")
}

// bounds returns the extent of values widened to include [0, 1].
func bounds(lists ...[]float64) (lo, hi float64) {
	lo, hi = 0, 1
	for _, l := range lists {
		for _, v := range l {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// StepPlotSVG draws the map curve, the identity line and the post-style
// staircase between successive iterates.
func StepPlotSVG(p StepPlot, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	from, to := logistic.Trajectory(p.Trajectory).Steps()
	minX, maxX := bounds(p.CurveX, from)
	minY, maxY := bounds(p.CurveY, to)
	f := newFrame(width, height, minX, maxX, minY, maxY)

	var sb strings.Builder
	header(&sb, width, height)
	axes(&sb, f, "Logistic iteration steps", "x", "f(x)")

	polyline(&sb, f, p.CurveX, p.CurveY, colorCurve)
	polyline(&sb, f, []float64{minX, maxX}, []float64{minX, maxX}, colorIdentity)

	if len(from) > 0 {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="0.5" stroke-width="1.5" d="M%.1f,%.1f`,
			colorSteps, f.px(from[0]), f.py(to[0])))
		for i := 1; i < len(from); i++ {
			sb.WriteString(fmt.Sprintf(" H%.1f V%.1f", f.px(from[i]), f.py(to[i])))
		}
		sb.WriteString("\"/>\n")

		sb.WriteString(fmt.Sprintf(`<g fill="%s" fill-opacity="0.37">
`, colorSteps))
		for i := range from {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2.5"/>
`, f.px(from[i]), f.py(to[i])))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="sans-serif" font-size="14" text-anchor="middle">a = %g, x0 = %g</text>
`, float64(width)/2, float64(height)*0.2, colorText, p.A, p.X0))

	sb.WriteString("</svg>")
	return sb.String()
}

// FeigenbaumSVG scatters every (a, x) point of a bifurcation scan.
func FeigenbaumSVG(points []logistic.Point, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minA, maxA := points[0].A, points[0].A
	xs := make([]float64, len(points))
	for i, p := range points {
		minA = math.Min(minA, p.A)
		maxA = math.Max(maxA, p.A)
		xs[i] = p.X
	}
	minX, maxX := bounds(xs)
	f := newFrame(width, height, minA, maxA, minX, maxX)

	var sb strings.Builder
	header(&sb, width, height)
	axes(&sb, f, "Feigenbaum plot", "a", "x")

	sb.WriteString(fmt.Sprintf(`<g fill="%s">
`, colorPoints))
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="0.5"/>
`, f.px(p.A), f.py(p.X)))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
