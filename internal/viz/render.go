package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/logistic/internal/logistic"
)

// Cobweb renders the map curve, the identity line and the staircase of a
// trajectory on a w x h cell Braille canvas.
func Cobweb(a float64, traj []float64, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}

	p := NewPlot(w, h, 0, 1, 0, 1)
	xs, ys := logistic.Curve(a, p.DotsX())
	p.Polyline(xs, ys)
	p.Segment(0, 0, 1, 1)

	from, to := logistic.Trajectory(traj).Steps()
	for i := range from {
		p.Point(from[i], to[i])
		if i+1 < len(from) {
			// post-style: across to the next x, then up to the next y
			p.Segment(from[i], to[i], from[i+1], to[i])
			p.Segment(from[i+1], to[i], from[i+1], to[i+1])
		}
	}
	return frame(p, "x", "f(x)")
}

// Feigenbaum renders the scatter of a bifurcation scan.
func Feigenbaum(points []logistic.Point, w, h int) string {
	if len(points) == 0 || w <= 0 || h <= 0 {
		return ""
	}

	minA, maxA := points[0].A, points[0].A
	minX, maxX := 0.0, 1.0
	for _, pt := range points {
		minA = math.Min(minA, pt.A)
		maxA = math.Max(maxA, pt.A)
		if !math.IsNaN(pt.X) && !math.IsInf(pt.X, 0) {
			minX = math.Min(minX, pt.X)
			maxX = math.Max(maxX, pt.X)
		}
	}

	p := NewPlot(w, h, minA, maxA, minX, maxX)
	for _, pt := range points {
		p.Point(pt.A, pt.X)
	}
	return frame(p, "a", "x")
}

func frame(p *Plot, xLabel, yLabel string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%8.3f ┌%s┐\n", p.MaxY, strings.Repeat("─", p.Width)))
	for i, row := range p.Grid {
		label := "        "
		if i == p.Height/2 {
			label = fmt.Sprintf("%8s", yLabel)
		}
		b.WriteString(label + " │" + string(row) + "│\n")
	}
	b.WriteString(fmt.Sprintf("%8.3f └%s┘\n", p.MinY, strings.Repeat("─", p.Width)))

	left := fmt.Sprintf("%.3f", p.MinX)
	right := fmt.Sprintf("%.3f", p.MaxX)
	gap := p.Width + 2 - len(left) - len(right) - len(xLabel)
	if gap < 2 {
		gap = 2
	}
	b.WriteString(fmt.Sprintf("         %s%s%s%s%s\n", left,
		strings.Repeat(" ", gap/2), xLabel, strings.Repeat(" ", gap-gap/2), right))
	return b.String()
}

// TrajectoryChart plots iterates against their index.
func TrajectoryChart(traj []float64, w, h int, caption string) string {
	if len(traj) == 0 {
		return ""
	}
	return asciigraph.Plot(traj,
		asciigraph.Height(h),
		asciigraph.Width(w),
		asciigraph.Caption(caption),
	)
}
