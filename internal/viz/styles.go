package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/logistic/internal/analysis"
	"github.com/san-kum/logistic/internal/logistic"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	StatusOK = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusWarn = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))
)

func metric(label string, value any) string {
	return MetricLabel.Render(fmt.Sprintf("%-12s", label)) + " " + MetricValue.Render(fmt.Sprint(value))
}

// Sparkline draws values with eighth-block characters, sampled to width.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune("▁▂▃▄▅▆▇█")
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := max(len(values)/width, 1)
	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		idx := int((values[i*step] - lo) / span * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}

// StepSummary describes a single-seed run.
func StepSummary(res *logistic.Result, lyapunov float64) string {
	status := StatusOK.Render("converged")
	if !res.Converged {
		status = StatusWarn.Render("not converged")
	}
	_, last := res.Final()

	lines := []string{
		Title.Render("logistic iteration"),
		metric("a", res.A),
		metric("x0", res.X0),
		metric("tolerance", res.Tolerance),
		metric("iterations", res.Iterations),
		metric("last", fmt.Sprintf("%.6f", last)),
		metric("lyapunov", fmt.Sprintf("%.4f", lyapunov)),
		metric("status", status),
		Subtle.Render(Sparkline(res.Trajectory, 48)),
	}
	return Panel.Render(strings.Join(lines, "\n"))
}

// maxTransitions caps how many period changes ScanSummary lists.
const maxTransitions = 6

// ScanSummary describes a bifurcation scan. lyapunov holds one exponent
// per scanned parameter and may be nil.
func ScanSummary(s analysis.Summary, lyapunov []float64) string {
	lines := []string{
		Title.Render("bifurcation scan"),
		metric("parameters", s.Records),
		metric("points", s.Points),
	}
	for _, r := range []analysis.Regime{
		analysis.RegimeFixedPoint,
		analysis.RegimePeriodic,
		analysis.RegimeAperiodic,
		analysis.RegimeTruncated,
	} {
		lines = append(lines, metric(r.String(), s.Regimes[r]))
	}

	periods := make([]int, 0, len(s.Periods))
	for p := range s.Periods {
		periods = append(periods, p)
	}
	sort.Ints(periods)
	parts := make([]string, 0, len(periods))
	for _, p := range periods {
		parts = append(parts, fmt.Sprintf("%d:%d", p, s.Periods[p]))
	}
	if len(parts) > 0 {
		lines = append(lines, metric("periods", strings.Join(parts, " ")))
	}

	if len(s.Transitions) > 0 {
		shown := s.Transitions[:min(len(s.Transitions), maxTransitions)]
		parts := make([]string, 0, len(shown)+1)
		for _, tr := range shown {
			parts = append(parts, fmt.Sprintf("%s→%s@%.4g", periodLabel(tr.From), periodLabel(tr.To), tr.A))
		}
		if extra := len(s.Transitions) - len(shown); extra > 0 {
			parts = append(parts, fmt.Sprintf("+%d", extra))
		}
		lines = append(lines, metric("transitions", strings.Join(parts, " ")))
	}

	if s.Delta > 0 {
		lines = append(lines, metric("delta", fmt.Sprintf("%.3f", s.Delta)))
	}

	if len(lyapunov) > 0 {
		chaotic := 0
		for _, l := range lyapunov {
			if l > 0 {
				chaotic++
			}
		}
		lines = append(lines,
			metric("lyapunov>0", chaotic),
			Subtle.Render(Sparkline(lyapunov, 48)),
		)
	}
	return Panel.Render(strings.Join(lines, "\n"))
}

// periodLabel prints 0 (no period found) as "-".
func periodLabel(p int) string {
	if p <= 0 {
		return "-"
	}
	return fmt.Sprint(p)
}
