package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/logistic/internal/analysis"
	"github.com/san-kum/logistic/internal/logistic"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)

	if !c.IsSet(0, 0) || !c.IsSet(3, 3) {
		t.Error("expected dots to be lit")
	}
	if c.IsSet(1, 0) {
		t.Error("unexpected lit dot")
	}
	if c.Lit() != 2 {
		t.Errorf("expected 2 lit dots, got %d", c.Lit())
	}
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1 braille, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8 braille, got %U", c.Grid[0][1])
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.Line(0, 0, 7, 0)
	if c.Lit() != 8 {
		t.Errorf("horizontal line should light 8 dots, got %d", c.Lit())
	}

	c = NewCanvas(1, 2)
	c.Line(0, 7, 0, 0)
	if c.Lit() != 8 {
		t.Errorf("vertical line should light 8 dots, got %d", c.Lit())
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for _, l := range lines {
		if len([]rune(l)) != 3 {
			t.Errorf("expected 3 cells, got %q", l)
		}
	}
}

func TestPlotCorners(t *testing.T) {
	p := NewPlot(10, 5, 0, 1, 0, 1)
	p.Point(0, 0)
	p.Point(1, 1)

	if !p.IsSet(0, p.DotsY()-1) {
		t.Error("origin should map to bottom-left")
	}
	if !p.IsSet(p.DotsX()-1, 0) {
		t.Error("(1,1) should map to top-right")
	}
}

func TestCobweb(t *testing.T) {
	res, err := logistic.Converge(2.707, 0.1, logistic.Options{})
	if err != nil {
		t.Fatal(err)
	}
	out := Cobweb(res.A, res.Trajectory, 40, 12)
	if out == "" {
		t.Fatal("empty cobweb")
	}
	if !strings.Contains(out, "f(x)") {
		t.Error("missing y label")
	}
	if Cobweb(2.7, nil, 0, 10) != "" {
		t.Error("expected empty output for zero width")
	}
}

func TestFeigenbaum(t *testing.T) {
	if Feigenbaum(nil, 40, 10) != "" {
		t.Error("expected empty output without points")
	}

	pts := []logistic.Point{{A: 2.8, X: 0.64}, {A: 3.2, X: 0.51}, {A: 3.2, X: 0.80}}
	out := Feigenbaum(pts, 40, 10)
	if !strings.Contains(out, "2.800") || !strings.Contains(out, "3.200") {
		t.Errorf("missing parameter range in axis:\n%s", out)
	}
}

func TestTrajectoryChart(t *testing.T) {
	if TrajectoryChart(nil, 40, 10, "x") != "" {
		t.Error("expected empty chart")
	}
	out := TrajectoryChart([]float64{0.1, 0.3, 0.5, 0.6}, 40, 5, "iterates")
	if !strings.Contains(out, "iterates") {
		t.Error("missing caption")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 4); got != "────" {
		t.Errorf("empty sparkline = %q", got)
	}
	got := Sparkline([]float64{0, 1}, 10)
	if got != "▁█" {
		t.Errorf("sparkline = %q", got)
	}
	if Sparkline([]float64{1}, 0) != "" {
		t.Error("expected empty sparkline for zero width")
	}
}

func TestSummaries(t *testing.T) {
	res, _ := logistic.Converge(3.5, 0.1, logistic.Options{MaxIterations: 100})
	out := StepSummary(res, 0.1)
	if !strings.Contains(out, "not converged") {
		t.Errorf("expected non-convergence status:\n%s", out)
	}

	s := analysis.Summary{
		Records: 3,
		Points:  7,
		Regimes: map[analysis.Regime]int{analysis.RegimePeriodic: 3},
		Periods: map[int]int{2: 2, 4: 1},
		Transitions: []analysis.Transition{
			{A: 3.45, From: 2, To: 4},
			{A: 3.6, From: 4, To: 0},
		},
		Delta: 4.7,
	}
	out = ScanSummary(s, []float64{-0.5, -0.1, 0.3})
	for _, want := range []string{"bifurcation scan", "2:2 4:1", "4.700", "2→4@3.45", "4→-@3.6", "lyapunov>0"} {
		if !strings.Contains(out, want) {
			t.Errorf("scan summary missing %q:\n%s", want, out)
		}
	}

	if out := ScanSummary(analysis.Summary{}, nil); strings.Contains(out, "transitions") || strings.Contains(out, "lyapunov") {
		t.Errorf("empty summary should omit optional lines:\n%s", out)
	}
}
