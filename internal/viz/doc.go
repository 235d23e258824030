// Package viz renders logistic-map results in the terminal.
//
//   - [Canvas]: Braille-based dot canvas; [Plot] maps data onto it
//   - [Cobweb]: map curve, identity line and iteration staircase
//   - [Feigenbaum]: bifurcation scatter
//   - [TrajectoryChart]: iterate against index, via asciigraph
//   - [StepSummary], [ScanSummary]: lipgloss panels
package viz
