// Package report renders evaluation results for the terminal.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fbio/internal/analysis"
	"github.com/san-kum/fbio/internal/pbtk"
)

const barWidth = 30

type row struct {
	label string
	value string
}

func renderRows(rows []row) string {
	width := 0
	for _, r := range rows {
		if len(r.label) > width {
			width = len(r.label)
		}
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		pad := strings.Repeat(" ", width-len(r.label))
		lines[i] = MetricLabel.Render(r.label+pad) + "  " + MetricValue.Render(r.value)
	}
	return strings.Join(lines, "\n")
}

func g(v float64) string { return fmt.Sprintf("%.6g", v) }

// Summary renders the result, the factors behind it and the main derived
// parameters. tmax may be nil.
func Summary(out *pbtk.Outcome, tmax map[string]float64) string {
	m := out.Model
	c := out.Chemical

	head := Title.Render(fmt.Sprintf("%s  (%s, logKow %.3g, Papp %.3g cm/s)", c.Name, c.Assay, c.LogKow, c.Papp))
	fbio := fmt.Sprintf("Fbio  %s  %s", MetricValue.Render(fmt.Sprintf("%.6f", out.Fbio)), FractionBar(out.Fbio, barWidth))

	factors := renderRows([]row{
		{"from gut", g(out.Factors.FromGut)},
		{"from wall", g(out.Factors.FromWall)},
		{"liver output", g(out.Factors.LiverOutput)},
		{"absorbed fraction", g(m.AbsorbedFraction())},
	})

	params := renderRows([]row{
		{"K liver:plasma", g(m.Coefficients.Liver)},
		{"K wall:plasma", g(m.Coefficients.Wall)},
		{"K rest:plasma", g(m.Coefficients.Rest)},
		{"R blood:plasma", g(m.Coefficients.Blood)},
		{"fup", g(m.Coefficients.Fup)},
		{"k_abs (1/h)", g(m.Absorption.Kabs)},
		{"CL liver (L/h)", g(m.Clearances.Liver)},
		{"CL wall (L/h)", g(m.Clearances.Wall)},
		{"t1/2 liver (h)", g(m.Clearances.LiverHalfLife)},
		{"t1/2 wall (h)", g(m.Clearances.WallHalfLife)},
	})

	sections := []string{head, fbio, "", factors, "", params}

	if out.Result != nil && len(out.Result.Metrics) > 0 {
		names := make([]string, 0, len(out.Result.Metrics))
		for name := range out.Result.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)

		rows := make([]row, 0, len(names)+len(tmax))
		for _, name := range names {
			rows = append(rows, row{name, g(out.Result.Metrics[name])})
		}
		tnames := make([]string, 0, len(tmax))
		for name := range tmax {
			tnames = append(tnames, name)
		}
		sort.Strings(tnames)
		for _, name := range tnames {
			rows = append(rows, row{name, g(tmax[name])})
		}
		sections = append(sections, "", renderRows(rows))
	}

	if out.Result != nil && len(out.Result.Final) == pbtk.NumStates {
		wall, liver, rest := m.Amounts(out.Result.Final)
		sections = append(sections, "", renderRows([]row{
			{"amount wall", g(wall)},
			{"amount liver", g(liver)},
			{"amount rest", g(rest)},
		}))
	}

	if out.Result != nil {
		st := out.Result.Stats
		sections = append(sections, "", Subtle.Render(fmt.Sprintf("%d steps, %d rejected, %d evaluations", st.Steps, st.Rejected, st.Evaluations)))
	}

	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// SweepTable renders one line per sweep point.
func SweepTable(param analysis.Parameter, points []analysis.Point) string {
	lines := []string{Title.Render(fmt.Sprintf("sweep over %s", param))}
	for _, p := range points {
		label := MetricLabel.Render(fmt.Sprintf("%10.4g", p.Value))
		if p.Err != nil {
			lines = append(lines, label+"  "+Failure.Render(p.Err.Error()))
			continue
		}
		if math.IsNaN(p.Fbio) {
			lines = append(lines, label+"  "+Failure.Render("NaN"))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s  %s  %s", label, MetricValue.Render(fmt.Sprintf("%.6f", p.Fbio)), FractionBar(p.Fbio, barWidth)))
	}
	return Panel.Render(strings.Join(lines, "\n"))
}
