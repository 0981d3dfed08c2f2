package storage

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/san-kum/fbio/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Steps  int            `json:"steps"`
	Times  []float64      `json:"times"`
	States []dynamo.State `json:"states"`
}

func newExportData(meta RunMetadata, states []dynamo.State, times []float64) ExportData {
	return ExportData{
		RunMetadata: meta,
		Steps:       len(times),
		Times:       times,
		States:      states,
	}
}

func ExportJSON(path string, meta RunMetadata, states []dynamo.State, times []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, states, times)
}

func WriteJSON(w io.Writer, meta RunMetadata, states []dynamo.State, times []float64) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(meta, states, times))
}

const (
	summarySheet    = "Summary"
	trajectorySheet = "Trajectory"
)

// ExportXLSX writes a workbook with a run summary sheet and, when states are
// given, the trajectory on a second sheet.
func ExportXLSX(path string, meta RunMetadata, states []dynamo.State, times []float64) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	summary := [][]interface{}{
		{"run", meta.ID},
		{"chemical", meta.Chemical.Name},
		{"assay", meta.Chemical.Assay.String()},
		{"log_kow", meta.Chemical.LogKow},
		{"papp", meta.Chemical.Papp},
		{"body_weight", meta.BodyWeight},
		{"horizon", meta.Horizon},
		{"grid_points", meta.GridPoints},
		{"integrator", meta.Integrator},
		{"fbio", meta.Fbio},
		{"from_gut", meta.Factors.FromGut},
		{"from_wall", meta.Factors.FromWall},
		{"liver_output", meta.Factors.LiverOutput},
	}

	names := make([]string, 0, len(meta.Metrics))
	for name := range meta.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		summary = append(summary, []interface{}{name, meta.Metrics[name]})
	}

	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}

	if len(states) > 0 {
		if _, err := f.NewSheet(trajectorySheet); err != nil {
			return err
		}

		rows := make([][]interface{}, 0, len(states)+1)
		head := header(len(states[0]))
		headRow := make([]interface{}, len(head))
		for i, h := range head {
			headRow[i] = h
		}
		rows = append(rows, headRow)

		for i, x := range states {
			row := make([]interface{}, 0, len(x)+1)
			row = append(row, times[i])
			for _, v := range x {
				row = append(row, v)
			}
			rows = append(rows, row)
		}

		if err := writeRows(f, trajectorySheet, rows); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
