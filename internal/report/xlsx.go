package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/peterkuimelis/cardpower/internal/analyzer"
	"github.com/peterkuimelis/cardpower/internal/score"
)

// Workbook sheet names.
const (
	RankingSheet = "Ranking"
	SummarySheet = "Summary"
)

var rankingHeaders = []string{
	"Rank", "ID", "Name", "Name (zh)", "Color", "Cost", "Effect",
	"Net Value", "Input Pts", "Output Pts", "Breakdown",
}

// ExportXLSX writes the ranking and the balance summary to a workbook.
func ExportXLSX(path string, run *analyzer.Run) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RankingSheet); err != nil {
		return err
	}
	rows := [][]any{}
	for _, r := range Records(run.Ranked) {
		rows = append(rows, []any{
			r.Rank, r.ID, r.Name, r.NameZh, r.Color, r.Cost, r.Effect,
			r.NetValue, r.InputPts, r.OutputPts, breakdownText(r.Breakdown),
		})
	}
	if err := writeSheet(f, RankingSheet, rankingHeaders, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	if err := writeSheet(f, SummarySheet, []string{"Metric", "Value"}, summaryRows(run)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func summaryRows(run *analyzer.Run) [][]any {
	s := run.Summary
	rows := [][]any{
		{"cards", s.Count},
		{"mean", s.Mean},
		{"median", s.Median},
		{"stddev", s.StdDev},
		{"min", s.Min},
		{"q25", s.Q25},
		{"q75", s.Q75},
		{"max", s.Max},
		{"overtuned", s.Overtuned},
		{"strategic", s.Strategic},
	}
	for _, cs := range s.ByColor {
		rows = append(rows, []any{"mean " + cs.Color, cs.Mean})
	}
	if run.Fit != nil {
		rows = append(rows,
			[]any{"fit alpha", run.Fit.Alpha},
			[]any{"fit beta", run.Fit.Beta},
			[]any{"fit r", run.Fit.R},
		)
	}
	return rows
}

// breakdownText renders a breakdown as "label=+1.50; label=-0.20".
func breakdownText(b score.Breakdown) string {
	var parts []string
	b.Each(func(label string, pts float64) {
		parts = append(parts, fmt.Sprintf("%s=%+.2f", label, pts))
	})
	return strings.Join(parts, "; ")
}
