package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"mideck/domain/demo"
)

// Sheet names of the sweep workbook.
const (
	SweepSheet   = "Sweep"
	SummarySheet = "Summary"
)

// SweepHeaders is the header row of the sweep sheet.
var SweepHeaders = []string{"value", "pooled_estimate", "lower_bound", "upper_bound", "half_width"}

// WriteSweep writes a parameter sweep as an xlsx workbook: one row per slider
// position on the first sheet, the inputs and summary on the second.
func WriteSweep(w io.Writer, sw *demo.Sweep) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SweepSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := make([]interface{}, len(SweepHeaders))
	for i, h := range SweepHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(SweepSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SweepSheet, "A1", "E1", bold); err != nil {
		return err
	}

	for i, pt := range sw.Points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			pt.Value,
			pt.Result.PooledEstimate,
			pt.Result.LowerBound,
			pt.Result.UpperBound,
			pt.Result.HalfWidth(),
		}
		if err := f.SetSheetRow(SweepSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SweepSheet, "A", "E", 16); err != nil {
		return err
	}

	summary := [][]interface{}{
		{"parameter", string(sw.Parameter)},
		{"seed", fmt.Sprintf("%d", sw.Seed)},
		{"sample_size", sw.Base.SampleSize},
		{"missing_percent", sw.Base.MissingPercent},
		{"num_imputations", sw.Base.NumImputations},
		{"model_complexity", sw.Base.ModelComplexity},
		{"mean_estimate", sw.Summary.MeanEstimate},
		{"min_half_width", sw.Summary.MinHalfWidth},
		{"max_half_width", sw.Summary.MaxHalfWidth},
		{"mean_half_width", sw.Summary.MeanHalfWidth},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SummarySheet, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 20); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
