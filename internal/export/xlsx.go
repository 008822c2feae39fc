package export

import (
	"fmt"
	"sort"

	"github.com/piwi3910/StowPlan/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the loading manifest as a spreadsheet: one row per
// crate in loading order on a "Loading Plan" sheet, plus a "Summary" sheet
// with the overall figures. Warehouse teams tend to live in spreadsheets,
// so this is the format they re-sort and annotate.
func ExportXLSX(path string, result model.PlanResult, settings model.StowSettings) error {
	if len(result.Placements) == 0 {
		return fmt.Errorf("no placements to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const planSheet = "Loading Plan"
	if err := f.SetSheetName("Sheet1", planSheet); err != nil {
		return fmt.Errorf("failed to name plan sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headers := []string{"Step", "Crate ID", "Label", "Width", "Height", "Length",
		"X", "Y", "Z", "Orientation", "Volume"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(planSheet, cell, h); err != nil {
			return err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(planSheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	ordered := append([]model.Placement(nil), result.Placements...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return result.Instructions[ordered[i].Crate.ID].Step <
			result.Instructions[ordered[j].Crate.ID].Step
	})

	for row, p := range ordered {
		inst := result.Instructions[p.Crate.ID]
		values := []any{
			inst.Step, p.Crate.ID, p.Crate.Label,
			p.Crate.Width, p.Crate.Height, p.Crate.Length,
			inst.X, inst.Y, inst.Z,
			orientationText(inst), p.Crate.Volume(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(planSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := writeSummarySheet(f, result, settings); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeSummarySheet(f *excelize.File, result model.PlanResult, settings model.StowSettings) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	residual := model.CalculateResidual(result.Truck, result.Placements)
	rows := []struct {
		label string
		value any
	}{
		{"Truck", result.Truck.Label},
		{"Truck Size (WxHxL)", fmt.Sprintf("%d x %d x %d",
			result.Truck.Width, result.Truck.Height, result.Truck.Length)},
		{"Crates Loaded", result.Steps()},
		{"Volume Used", result.VolumeUsed()},
		{"Truck Volume", result.Truck.Volume()},
		{"Utilization %", result.Utilization()},
		{"Free Floor Cells", residual.FreeFloorCells},
		{"Tail Clearance", residual.TailClearance},
		{"Max Stack Height", residual.MaxStackHeight},
		{"Support Ratio", settings.SupportRatio},
		{"Loader Profile", settings.LoaderProfile},
	}

	for i, r := range rows {
		labelCell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		valueCell, err := excelize.CoordinatesToCellName(2, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, labelCell, r.label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, valueCell, r.value); err != nil {
			return err
		}
	}

	return nil
}
