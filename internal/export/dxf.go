package export

import (
	"fmt"

	"github.com/piwi3910/StowPlan/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

// One grid unit is 10 cm; DXF coordinates are written in millimeters.
const dxfUnitMM = 100.0

// ExportDXF writes a floor plan of the loaded truck as a DXF drawing for
// CAD review of dock and ramp clearances. The truck outline goes on a
// TRUCK layer; the footprint of every floor-level crate goes on a CRATES
// layer with its step number and label as text.
func ExportDXF(path string, result model.PlanResult) error {
	if len(result.Placements) == 0 {
		return fmt.Errorf("no placements to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer("TRUCK", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add truck layer: %w", err)
	}
	truck := result.Truck
	if err := drawRect(d, 0, 0, float64(truck.Width)*dxfUnitMM, float64(truck.Length)*dxfUnitMM); err != nil {
		return err
	}

	if _, err := d.AddLayer("CRATES", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add crates layer: %w", err)
	}
	for _, p := range result.Placements {
		if p.Y != 0 {
			continue // floor plan only shows crates on the deck
		}
		x := float64(p.X) * dxfUnitMM
		z := float64(p.Z) * dxfUnitMM
		w := float64(p.PlacedWidth()) * dxfUnitMM
		l := float64(p.PlacedLength()) * dxfUnitMM

		if err := drawRect(d, x, z, x+w, z+l); err != nil {
			return err
		}

		inst := result.Instructions[p.Crate.ID]
		text := fmt.Sprintf("%d %s", inst.Step, p.Crate.Label)
		if _, err := d.Text(text, x+w/2, z+l/2, 0.0, textHeight(w, l)); err != nil {
			return fmt.Errorf("failed to write label for crate %d: %w", p.Crate.ID, err)
		}
	}

	return d.SaveAs(path)
}

// drawRect draws an axis-aligned rectangle as four lines on the current layer.
func drawRect(d *drawing.Drawing, x0, y0, x1, y1 float64) error {
	lines := [][4]float64{
		{x0, y0, x1, y0},
		{x1, y0, x1, y1},
		{x1, y1, x0, y1},
		{x0, y1, x0, y0},
	}
	for _, ln := range lines {
		if _, err := d.Line(ln[0], ln[1], 0.0, ln[2], ln[3], 0.0); err != nil {
			return fmt.Errorf("failed to draw line: %w", err)
		}
	}
	return nil
}

// textHeight picks a label height that fits the footprint.
func textHeight(w, l float64) float64 {
	h := l / 4
	if w/8 < h {
		h = w / 8
	}
	if h > 60 {
		h = 60
	}
	if h < 20 {
		h = 20
	}
	return h
}
