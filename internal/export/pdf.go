// Package export writes finished stow plans to various file formats.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/StowPlan/internal/model"
)

// crateColor represents an RGB color for a placed crate.
type crateColor struct {
	R, G, B int
}

var crateColors = []crateColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document for a stow plan. Each stacking layer
// gets its own page with a top-down diagram of the crates resting at that
// height, followed by a summary page with the full loading sequence.
func ExportPDF(path string, result model.PlanResult, settings model.StowSettings) error {
	if len(result.Placements) == 0 {
		return fmt.Errorf("no placements to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, layer := range stackLayers(result) {
		pdf.AddPage()
		renderLayerPage(pdf, result, layer)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// stackLayers returns the distinct Y levels crates rest on, ascending.
func stackLayers(result model.PlanResult) []int {
	seen := make(map[int]bool)
	for _, p := range result.Placements {
		seen[p.Y] = true
	}
	layers := make([]int, 0, len(seen))
	for y := range seen {
		layers = append(layers, y)
	}
	sort.Ints(layers)
	return layers
}

// renderLayerPage draws the top-down view of one stacking layer. Width runs
// horizontally, length runs down the page, matching a view from above with
// the tail of the truck at the bottom.
func renderLayerPage(pdf *fpdf.Fpdf, result model.PlanResult, layer int) {
	truck := result.Truck

	var onLayer []model.Placement
	for _, p := range result.Placements {
		if p.Y == layer {
			onLayer = append(onLayer, p)
		}
	}

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Layer at height %d: %s (%d x %d x %d units)",
		layer, truck.Label, truck.Width, truck.Height, truck.Length)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Crates on this layer: %d | Total crates: %d | Utilization: %.1f%%",
		len(onLayer), result.Steps(), result.Utilization())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Scale the truck floor into the drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scaleX := drawWidth / float64(truck.Width)
	scaleZ := drawHeight / float64(truck.Length)
	scale := math.Min(scaleX, scaleZ)

	canvasW := float64(truck.Width) * scale
	canvasH := float64(truck.Length) * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Truck floor background
	pdf.SetFillColor(225, 225, 225)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, p := range onLayer {
		step := result.Instructions[p.Crate.ID].Step
		col := crateColors[(step-1)%len(crateColors)]
		pw := float64(p.PlacedWidth()) * scale
		pl := float64(p.PlacedLength()) * scale
		px := offsetX + float64(p.X)*scale
		pz := offsetY + float64(p.Z)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, pz, pw, pl, "FD")

		if pw > 15 && pl > 8 {
			pdf.SetFont("Helvetica", "B", labelFontSize(pw, pl))
			pdf.SetTextColor(0, 0, 0)

			label := fmt.Sprintf("%d. %s", step, p.Crate.Label)
			dims := fmt.Sprintf("%dx%dx%d", p.Crate.Width, p.Crate.Height, p.Crate.Length)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, pz+pl/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if pl > 14 && dimsW < pw-2 {
				pdf.SetFont("Helvetica", "", labelFontSize(pw, pl))
				pdf.SetXY(px+(pw-dimsW)/2, pz+pl/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, truck, scale, offsetX, offsetY, canvasW, canvasH)
	drawCrateLegend(pdf, result, onLayer, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds width and length labels outside the floor rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, truck model.Truck, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d units wide", truck.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	lengthLabel := fmt.Sprintf("%d units long", truck.Length)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	lLabelW := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX-3-lLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(lLabelW, 4, lengthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawCrateLegend renders a compact legend of the crates on this layer.
func drawCrateLegend(pdf *fpdf.Fpdf, result model.PlanResult, onLayer []model.Placement, startY float64) {
	if len(onLayer) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Crates on layer:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, p := range onLayer {
		step := result.Instructions[p.Crate.ID].Step
		col := crateColors[(step-1)%len(crateColors)]
		label := fmt.Sprintf("%d. %s (%dx%dx%d)", step, p.Crate.Label,
			p.Crate.Width, p.Crate.Height, p.Crate.Length)
		if p.TurnedHorizontal {
			label += " H"
		}
		if p.TurnedVertical {
			label += " V"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with the loading sequence.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PlanResult, settings model.StowSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Stow Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	residual := model.CalculateResidual(result.Truck, result.Placements)
	summaryItems := []struct {
		label string
		value string
	}{
		{"Truck", fmt.Sprintf("%s (%d x %d x %d units)", result.Truck.Label,
			result.Truck.Width, result.Truck.Height, result.Truck.Length)},
		{"Crates Loaded", fmt.Sprintf("%d", result.Steps())},
		{"Volume Used", fmt.Sprintf("%d / %d cells", result.VolumeUsed(), result.Truck.Volume())},
		{"Utilization", fmt.Sprintf("%.1f%%", result.Utilization())},
		{"Free Floor Cells", fmt.Sprintf("%d", residual.FreeFloorCells)},
		{"Tail Clearance", fmt.Sprintf("%d units", residual.TailClearance)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Loading Sequence", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{18, 20, 55, 35, 45, 45, 35}
	headers := []string{"Step", "Crate", "Label", "Size", "Position", "Orientation", "Layer"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	ordered := append([]model.Placement(nil), result.Placements...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return result.Instructions[ordered[i].Crate.ID].Step <
			result.Instructions[ordered[j].Crate.ID].Step
	})

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range ordered {
		inst := result.Instructions[p.Crate.ID]
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", inst.Step),
			fmt.Sprintf("%d", p.Crate.ID),
			p.Crate.Label,
			fmt.Sprintf("%dx%dx%d", p.Crate.Width, p.Crate.Height, p.Crate.Length),
			fmt.Sprintf("(%d, %d, %d)", inst.X, inst.Y, inst.Z),
			orientationText(inst),
			fmt.Sprintf("%d", p.Y),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Planner settings
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Planner Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Support Ratio", fmt.Sprintf("%.0f%%", settings.SupportRatio*100)},
		{"Loader Profile", settings.LoaderProfile},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by StowPlan - Truck Loading Planner", "", 0, "C", false, 0, "")
}

func orientationText(inst model.LoadingInstruction) string {
	switch {
	case inst.TurnedHorizontal:
		return "turned horizontal"
	case inst.TurnedVertical:
		return "turned vertical"
	default:
		return "as delivered"
	}
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
