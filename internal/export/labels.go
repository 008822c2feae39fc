package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/StowPlan/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each crate label's QR code.
type LabelInfo struct {
	Step             int    `json:"step"`
	CrateID          int    `json:"crate_id"`
	CrateLabel       string `json:"label"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Length           int    `json:"length"`
	TruckLabel       string `json:"truck"`
	X                int    `json:"x"`
	Y                int    `json:"y"`
	Z                int    `json:"z"`
	TurnedHorizontal bool   `json:"turned_horizontal"`
	TurnedVertical   bool   `json:"turned_vertical"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels for all crates in a plan,
// ordered by loading step. Each label carries the crate name, size, target
// position and a QR code encoding the full instruction as JSON. Labels are
// laid out on a standard label sheet (Avery 5160 / 3 columns x 10 rows on
// US Letter).
func ExportLabels(path string, result model.PlanResult) error {
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return fmt.Errorf("no crates placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for crate %d: %w", label.CrateID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%d", info.CrateID, info.Step)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Step and crate label (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	crateLabel := fmt.Sprintf("%d. %s", info.Step, info.CrateLabel)
	if pdf.GetStringWidth(crateLabel) > textW {
		for len(crateLabel) > 0 && pdf.GetStringWidth(crateLabel+"...") > textW {
			crateLabel = crateLabel[:len(crateLabel)-1]
		}
		crateLabel += "..."
	}
	pdf.CellFormat(textW, 4.5, crateLabel, "", 1, "L", false, 0, "")

	// Size
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%d x %d x %d units", info.Width, info.Height, info.Length)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// Truck and target position
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	posInfo := fmt.Sprintf("%s @ (%d, %d, %d)", info.TruckLabel, info.X, info.Y, info.Z)
	pdf.CellFormat(textW, 3, posInfo, "", 1, "L", false, 0, "")

	// Orientation indicator
	if info.TurnedHorizontal || info.TurnedVertical {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		text := "Turn horizontal"
		if info.TurnedVertical {
			text = "Turn vertical"
		}
		pdf.CellFormat(textW, 3, text, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts per-crate label data from a plan, sorted by
// loading step, for use in testing or alternative export formats.
func CollectLabelInfos(result model.PlanResult) []LabelInfo {
	var labels []LabelInfo
	for _, p := range result.Placements {
		inst := result.Instructions[p.Crate.ID]
		labels = append(labels, LabelInfo{
			Step:             inst.Step,
			CrateID:          p.Crate.ID,
			CrateLabel:       p.Crate.Label,
			Width:            p.Crate.Width,
			Height:           p.Crate.Height,
			Length:           p.Crate.Length,
			TruckLabel:       result.Truck.Label,
			X:                inst.X,
			Y:                inst.Y,
			Z:                inst.Z,
			TurnedHorizontal: inst.TurnedHorizontal,
			TurnedVertical:   inst.TurnedVertical,
		})
	}
	sort.SliceStable(labels, func(i, j int) bool { return labels[i].Step < labels[j].Step })
	return labels
}
