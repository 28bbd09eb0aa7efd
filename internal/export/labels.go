package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/planverk/archdraft/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each element label's QR code, for
// tagging building elements on site.
type LabelInfo struct {
	ElementID string  `json:"id"`
	Element   string  `json:"element"` // "wall", "door", "window", "stairs", "roof"
	Label     string  `json:"label"`
	Width     float64 `json:"width_mm,omitempty"`
	Height    float64 `json:"height_mm,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
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

// CollectLabelInfos extracts one label per building element: walls and each
// of their openings, stair flights, and roofs.
func CollectLabelInfos(project model.Project) []LabelInfo {
	var labels []LabelInfo
	for _, wall := range project.Walls {
		labels = append(labels, LabelInfo{
			ElementID: wall.ID,
			Element:   "wall",
			Label:     wall.Label,
			Width:     wall.Length(),
			Height:    wall.Height,
		})
		for _, op := range wall.Openings {
			labels = append(labels, LabelInfo{
				ElementID: op.ID,
				Element:   string(op.Kind),
				Label:     fmt.Sprintf("%s @ %.2f", wall.Label, op.Position),
				Width:     op.Width,
				Height:    op.Height,
			})
		}
	}
	for _, s := range project.Stairs {
		labels = append(labels, LabelInfo{
			ElementID: s.ID,
			Element:   "stairs",
			Label:     s.Label,
			Width:     s.TotalRun,
			Height:    s.TotalRise,
		})
	}
	for _, r := range project.Roofs {
		labels = append(labels, LabelInfo{
			ElementID: r.ID,
			Element:   "roof",
			Label:     r.Label,
		})
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded labels for every building element.
// Each label contains the element name and dimensions plus a QR code encoding
// element metadata as JSON. Labels are laid out on a standard label sheet
// format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, project model.Project) error {
	labels := CollectLabelInfos(project)
	if len(labels) == 0 {
		return fmt.Errorf("no elements to generate labels for")
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
			return fmt.Errorf("failed to render label for %q: %w", label.ElementID, err)
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

	imgName := fmt.Sprintf("qr_%s", info.ElementID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	// Truncate label if too long
	label := info.Label
	if label == "" {
		label = info.ElementID
	}
	if pdf.GetStringWidth(label) > textW {
		for len(label) > 0 && pdf.GetStringWidth(label+"...") > textW {
			label = label[:len(label)-1]
		}
		label += "..."
	}
	pdf.CellFormat(textW, 4.5, label, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, info.Element, "", 1, "L", false, 0, "")

	if info.Width > 0 || info.Height > 0 {
		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(100, 100, 100)
		pdf.SetXY(textX, y+labelPadding+9)
		dims := fmt.Sprintf("%.0f x %.0f mm", info.Width, info.Height)
		pdf.CellFormat(textW, 3, dims, "", 1, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
