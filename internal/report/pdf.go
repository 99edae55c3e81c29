// Package report renders pipeline results to the file formats a
// fabrication shop consumes: per-profile validation/cut-list PDFs, a
// bill-of-materials workbook, DXF contour dumps, and QR piece-mark
// labels.
package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/dstvcut/internal/dstv/parser"
	"github.com/piwi3910/dstvcut/internal/dstv/validate"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
)

// ProfileReport bundles one profile's parsed header with its validation
// outcome, the input to ExportValidationPDF.
type ProfileReport struct {
	Profile parser.RawProfile
	Result  validate.Result
}

// ExportValidationPDF writes a validation + cut-list report covering
// every profile, one page each, followed by no separate summary page —
// unlike the teacher's sheet-layout export there is no 2D drawing to
// render, so each page is header fields plus hole/cut tables plus the
// error/warning list.
func ExportValidationPDF(path string, reports []ProfileReport) error {
	if len(reports) == 0 {
		return fmt.Errorf("no profiles to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)

	for _, r := range reports {
		pdf.AddPage()
		renderProfilePage(pdf, r)
	}

	return pdf.OutputFileAndClose(path)
}

func renderProfilePage(pdf *fpdf.Fpdf, r ProfileReport) {
	h := r.Profile.Header

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s — %s", h.PartID, h.Designation)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 8, title, "", 0, "L", false, 0, "")

	y := marginTop + 12
	pdf.SetFont("Helvetica", "", 10)
	fields := []struct{ label, value string }{
		{"Order", h.OrderNumber},
		{"Item", h.ItemNumber},
		{"Steel grade", h.SteelGrade},
		{"Code", h.Code},
		{"Length", fmt.Sprintf("%.1f mm", h.Length)},
		{"Width", fmt.Sprintf("%.1f mm", h.Width)},
		{"Height", fmt.Sprintf("%.1f mm", h.Height)},
		{"Weight", fmt.Sprintf("%.2f kg", h.Weight)},
	}
	for _, f := range fields {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(35, 5, f.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 5, f.value, "", 0, "L", false, 0, "")
		y += 5.5
	}
	y += 4

	if len(r.Profile.Holes) > 0 {
		y = renderHoleTable(pdf, r.Profile, y)
		y += 6
	}
	if len(r.Profile.Cuts) > 0 {
		y = renderCutTable(pdf, r.Profile, y)
		y += 6
	}
	renderIssues(pdf, r.Result, y)
}

func renderHoleTable(pdf *fpdf.Fpdf, p parser.RawProfile, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(60, 6, "Holes", "", 0, "L", false, 0, "")
	y += 7

	colWidths := []float64{15, 25, 25, 25, 25, 25}
	headers := []string{"#", "Face", "X", "Y", "Dia", "Depth"}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, head := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, head, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	for i, hole := range p.Holes {
		depth := fmt.Sprintf("%.1f", hole.Depth)
		if hole.Depth < 0 {
			depth = "through"
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			string(hole.Face),
			fmt.Sprintf("%.1f", hole.X),
			fmt.Sprintf("%.1f", hole.Y),
			fmt.Sprintf("%.1f", hole.Diameter),
			depth,
		}
		x = marginLeft
		fill := i%2 == 0
		if fill {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 5.5, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 5.5
	}
	return y
}

func renderCutTable(pdf *fpdf.Fpdf, p parser.RawProfile, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(60, 6, "Cuts", "", 0, "L", false, 0, "")
	y += 7

	colWidths := []float64{15, 25, 30, 30}
	headers := []string{"#", "Face", "Type", "Points"}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, head := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, head, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	for i, cut := range p.Cuts {
		row := []string{
			fmt.Sprintf("%d", i+1),
			string(cut.Face),
			string(cut.Subtype),
			fmt.Sprintf("%d", len(cut.Contour)),
		}
		x = marginLeft
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 5.5, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 5.5
	}
	return y
}

func renderIssues(pdf *fpdf.Fpdf, res validate.Result, y float64) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	status := "VALID"
	if !res.IsValid {
		status = "INVALID"
	}
	pdf.CellFormat(80, 6, fmt.Sprintf("Validation: %s", status), "", 0, "L", false, 0, "")
	y += 8

	if len(res.Errors) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(180, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(60, 5, "Errors", "", 0, "L", false, 0, "")
		y += 5
		pdf.SetFont("Helvetica", "", 8)
		for _, e := range res.Errors {
			pdf.SetXY(marginLeft+3, y)
			pdf.CellFormat(pageWidth-marginLeft-marginRight-3, 4.5, "- "+e, "", 0, "L", false, 0, "")
			y += 4.5
		}
		pdf.SetTextColor(0, 0, 0)
		y += 3
	}
	if len(res.Warnings) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(180, 120, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(60, 5, "Warnings", "", 0, "L", false, 0, "")
		y += 5
		pdf.SetFont("Helvetica", "", 8)
		for _, w := range res.Warnings {
			pdf.SetXY(marginLeft+3, y)
			pdf.CellFormat(pageWidth-marginLeft-marginRight-3, 4.5, "- "+w, "", 0, "L", false, 0, "")
			y += 4.5
		}
		pdf.SetTextColor(0, 0, 0)
	}
}
