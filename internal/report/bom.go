package report

import (
	"github.com/xuri/excelize/v2"
)

// bomSheetFor buckets a profile report onto a severity sheet: valid
// profiles go to "Valid", profiles with only warnings to "Warnings",
// and anything with an error to "Errors".
func bomSheetFor(r ProfileReport) string {
	switch {
	case len(r.Result.Errors) > 0:
		return "Errors"
	case len(r.Result.Warnings) > 0:
		return "Warnings"
	default:
		return "Valid"
	}
}

// ExportBOM writes a bill-of-materials workbook: one row per profile,
// bucketed onto a sheet named for its validation severity.
func ExportBOM(path string, reports []ProfileReport) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetOrder := []string{"Valid", "Warnings", "Errors"}
	rowCursor := map[string]int{}
	for _, name := range sheetOrder {
		idx, err := f.NewSheet(name)
		if err != nil {
			return err
		}
		if name == sheetOrder[0] {
			f.SetActiveSheet(idx)
		}
		writeBOMHeader(f, name)
		rowCursor[name] = 2
	}
	f.DeleteSheet("Sheet1")

	for _, r := range reports {
		sheet := bomSheetFor(r)
		row := rowCursor[sheet]
		writeBOMRow(f, sheet, row, r)
		rowCursor[sheet] = row + 1
	}

	return f.SaveAs(path)
}

func writeBOMHeader(f *excelize.File, sheet string) {
	headers := []string{"Part ID", "Designation", "Material", "Length (mm)", "Weight (kg)", "Holes", "Cuts", "Errors", "Warnings"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
}

func writeBOMRow(f *excelize.File, sheet string, row int, r ProfileReport) {
	h := r.Profile.Header
	values := []any{
		h.PartID,
		h.Designation,
		h.SteelGrade,
		h.Length,
		h.Weight,
		len(r.Profile.Holes),
		len(r.Profile.Cuts) + len(r.Profile.Contours) + len(r.Profile.Internal),
		len(r.Result.Errors),
		len(r.Result.Warnings),
	}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

// WeightTotal sums the header weight across every profile, ignoring
// profiles whose validation failed.
func WeightTotal(reports []ProfileReport) float64 {
	var total float64
	for _, r := range reports {
		if r.Result.IsValid {
			total += r.Profile.Header.Weight
		}
	}
	return total
}
