package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"es-server/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
)

const (
	MimeCSV   = "text/csv; charset=utf-8"
	MimeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimePDF   = "application/pdf"
)

const SHEET_NAME = "Events"

var ErrUnsupportedFormat = errors.New("unsupported export format")

// EventExporter renders the event table in a downloadable format.
type EventExporter interface {
	Export(format, stem string, rows []models.EventRow) ([]byte, string, string, error)
}

// ValidateFormat accepts the formats Export understands, including "".
func ValidateFormat(format string) error {
	switch format {
	case "", FormatCSV, FormatExcel, FormatPDF:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

type eventExporter struct{}

func NewEventExporter() EventExporter {
	return &eventExporter{}
}

// Export returns the file bytes, its name (stem plus extension) and its
// content type. An empty format means CSV.
func (e *eventExporter) Export(format, stem string, rows []models.EventRow) ([]byte, string, string, error) {
	switch format {
	case "", FormatCSV:
		data, err := e.exportCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, stem + ".csv", MimeCSV, nil

	case FormatExcel:
		data, err := e.exportExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, stem + ".xlsx", MimeExcel, nil

	case FormatPDF:
		data, err := e.exportPDF(stem, rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, stem + ".pdf", MimePDF, nil

	default:
		return nil, "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (e *eventExporter) exportCSV(rows []models.EventRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(models.EventRowHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := writer.Write(r.Values()); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *eventExporter) exportExcel(rows []models.EventRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SHEET_NAME)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(SHEET_NAME, "A1", &models.EventRowHeader); err != nil {
		return nil, err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := r.Values()
		if err := f.SetSheetRow(SHEET_NAME, cell, &values); err != nil {
			return nil, err
		}
		// Attendance is numeric in the sheet.
		attendanceCell, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := f.SetCellInt(SHEET_NAME, attendanceCell, r.PredictedAttendance); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var pdfColumnWidths = []float64{52, 20, 22, 36, 26, 26, 26, 18, 18, 18, 15}

func (e *eventExporter) exportPDF(title string, rows []models.EventRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(6, 10, 6)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, tr(title))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 7)
	for i, h := range models.EventRowHeader {
		pdf.CellFormat(pdfColumnWidths[i], 7, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	for _, r := range rows {
		for i, v := range r.Values() {
			align := "L"
			if i == 1 || i >= 7 && i <= 9 {
				align = "R"
			}
			pdf.CellFormat(pdfColumnWidths[i], 6, tr(truncate(pdf, v, pdfColumnWidths[i]-1)), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// truncate shortens s until it fits in width at the current font.
func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
