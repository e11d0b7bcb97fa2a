package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// GuestExporter renders a guest report in one of the supported formats.
type GuestExporter interface {
	Export(format string, report GuestReport) ([]byte, string, string, error)
}

type guestExporter struct{}

func NewGuestExporter() GuestExporter {
	return &guestExporter{}
}

// Export returns the file bytes, a filename and a content type.
func (e *guestExporter) Export(format string, report GuestReport) ([]byte, string, string, error) {
	timestamp := report.GeneratedAt.UTC().Format("20060102_150405")

	switch format {
	case FormatExcel:
		data, err := e.exportExcel(report)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("guest_list_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportCSV(report)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("guest_list_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportPDF(report)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("guest_list_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for guest list: %s", format)
	}
}

func (e *guestExporter) exportCSV(report GuestReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(guestHeaders); err != nil {
		return nil, err
	}
	for _, row := range report.Rows {
		if err := writer.Write(row.values()); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *guestExporter) exportExcel(report GuestReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Guests"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, header := range guestHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, header)
	}

	for i, row := range report.Rows {
		r := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", r), row.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", r), row.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", r), row.Phone)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", r), row.Attending)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", r), row.NumberOfGuests)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", r), row.DietaryRestrictions)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", r), row.Message)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", r), row.ConfirmationCode)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", r), row.SubmittedAt.UTC().Format("2006-01-02 15:04:05"))
	}

	total := len(report.Rows) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", total), "Attending")
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", total), report.TotalAttending)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *guestExporter) exportPDF(report GuestReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(report.PartyTitle+" - Guest List"))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 10, fmt.Sprintf("%d RSVPs, %d guests attending. Generated %s UTC",
		len(report.Rows), report.TotalAttending, report.GeneratedAt.UTC().Format("2006-01-02 15:04")))
	pdf.Ln(14)

	widths := []float64{35, 45, 25, 18, 14, 40, 45, 25, 30}
	pdf.SetFont("Arial", "B", 9)
	for i, h := range guestHeaders {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range report.Rows {
		for i, v := range row.values() {
			pdf.CellFormat(widths[i], 6, tr(truncate(v, widths[i])), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// truncate keeps free text inside its cell at 8pt.
func truncate(s string, width float64) string {
	limit := int(width / 1.6)
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return string(r[:limit-3]) + "..."
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
