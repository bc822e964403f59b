package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
	"github.com/iedc-carmel/club-management-backend/internal/event"
)

// Supported export formats.
const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
)

// Exporter renders a registration list for download.
type Exporter interface {
	ExportRegistrations(format string, ev *event.Event, regs []event.Registration) ([]byte, string, string, error)
}

type registrationExporter struct{}

func NewExporter() Exporter {
	return &registrationExporter{}
}

var registrationHeaders = []string{"id", "full_name", "email", "college", "department", "semester", "mobile", "status", "registered_at"}

func registrationRecord(r event.Registration) []string {
	return []string{
		r.ID,
		r.FullName,
		r.Email,
		r.College,
		r.Department,
		r.Semester,
		r.MobileNumber,
		r.Status,
		r.RegisteredAt.Format("2006-01-02 15:04:05"),
	}
}

func baseFilename(ev *event.Event) string {
	name := strings.ToLower(ev.Name)
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, name)
	return name + "_registrations"
}

func (e *registrationExporter) ExportRegistrations(format string, ev *event.Event, regs []event.Registration) ([]byte, string, string, error) {
	switch format {
	case FormatCSV, "":
		return e.exportCSV(ev, regs)
	case FormatExcel:
		return e.exportExcel(ev, regs)
	case FormatPDF:
		return e.exportPDF(ev, regs)
	}
	return nil, "", "", apperr.New(apperr.Validation, fmt.Sprintf("unknown export format %q", format))
}

func (e *registrationExporter) exportCSV(ev *event.Event, regs []event.Registration) ([]byte, string, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(registrationHeaders); err != nil {
		return nil, "", "", err
	}
	for _, r := range regs {
		if err := w.Write(registrationRecord(r)); err != nil {
			return nil, "", "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), baseFilename(ev) + ".csv", "text/csv", nil
}

func (e *registrationExporter) exportExcel(ev *event.Event, regs []event.Registration) ([]byte, string, string, error) {
	f := excelize.NewFile()
	sheet := "Registrations"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", "", err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, h := range registrationHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", "", err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range regs {
		record := registrationRecord(r)
		for cIdx, value := range record {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			if err != nil {
				return nil, "", "", err
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), baseFilename(ev) + ".xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

func (e *registrationExporter) exportPDF(ev *event.Event, regs []event.Registration) ([]byte, string, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Registrations: %s", ev.Name))
	pdf.Ln(10)

	headers := []string{"Name", "Email", "College", "Dept", "Sem", "Mobile", "Status", "Registered At"}
	widths := []float64{45, 55, 40, 25, 15, 30, 25, 40}

	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range regs {
		pdf.CellFormat(widths[0], 6, r.FullName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.College, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.Department, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.Semester, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.MobileNumber, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[7], 6, r.RegisteredAt.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), baseFilename(ev) + ".pdf", "application/pdf", nil
}
