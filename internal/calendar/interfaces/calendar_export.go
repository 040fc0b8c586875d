package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	calendar "talentdesk/internal/calendar/domain"
	talent "talentdesk/internal/talent/domain"
)

// BuildCalendarPDF renders a talent's event calendar as a PDF.
func BuildCalendarPDF(t *talent.Talent, events []calendar.Event) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Event Calendar")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Talent: %s", t.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Events: %d", len(events)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().UTC().Format(time.RFC3339)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(28, 6, "Start", "1", 0, "C", false, 0, "")
	pdf.CellFormat(28, 6, "End", "1", 0, "C", false, 0, "")
	pdf.CellFormat(80, 6, "Title", "1", 0, "C", false, 0, "")
	pdf.CellFormat(28, 6, "Status", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Venue", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 6, "Location", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, event := range events {
		pdf.CellFormat(28, 6, event.StartDate, "1", 0, "C", false, 0, "")
		pdf.CellFormat(28, 6, event.EndDate, "1", 0, "C", false, 0, "")
		pdf.CellFormat(80, 6, event.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 6, string(event.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, event.VenueName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, formatLocation(event), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildCalendarXLSX renders a talent's event calendar as a workbook.
func BuildCalendarXLSX(t *talent.Talent, events []calendar.Event) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	eventsSheet := "events"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(eventsSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Event Calendar")
	_ = f.SetCellValue(summarySheet, "A3", "Talent")
	_ = f.SetCellValue(summarySheet, "B3", t.Name)
	_ = f.SetCellValue(summarySheet, "A4", "Events")
	_ = f.SetCellValue(summarySheet, "B4", len(events))
	_ = f.SetCellValue(summarySheet, "A5", "Generated")
	_ = f.SetCellValue(summarySheet, "B5", time.Now().UTC().Format(time.RFC3339))

	headers := []string{"Start Date", "End Date", "Title", "Status", "Venue", "City", "State", "Country", "Notes"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(eventsSheet, cell, header)
	}
	for i, event := range events {
		row := i + 2
		_ = f.SetCellValue(eventsSheet, fmt.Sprintf("A%d", row), event.StartDate)
		_ = f.SetCellValue(eventsSheet, fmt.Sprintf("B%d", row), event.EndDate)
		_ = f.SetCellValue(eventsSheet, fmt.Sprintf("C%d", row), event.Title)
		_ = f.SetCellValue(eventsSheet, fmt.Sprintf("D%d", row), string(event.Status))
		_ = f.SetCellValue(eventsSheet, fmt.Sprintf("E%d", row), event.VenueName)
		_ = f.SetCellValue(eventsSheet, fmt.Sprintf("F%d", row), event.LocationCity)
		_ = f.SetCellValue(eventsSheet, fmt.Sprintf("G%d", row), event.LocationState)
		_ = f.SetCellValue(eventsSheet, fmt.Sprintf("H%d", row), event.LocationCountry)
		_ = f.SetCellValue(eventsSheet, fmt.Sprintf("I%d", row), event.NotesPublic)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatLocation(event calendar.Event) string {
	switch {
	case event.LocationCity != "" && event.LocationState != "":
		return event.LocationCity + ", " + event.LocationState
	case event.LocationCity != "":
		return event.LocationCity
	default:
		return event.LocationState
	}
}
