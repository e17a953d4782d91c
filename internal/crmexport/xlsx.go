// Package crmexport writes CRM leads to spreadsheets.
package crmexport

import (
	"fmt"
	"io"
	"time"

	"github.com/RoyKeane94/toad/internal/entities"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding exported leads.
const SheetName = "Leads"

// Headers are the column titles of the export.
var Headers = []string{"ID", "Name", "Email", "Company", "Kind", "Status", "Follow-ups", "Last contacted", "Notes", "Created"}

var columnWidths = []float64{8, 24, 32, 28, 10, 14, 12, 20, 40, 20}

// WriteLeads renders leads as an XLSX workbook into w.
func WriteLeads(w io.Writer, leads []entities.Lead) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, h := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, columnWidths[i]); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, l := range leads {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]interface{}{
			l.ID, l.Name, l.Email, l.CompanyName, string(l.Kind), string(l.Status),
			l.FollowUps, formatTime(l.LastContactedAt), l.Notes, l.CreatedAt.UTC().Format(time.DateTime),
		}); err != nil {
			return fmt.Errorf("write lead %d: %w", l.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.DateTime)
}
