// Package export writes list views to spreadsheets.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	maxSheetName = 31
	maxColWidth  = 60
)

// Sheet is one table: a header row followed by data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// WriteXLSX writes sheets as a workbook to w.
func WriteXLSX(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return errors.New("export: no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	used := map[string]bool{}
	for i, sh := range sheets {
		name := sheetName(sh.Name, i, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, sh, headerStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, sh Sheet, headerStyle int) error {
	widths := make([]int, len(sh.Headers))
	for i, h := range sh.Headers {
		widths[i] = utf8.RuneCountInString(h)
	}

	header := make([]interface{}, len(sh.Headers))
	for i, h := range sh.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if len(sh.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(sh.Headers), 1)
		if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for r, row := range sh.Rows {
		cells := make([]interface{}, len(row))
		for c, v := range row {
			cells[c] = v
			if c < len(widths) {
				widths[c] = max(widths[c], utf8.RuneCountInString(v))
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(name, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(name, col, col, float64(min(w+2, maxColWidth))); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

var sheetNameCleaner = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

// sheetName makes name valid and unique within the workbook.
func sheetName(name string, index int, used map[string]bool) string {
	name = strings.TrimSpace(sheetNameCleaner.Replace(name))
	if name == "" {
		name = fmt.Sprintf("Sheet%d", index+1)
	}
	if utf8.RuneCountInString(name) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	base := name
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" %d", n)
		r := []rune(base)
		if len(r)+len(suffix) > maxSheetName {
			r = r[:maxSheetName-len(suffix)]
		}
		name = string(r) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}
