package reprint

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet layout: first sheet, one header row, then one group per row
// with columns name | first_printing | reprints (comma separated ids).
const (
	xlsxColName     = 0
	xlsxColFirst    = 1
	xlsxColReprints = 2
	xlsxHeaderRows  = 1
)

func loadXLSX(path string) ([]Group, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open reprint workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("reprint workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read reprint rows: %w", err)
	}

	var groups []Group
	for i := xlsxHeaderRows; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}

		g := Group{
			Name:          cell(row, xlsxColName),
			FirstPrinting: PrintingRef{ID: cell(row, xlsxColFirst)},
			Reprints:      []PrintingRef{},
		}
		for _, id := range strings.Split(cell(row, xlsxColReprints), ",") {
			if id = strings.TrimSpace(id); id != "" {
				g.Reprints = append(g.Reprints, PrintingRef{ID: id})
			}
		}
		groups = append(groups, g)
	}

	return groups, nil
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
