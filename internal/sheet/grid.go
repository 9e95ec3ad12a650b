// Package sheet decodes a published spreadsheet export into a cell grid and
// extracts the metadata region and the complaint data region from it.
//
// The grid is the source of truth for everything downstream: an ordered
// sequence of rows, each an ordered sequence of scalar cell values.
// It is produced once per parse run and never mutated.
package sheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/reportline/sheetparser/internal/schema"
)

// Grid holds the decoded cell data. Trailing absent cells are simply not
// present in a row; rows may have different lengths.
type Grid [][]string

// Decode parses an xlsx payload and returns the first worksheet as a Grid.
func Decode(payload []byte) (Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	return Grid(rows), nil
}

// cell returns the trimmed value at ref, or nil when the cell is out of
// range or blank. Blank and absent cells are equivalent downstream.
func (g Grid) cell(ref schema.CellRef) *string {
	if ref.Row < 0 || ref.Row >= len(g) {
		return nil
	}
	row := g[ref.Row]
	if ref.Col < 0 || ref.Col >= len(row) {
		return nil
	}
	v := strings.TrimSpace(row[ref.Col])
	if v == "" {
		return nil
	}
	return &v
}
