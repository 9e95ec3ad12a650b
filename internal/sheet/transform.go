package sheet

import (
	"fmt"
	"strings"

	"github.com/reportline/sheetparser/internal/schema"
	"github.com/reportline/sheetparser/internal/validate"
)

// DraftComplaint is one data row mapped to named fields, before complaint
// validation. Ids are ephemeral: reassigned 1..N in row order on every run.
type DraftComplaint struct {
	ID       int
	SheetRow int // 1-based row number in the sheet, for error context
	Values   schema.ComplaintValues
}

// FindDataStart locates the header sentinel row and returns the index of
// the first data row after it.
//
// A missing sentinel is a fatal precondition failure, not a per-record
// defect: the returned error aborts the whole pipeline instead of joining
// the accumulated validation errors.
func FindDataStart(g Grid, gen schema.Generation) (int, error) {
	if gen.SentinelRow >= 0 {
		if len(g) <= gen.SentinelRow {
			return 0, fmt.Errorf("grid has %d rows, header row expected at index %d", len(g), gen.SentinelRow)
		}
		row := g[gen.SentinelRow]
		if len(row) == 0 || strings.TrimSpace(row[0]) != gen.SentinelText {
			return 0, fmt.Errorf("header row %d does not start with %q", gen.SentinelRow, gen.SentinelText)
		}
		return gen.SentinelRow + 1, nil
	}

	for i, row := range g {
		if len(row) > 0 && strings.TrimSpace(row[0]) == gen.SentinelText {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("could not find data header row %q", gen.SentinelText)
}

// ExtractRows walks the data region and maps each populated row into a
// DraftComplaint.
//
// Rows with a blank or absent first cell are end-of-data padding: they
// produce neither a record nor an error. A populated row with fewer than
// MinRowCells cells produces exactly one ValidationError tagged with its
// 1-based row number and no record; no partial extraction is attempted.
func ExtractRows(g Grid, start int, gen schema.Generation) ([]DraftComplaint, []validate.ValidationError) {
	var (
		drafts []DraftComplaint
		errs   []validate.ValidationError
		nextID = 1
	)

	for i := start; i < len(g); i++ {
		row := g[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		sheetRow := i + 1
		if len(row) < gen.MinRowCells {
			errs = append(errs, validate.ValidationError{
				Field: fmt.Sprintf("row_%d", sheetRow),
				Message: fmt.Sprintf("Row has only %d columns, at least %d are required (Google Sheet Row %d)",
					len(row), gen.MinRowCells, sheetRow),
				Value: strings.Join(row, " | "),
			})
			continue
		}

		drafts = append(drafts, DraftComplaint{
			ID:       nextID,
			SheetRow: sheetRow,
			Values: schema.ComplaintValues{
				IWouldLikeTo:     strings.TrimSpace(row[0]),
				TellUsMore:       strings.TrimSpace(row[1]),
				ForWhatReason:    strings.TrimSpace(row[2]),
				DescribeTheIssue: strings.TrimSpace(row[3]),
				AppStoreReview:   optionalCell(row, 4),
				AppStoreRating:   optionalCell(row, 5),
			},
		})
		nextID++
	}

	return drafts, errs
}

// optionalCell returns the trimmed cell at col, or nil when the cell is
// absent or blank. Optional fields stay nil rather than "" so downstream
// JSON renders null and validation can skip them.
func optionalCell(row []string, col int) *string {
	if col >= len(row) {
		return nil
	}
	v := strings.TrimSpace(row[col])
	if v == "" {
		return nil
	}
	return &v
}
