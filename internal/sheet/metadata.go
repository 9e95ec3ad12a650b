package sheet

import (
	"math"
	"strconv"
	"strings"

	"github.com/reportline/sheetparser/internal/schema"
)

// MetadataCells holds the raw metadata values lifted from the grid.
// A nil field means the designated cell (or labeled row) was absent or
// blank. Values stay raw here; validation happens downstream so every
// defect can be reported with the original cell content.
type MetadataCells struct {
	Country    *string
	StoreLink  *string
	DailyLimit *string
	AppName    *string // Label-scan generations only
}

// ExtractMetadata reads the metadata region using the strategy of the
// active generation: fixed cell coordinates for current sheets, a label
// scan over the first N rows for legacy snapshots.
func ExtractMetadata(g Grid, gen schema.Generation) MetadataCells {
	if gen.Strategy == schema.MetadataLabelScan {
		return extractByLabels(g, gen.ScanRows)
	}

	return MetadataCells{
		Country:    g.cell(gen.CountryCell),
		StoreLink:  g.cell(gen.StoreLinkCell),
		DailyLimit: g.cell(gen.DailyLimitCell),
	}
}

func extractByLabels(g Grid, scanRows int) MetadataCells {
	var md MetadataCells

	n := len(g)
	if scanRows < n {
		n = scanRows
	}

	for i := 0; i < n; i++ {
		row := g[i]
		if len(row) < 2 {
			continue
		}
		value := strings.TrimSpace(row[1])
		if value == "" {
			continue
		}
		v := value
		switch strings.TrimSpace(row[0]) {
		case schema.LabelCountry:
			md.Country = &v
		case schema.LabelStoreLink:
			md.StoreLink = &v
		case schema.LabelAppName:
			md.AppName = &v
		}
	}

	return md
}

// DailyLimitValue coerces the raw daily-limit cell to an integer within
// [min, max]. The second return is false when the cell is absent, not a
// whole number, or out of range; the field is then treated as absent.
func DailyLimitValue(raw *string, min, max int) (int, bool) {
	if raw == nil {
		return 0, false
	}
	num, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil || num != math.Trunc(num) {
		return 0, false
	}
	n := int(num)
	if n < min || n > max {
		return 0, false
	}
	return n, true
}
