// Package schema defines the sheet layout descriptors for each format
// generation of the complaint sheet.
//
// The sheet layout has drifted over time: metadata moved from label-scanned
// rows to fixed cells, the header sentinel text changed, and the accepted
// rating range narrowed. Each drift is captured as a [Generation] value so
// the pipeline runs against a descriptor instead of hard-coded branches.
// Current is the canonical generation; Legacy documents the superseded
// layout and remains selectable for old sheet snapshots.
package schema

// FieldKind classifies how a complaint field is validated.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldRating
)

// FieldSpec defines one named complaint field in presentation order.
// The Name values and their order are part of the external contract:
// the downstream templating step consumes them positionally.
type FieldSpec struct {
	Name     string    // Field identifier, e.g. "iWouldLikeTo"
	Column   int       // Zero-based column in the data region
	Kind     FieldKind // Validation family
	Required bool      // Row is invalid without a non-blank value
	MinLen   int       // Minimum length for text fields
	MaxLen   int       // Maximum length for text fields
}

// CellRef addresses a single cell by zero-based row and column.
type CellRef struct {
	Row int
	Col int
}

// MetadataStrategy selects how sheet-level metadata is located.
type MetadataStrategy int

const (
	// MetadataFixedCells reads metadata from fixed cell coordinates.
	MetadataFixedCells MetadataStrategy = iota
	// MetadataLabelScan scans the first ScanRows rows for label/value pairs.
	MetadataLabelScan
)

// Generation describes one format generation of the complaint sheet.
type Generation struct {
	Name string

	// Metadata region.
	Strategy       MetadataStrategy
	CountryCell    CellRef // Strategy == MetadataFixedCells
	StoreLinkCell  CellRef
	DailyLimitCell CellRef
	ScanRows       int // Strategy == MetadataLabelScan

	// Data region.
	SentinelText string // Exact first-cell text marking the header row
	SentinelRow  int    // Fixed row index of the sentinel, -1 to scan
	MinRowCells  int    // Rows with fewer populated cells are rejected

	// Field schema and rating bounds for this generation.
	Fields    []FieldSpec
	RatingMin int
	RatingMax int

	// Daily submission limit bounds for the metadata cell. HasDailyLimit is
	// false for generations whose metadata region carries no such cell; the
	// pipeline then neither requires nor validates it.
	HasDailyLimit bool
	DailyLimitMin int
	DailyLimitMax int
}

// ComplaintValues holds one row's named field values. Optional fields are
// nil when the cell was blank or absent, preserving the optional/required
// distinction for validation and for JSON output (null, not "").
type ComplaintValues struct {
	IWouldLikeTo     string
	TellUsMore       string
	ForWhatReason    string
	DescribeTheIssue string
	AppStoreReview   *string
	AppStoreRating   *string
}

// Current is the canonical generation: fixed metadata cells B1-B3, the
// "Report a scam or fraud" sentinel at row index 7, six fields, 1-3 rating.
var Current = Generation{
	Name:           "current",
	Strategy:       MetadataFixedCells,
	CountryCell:    CellRef{Row: 0, Col: 1},
	StoreLinkCell:  CellRef{Row: 1, Col: 1},
	DailyLimitCell: CellRef{Row: 2, Col: 1},
	SentinelText:   "Report a scam or fraud",
	SentinelRow:    7,
	MinRowCells:    4,
	Fields: []FieldSpec{
		{Name: "iWouldLikeTo", Column: 0, Kind: FieldText, Required: true, MinLen: 1, MaxLen: 200},
		{Name: "tellUsMore", Column: 1, Kind: FieldText, Required: true, MinLen: 1, MaxLen: 200},
		{Name: "forWhatReason", Column: 2, Kind: FieldText, Required: true, MinLen: 1, MaxLen: 200},
		{Name: "describeTheIssue", Column: 3, Kind: FieldText, Required: true, MinLen: 10, MaxLen: 2000},
		{Name: "appStoreReview", Column: 4, Kind: FieldText, Required: false, MinLen: 10, MaxLen: 1000},
		{Name: "appStoreRating", Column: 5, Kind: FieldRating, Required: false},
	},
	RatingMin:     1,
	RatingMax:     3,
	HasDailyLimit: true,
	DailyLimitMin: 1,
	DailyLimitMax: 50,
}

// Legacy is the superseded generation: label-scanned metadata in the first
// ten rows, a "Level 1" sentinel found by scanning, and a 1-5 rating range.
// Kept for parsing historical sheet snapshots.
var Legacy = Generation{
	Name:         "legacy",
	Strategy:     MetadataLabelScan,
	ScanRows:     10,
	SentinelText: "Level 1",
	SentinelRow:  -1,
	MinRowCells:  4,
	Fields: []FieldSpec{
		{Name: "level1", Column: 0, Kind: FieldText, Required: true, MinLen: 1, MaxLen: 200},
		{Name: "level2", Column: 1, Kind: FieldText, Required: true, MinLen: 1, MaxLen: 200},
		{Name: "level3", Column: 2, Kind: FieldText, Required: true, MinLen: 1, MaxLen: 200},
		{Name: "complaintText", Column: 3, Kind: FieldText, Required: true, MinLen: 10, MaxLen: 2000},
		{Name: "appStoreReview", Column: 4, Kind: FieldText, Required: false, MinLen: 10, MaxLen: 1000},
		{Name: "appStoreRating", Column: 5, Kind: FieldRating, Required: false},
	},
	RatingMin: 1,
	RatingMax: 5,
}

// ByName returns the generation with the given name, defaulting to Current
// for unknown names so a stale config value cannot disable parsing.
func ByName(name string) Generation {
	if name == Legacy.Name {
		return Legacy
	}
	return Current
}

// LabelCountry, LabelStoreLink and LabelAppName are the column-A labels
// recognized by the label-scan metadata strategy.
const (
	LabelCountry   = "Country"
	LabelStoreLink = "App Store Link"
	LabelAppName   = "App Name"
)
