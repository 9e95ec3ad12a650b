package parser

// ValueItem is one named field of a complaint in presentation order.
// The name set and ordering are part of the external contract: the
// downstream templating step substitutes {name} placeholders positionally.
// Absent optional values are nil and render as JSON null.
type ValueItem struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Complaint is one validated, schema-conformant sheet row.
type Complaint struct {
	ID           int         `json:"id"`           // Ephemeral, reassigned each run in row order
	Instructions []string    `json:"instructions"` // Submission steps with {placeholder} variables
	Steps        []ValueItem `json:"steps"`        // Field values in contract order
}

// Metadata is the sheet-level configuration extracted from the metadata
// region, plus derived app identity and run bookkeeping.
type Metadata struct {
	Country             string `json:"country"`
	CountryName         string `json:"countryName"`
	AppStoreLink        string `json:"appStoreLink"`
	AppName             string `json:"appName"`
	AppID               string `json:"appId"`
	StoreRegion         string `json:"storeRegion"`
	MaxComplaintsPerDay int    `json:"maxComplaintsPerDay"`
	TotalReports        int    `json:"totalReports"`
	DailyLimitValid     bool   `json:"dailyLimitValid"`
	DailyLimitMessage   string `json:"dailyLimitMessage"`
	LastUpdated         string `json:"lastUpdated"` // RFC 3339 UTC, excluded from idempotence
}

// ParsedData is the success result surfaced across the core's boundary.
// The HTTP layer JSON-encodes it verbatim.
type ParsedData struct {
	Metadata   Metadata    `json:"metadata"`
	Complaints []Complaint `json:"complaints"`
}
