package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/reportline/sheetparser/internal/schema"
)

const testStoreLink = "https://apps.apple.com/us/app/demo-virus-scanner/id123456789"

func complaintValues() schema.ComplaintValues {
	return schema.ComplaintValues{
		IWouldLikeTo:     "Report a scam or fraud",
		TellUsMore:       "Report suspicious activity",
		ForWhatReason:    "App impersonates another service",
		DescribeTheIssue: "The app pretends to scan for viruses but only shows fake alerts.",
	}
}

// buildWorkbook renders rows into an xlsx payload the way a published
// Google Sheets export delivers it.
func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name for (%d,%d): %v", r, c, err)
			}
			if err := f.SetCellStr(sheetName, cell, value); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// sheetRows assembles a current-generation layout: metadata in B1-B3, the
// header sentinel at row index 7, data rows after it.
func sheetRows(dataRows ...[]string) [][]string {
	rows := [][]string{
		{"Country", "US"},
		{"App Store Link", testStoreLink},
		{"Max Complaints Per Day", "10"},
		{},
		{},
		{},
		{},
		{"Report a scam or fraud", "Tell us more", "For what reason", "Describe the issue", "App Store Review", "App Store Rating"},
	}
	return append(rows, dataRows...)
}

func dataRow() []string {
	v := complaintValues()
	return []string{v.IWouldLikeTo, v.TellUsMore, v.ForWhatReason, v.DescribeTheIssue}
}

func newTestParser() *Parser {
	return New(NewFetcher(nil, 10<<20), schema.Current)
}

func TestParseBytesValidSheet(t *testing.T) {
	rows := sheetRows()
	for i := 0; i < 12; i++ {
		rows = append(rows, dataRow())
	}
	payload := buildWorkbook(t, rows)

	result, err := newTestParser().ParseBytes(context.Background(), payload)
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	if len(result.Complaints) != 12 {
		t.Fatalf("got %d complaints, want 12", len(result.Complaints))
	}
	for i, c := range result.Complaints {
		if c.ID != i+1 {
			t.Errorf("complaint %d has ID %d, want %d", i, c.ID, i+1)
		}
		if len(c.Steps) != 6 {
			t.Errorf("complaint %d has %d steps, want 6", i, len(c.Steps))
		}
		if len(c.Instructions) != 10 {
			t.Errorf("complaint %d has %d instructions, want 10", i, len(c.Instructions))
		}
		// Optional fields absent in the sheet serialize as null.
		if c.Steps[4].Value != nil || c.Steps[5].Value != nil {
			t.Errorf("complaint %d optional steps = %v, %v; want nil", i, c.Steps[4].Value, c.Steps[5].Value)
		}
	}

	md := result.Metadata
	if md.Country != "US" {
		t.Errorf("Country = %q, want US", md.Country)
	}
	if md.CountryName != "United States" {
		t.Errorf("CountryName = %q, want United States", md.CountryName)
	}
	if md.AppStoreLink != testStoreLink {
		t.Errorf("AppStoreLink = %q, want %q", md.AppStoreLink, testStoreLink)
	}
	if md.AppName != "Demo Virus Scanner" {
		t.Errorf("AppName = %q, want Demo Virus Scanner", md.AppName)
	}
	if md.AppID != "123456789" {
		t.Errorf("AppID = %q, want 123456789", md.AppID)
	}
	if md.StoreRegion != "us" {
		t.Errorf("StoreRegion = %q, want us", md.StoreRegion)
	}
	if md.MaxComplaintsPerDay != 10 {
		t.Errorf("MaxComplaintsPerDay = %d, want 10", md.MaxComplaintsPerDay)
	}
	if md.TotalReports != 12 {
		t.Errorf("TotalReports = %d, want 12", md.TotalReports)
	}
	if !md.DailyLimitValid {
		t.Errorf("DailyLimitValid = false for 12 reports, want true")
	}
	if md.LastUpdated == "" {
		t.Error("LastUpdated is empty")
	}
}

// legacyRows assembles the superseded layout: label-scanned metadata rows,
// the "Level 1" header found by scanning, data rows after it.
func legacyRows(dataRows ...[]string) [][]string {
	rows := [][]string{
		{"Country", "US"},
		{"App Store Link", testStoreLink},
		{"App Name", "Demo App"},
		{"Level 1", "Level 2", "Level 3", "Complaint"},
	}
	return append(rows, dataRows...)
}

func TestParseBytesLegacyGeneration(t *testing.T) {
	rows := legacyRows()
	for i := 0; i < 5; i++ {
		rows = append(rows, dataRow())
	}
	// Rating 5 is valid under the legacy 1-5 range.
	rows = append(rows, append(dataRow(), "The scanner flagged every file as infected to force a purchase.", "5"))
	payload := buildWorkbook(t, rows)

	p := New(NewFetcher(nil, 10<<20), schema.Legacy)
	result, err := p.ParseBytes(context.Background(), payload)
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	if len(result.Complaints) != 6 {
		t.Fatalf("got %d complaints, want 6", len(result.Complaints))
	}

	md := result.Metadata
	if md.Country != "US" {
		t.Errorf("Country = %q, want US", md.Country)
	}
	// The label-scanned app name overrides the one derived from the link.
	if md.AppName != "Demo App" {
		t.Errorf("AppName = %q, want Demo App", md.AppName)
	}
	// This layout carries no daily-limit cell.
	if md.MaxComplaintsPerDay != 0 {
		t.Errorf("MaxComplaintsPerDay = %d, want 0", md.MaxComplaintsPerDay)
	}
	if md.TotalReports != 6 {
		t.Errorf("TotalReports = %d, want 6", md.TotalReports)
	}

	want := []string{"level1", "level2", "level3", "complaintText", "appStoreReview", "appStoreRating"}
	for i, name := range want {
		if got := result.Complaints[0].Steps[i].Name; got != name {
			t.Errorf("step %d name = %q, want %q", i, got, name)
		}
	}
	if got := result.Complaints[5].Steps[5].Value; got != "5" {
		t.Errorf("rating step value = %v, want %q", got, "5")
	}
}

func TestParseBytesStepOrderFollowsSchema(t *testing.T) {
	review := "The scanner flagged every file as infected to force a purchase."
	row := append(dataRow(), review, "2")
	payload := buildWorkbook(t, sheetRows(row, dataRow(), dataRow(), dataRow(), dataRow()))

	result, err := newTestParser().ParseBytes(context.Background(), payload)
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	want := []string{"iWouldLikeTo", "tellUsMore", "forWhatReason", "describeTheIssue", "appStoreReview", "appStoreRating"}
	steps := result.Complaints[0].Steps
	for i, name := range want {
		if steps[i].Name != name {
			t.Errorf("step %d name = %q, want %q", i, steps[i].Name, name)
		}
	}
	if steps[4].Value != review {
		t.Errorf("review step value = %v, want the review text", steps[4].Value)
	}
	if steps[5].Value != "2" {
		t.Errorf("rating step value = %v, want %q", steps[5].Value, "2")
	}
	// The optional review and rating extend the instruction list.
	if len(result.Complaints[0].Instructions) != 15 {
		t.Errorf("instructions = %d, want 15 with both optionals", len(result.Complaints[0].Instructions))
	}
}

func TestParseBytesAccumulatesAllValidationErrors(t *testing.T) {
	badRow := dataRow()
	badRow[1] = "" // missing required tellUsMore
	shortRow := []string{"only", "two"}
	rows := sheetRows(dataRow(), badRow, shortRow, dataRow())
	rows[0][1] = "GB" // unsupported country
	payload := buildWorkbook(t, rows)

	_, err := newTestParser().ParseBytes(context.Background(), payload)
	if err == nil {
		t.Fatal("ParseBytes() = nil error, want VALIDATION_FAILED")
	}

	serr := AsStructured(err)
	if serr.Code != CodeValidationFailed {
		t.Fatalf("Code = %s, want %s", serr.Code, CodeValidationFailed)
	}
	// One short-row error, one missing-field error, one country error.
	if len(serr.Details) != 3 {
		t.Fatalf("Details has %d entries, want 3: %v", len(serr.Details), serr.Details)
	}

	// Row-level defects come first, metadata defects last.
	if !strings.HasPrefix(serr.Details[0].Field, "row_") {
		t.Errorf("Details[0].Field = %q, want a row_ tag", serr.Details[0].Field)
	}
	if !strings.HasPrefix(serr.Details[1].Field, "complaint_") {
		t.Errorf("Details[1].Field = %q, want a complaint_ path", serr.Details[1].Field)
	}
	if serr.Details[2].Field != "country" {
		t.Errorf("Details[2].Field = %q, want country", serr.Details[2].Field)
	}
}

func TestParseBytesMissingRequiredMetadata(t *testing.T) {
	rows := sheetRows(dataRow())
	rows[0] = []string{"Country", ""} // blank country cell
	payload := buildWorkbook(t, rows)

	_, err := newTestParser().ParseBytes(context.Background(), payload)
	serr := AsStructured(err)
	if serr.Code != CodeValidationFailed {
		t.Fatalf("Code = %s, want %s", serr.Code, CodeValidationFailed)
	}
	if serr.Message != "Sheet metadata is incomplete" {
		t.Errorf("Message = %q, want the incomplete-metadata summary", serr.Message)
	}
	if len(serr.Details) != 1 {
		t.Errorf("Details has %d entries, want 1", len(serr.Details))
	}
}

func TestParseBytesMissingHeaderIsFatal(t *testing.T) {
	rows := sheetRows(dataRow())
	rows[7] = []string{"Not The Header"}
	payload := buildWorkbook(t, rows)

	_, err := newTestParser().ParseBytes(context.Background(), payload)
	serr := AsStructured(err)
	if serr.Code != CodeParseFailed {
		t.Fatalf("Code = %s, want %s", serr.Code, CodeParseFailed)
	}
	// Fatal errors carry no details list.
	if len(serr.Details) != 0 {
		t.Errorf("Details = %v, want none", serr.Details)
	}
}

func TestParseBytesNoValidComplaints(t *testing.T) {
	payload := buildWorkbook(t, sheetRows())

	_, err := newTestParser().ParseBytes(context.Background(), payload)
	serr := AsStructured(err)
	if serr.Code != CodeParseFailed {
		t.Fatalf("Code = %s, want %s", serr.Code, CodeParseFailed)
	}
	if !strings.Contains(serr.Message, "No valid complaints") {
		t.Errorf("Message = %q, want no-valid-complaints summary", serr.Message)
	}
}

func TestParseBytesUndecodablePayload(t *testing.T) {
	_, err := newTestParser().ParseBytes(context.Background(), []byte("this is not a workbook"))
	serr := AsStructured(err)
	if serr.Code != CodeParseFailed {
		t.Fatalf("Code = %s, want %s", serr.Code, CodeParseFailed)
	}
}

func TestParseBytesIdempotent(t *testing.T) {
	payload := buildWorkbook(t, sheetRows(dataRow(), dataRow(), dataRow(), dataRow(), dataRow()))
	p := newTestParser()

	first, err := p.ParseBytes(context.Background(), payload)
	if err != nil {
		t.Fatalf("first ParseBytes() error = %v", err)
	}
	second, err := p.ParseBytes(context.Background(), payload)
	if err != nil {
		t.Fatalf("second ParseBytes() error = %v", err)
	}

	// The run timestamp is the only permitted difference between runs.
	first.Metadata.LastUpdated = ""
	second.Metadata.LastUpdated = ""

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("results differ between runs:\n%s\n%s", a, b)
	}
}

// hostRewriteTransport redirects every request to the test server while
// preserving the original request path.
type hostRewriteTransport struct {
	target *url.URL
}

func (t *hostRewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = t.target.Scheme
	clone.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(clone)
}

func TestParseEndToEnd(t *testing.T) {
	payload := buildWorkbook(t, sheetRows(dataRow(), dataRow(), dataRow(), dataRow(), dataRow()))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write(payload)
	}))
	defer srv.Close()

	target, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	client := &http.Client{Transport: &hostRewriteTransport{target: target}}
	p := New(NewFetcher(client, 10<<20), schema.Current)

	result, err := p.Parse(context.Background(),
		"https://docs.google.com/spreadsheets/d/e/2PACX-abc123/pub?output=xlsx")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(result.Complaints) != 5 {
		t.Errorf("got %d complaints, want 5", len(result.Complaints))
	}
}

func TestParseRejectsBadURLBeforeFetch(t *testing.T) {
	// No transport is wired up, so reaching the network would fail loudly.
	p := New(NewFetcher(&http.Client{Transport: failingTransport{}}, 10<<20), schema.Current)

	_, err := p.Parse(context.Background(), "https://example.com/spreadsheet.xlsx")
	serr := AsStructured(err)
	if serr.Code != CodeInvalidSheetsURL {
		t.Fatalf("Code = %s, want %s", serr.Code, CodeInvalidSheetsURL)
	}
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, fmt.Errorf("transport must not be reached")
}

func TestParseFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	target, _ := url.Parse(srv.URL)
	client := &http.Client{Transport: &hostRewriteTransport{target: target}}
	p := New(NewFetcher(client, 10<<20), schema.Current)

	_, err := p.Parse(context.Background(),
		"https://docs.google.com/spreadsheets/d/e/2PACX-abc123/pub?output=xlsx")
	serr := AsStructured(err)
	if serr.Code != CodeParseFailed {
		t.Fatalf("Code = %s, want %s", serr.Code, CodeParseFailed)
	}
	if !strings.Contains(serr.Message, "Failed to fetch") {
		t.Errorf("Message = %q, want fetch-failure summary", serr.Message)
	}
}
