package parser

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateSourceURL gates the source URL before any network activity.
//
// A string that is not an absolute http(s) URL is rejected with
// INVALID_URL. An absolute URL that does not look like a published Google
// Sheets export (docs.google.com, /spreadsheets/ path with a pub or export
// segment) is rejected with INVALID_GOOGLE_SHEETS_URL.
func ValidateSourceURL(raw string) *StructuredError {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return newError(CodeInvalidURL, "Source URL is required")
	}

	u, err := url.Parse(trimmed)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return newError(CodeInvalidURL, fmt.Sprintf("Source URL is not a valid absolute URL: %s", raw))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return newError(CodeInvalidURL, fmt.Sprintf("Source URL must use http or https: %s", raw))
	}

	host := strings.ToLower(u.Host)
	path := u.EscapedPath()
	isSheets := host == "docs.google.com" &&
		strings.Contains(path, "/spreadsheets/") &&
		(strings.Contains(path, "/pub") || strings.Contains(path, "/export"))
	if !isSheets {
		return newError(CodeInvalidSheetsURL,
			fmt.Sprintf("URL is not a published Google Sheets export: %s", raw))
	}

	return nil
}
