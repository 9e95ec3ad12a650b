// Package parser orchestrates the spreadsheet-to-record pipeline: URL
// gating, fetch, grid decode, metadata extraction, row transformation and
// layered validation.
//
// The pipeline is linear — Fetching, Parsing, ExtractingMetadata,
// ExtractingRows, Validating — with two failure exits: fatal errors stop
// the run immediately with a single StructuredError, while validation
// defects accumulate and surface together as one VALIDATION_FAILED
// envelope listing every problem found.
//
// Each invocation is fully independent: no state is shared between runs
// beyond the immutable country table and schema descriptors, so Parse is
// safe to call from many goroutines at once.
package parser

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reportline/sheetparser/internal/logging"
	"github.com/reportline/sheetparser/internal/schema"
	"github.com/reportline/sheetparser/internal/sheet"
	"github.com/reportline/sheetparser/internal/validate"
)

// Parser runs the extraction and validation pipeline for one sheet layout
// generation.
type Parser struct {
	fetcher *Fetcher
	gen     schema.Generation
}

// New creates a Parser using the given fetcher and sheet generation.
func New(fetcher *Fetcher, gen schema.Generation) *Parser {
	return &Parser{fetcher: fetcher, gen: gen}
}

// Parse fetches sourceURL, extracts and validates the sheet, and returns
// the complete result or an error.
//
// Every returned error is a *StructuredError: validation defects arrive as
// one VALIDATION_FAILED envelope with the full details list, and fatal
// pipeline failures (transport, decode, missing header, no surviving
// records) arrive as a detail-less envelope wrapped exactly once at this
// boundary.
func (p *Parser) Parse(ctx context.Context, sourceURL string) (*ParsedData, error) {
	log := logging.FromContext(ctx).With("parse_id", uuid.NewString())

	if serr := ValidateSourceURL(sourceURL); serr != nil {
		log.Warn("source url rejected", "code", serr.Code, "url", sourceURL)
		return nil, serr
	}

	// Fetching
	payload, err := p.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		log.Error("fetch failed", "error", err)
		return nil, newError(CodeParseFailed, "Failed to fetch Google Sheets data: "+err.Error())
	}
	log.Debug("fetched spreadsheet export", "bytes", len(payload))

	return p.ParseBytes(ctx, payload)
}

// ParseBytes runs the pipeline from the decode stage onward against an
// already-fetched export payload. Useful when the payload arrives through
// a channel other than the built-in fetch.
func (p *Parser) ParseBytes(ctx context.Context, payload []byte) (*ParsedData, error) {
	log := logging.FromContext(ctx)

	// Parsing
	grid, err := sheet.Decode(payload)
	if err != nil {
		log.Error("decode failed", "error", err)
		return nil, newError(CodeParseFailed, "Failed to parse spreadsheet data: "+err.Error())
	}
	log.Debug("decoded grid", "rows", len(grid))

	// ExtractingMetadata. A sheet without a country code, or without a daily
	// limit when the generation defines one, is unusable, so those absences
	// short-circuit before any row work.
	cells := sheet.ExtractMetadata(grid, p.gen)
	if missing := validate.RequiredMetadata(cells.Country, cells.DailyLimit, p.gen); len(missing) > 0 {
		log.Warn("required metadata missing", "count", len(missing))
		return nil, newValidationError("Sheet metadata is incomplete", missing)
	}

	// ExtractingRows
	start, err := sheet.FindDataStart(grid, p.gen)
	if err != nil {
		log.Error("header discovery failed", "error", err)
		return nil, newError(CodeParseFailed, "Failed to parse spreadsheet data: "+err.Error())
	}

	drafts, rowErrs := sheet.ExtractRows(grid, start, p.gen)
	log.Debug("extracted rows", "candidates", len(drafts), "row_errors", len(rowErrs))

	// Validating: per-record defects first, then metadata defects, so the
	// details order is stable across runs.
	allErrs := rowErrs
	var complaints []Complaint
	for _, draft := range drafts {
		if errs := validate.Complaint(draft.Values, draft.ID, draft.SheetRow, p.gen); len(errs) > 0 {
			allErrs = append(allErrs, errs...)
			continue
		}
		complaints = append(complaints, Complaint{
			ID:           draft.ID,
			Instructions: BuildInstructions(draft.Values),
			Steps:        p.stepsFor(draft.Values),
		})
	}

	allErrs = append(allErrs, validate.Metadata(
		cells.Country, cells.StoreLink, cells.DailyLimit, p.gen,
	)...)

	if len(allErrs) > 0 {
		log.Warn("validation failed", "errors", len(allErrs))
		return nil, newValidationError("Sheet data failed validation", allErrs)
	}

	// Zero surviving records with a clean error list is a data-sufficiency
	// problem, not a validation failure.
	if len(complaints) == 0 {
		log.Warn("no valid complaints in sheet")
		return nil, newError(CodeParseFailed, "No valid complaints found in sheet")
	}

	result := p.buildResult(cells, complaints)
	log.Info("parse succeeded", "complaints", len(complaints), "country", result.Metadata.Country)
	return result, nil
}

// stepsFor builds the ordered value items for one record. The name order
// follows the generation's field schema and is part of the external
// contract; absent optional values stay nil so they serialize as null.
func (p *Parser) stepsFor(values schema.ComplaintValues) []ValueItem {
	steps := make([]ValueItem, 0, len(p.gen.Fields))
	for _, spec := range p.gen.Fields {
		var v any
		switch spec.Column {
		case 0:
			v = values.IWouldLikeTo
		case 1:
			v = values.TellUsMore
		case 2:
			v = values.ForWhatReason
		case 3:
			v = values.DescribeTheIssue
		case 4:
			if values.AppStoreReview != nil {
				v = *values.AppStoreReview
			}
		case 5:
			if values.AppStoreRating != nil {
				v = *values.AppStoreRating
			}
		}
		steps = append(steps, ValueItem{Name: spec.Name, Value: v})
	}
	return steps
}

// buildResult assembles the success payload. Validation has already
// passed, so the metadata cells are known-good here.
func (p *Parser) buildResult(cells sheet.MetadataCells, complaints []Complaint) *ParsedData {
	country := strings.ToUpper(strings.TrimSpace(*cells.Country))

	storeLink := ""
	if cells.StoreLink != nil {
		storeLink = *cells.StoreLink
	}
	info := ExtractAppInfo(storeLink)
	if cells.AppName != nil {
		info.AppName = *cells.AppName
	}

	maxPerDay, _ := sheet.DailyLimitValue(cells.DailyLimit, p.gen.DailyLimitMin, p.gen.DailyLimitMax)
	limitCheck := validate.DailyLimit(len(complaints))

	return &ParsedData{
		Metadata: Metadata{
			Country:             country,
			CountryName:         validate.CountryName(country),
			AppStoreLink:        storeLink,
			AppName:             info.AppName,
			AppID:               info.AppID,
			StoreRegion:         info.StoreRegion,
			MaxComplaintsPerDay: maxPerDay,
			TotalReports:        len(complaints),
			DailyLimitValid:     limitCheck.Valid,
			DailyLimitMessage:   limitCheck.Message,
			LastUpdated:         time.Now().UTC().Format(time.RFC3339),
		},
		Complaints: complaints,
	}
}

// AsStructured extracts the StructuredError from a Parse failure. The
// fallback wraps unexpected error types into an INTERNAL_ERROR envelope so
// the boundary always emits the documented shape.
func AsStructured(err error) *StructuredError {
	var serr *StructuredError
	if errors.As(err, &serr) {
		return serr
	}
	return NewInternalError(err)
}
