package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/reportline/sheetparser/internal/schema"
)

// metadataHint is appended to every metadata validation message so sheet
// owners know where to look.
const metadataHint = " (Check metadata rows 1-10 in Google Sheet)"

// MaxComplaintsPerDay validates the daily-submission-limit metadata cell.
// The raw cell value must coerce to an integer within [min, max].
func MaxComplaintsPerDay(raw *string, min, max int) *ValidationError {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		var value any
		if raw != nil {
			value = *raw
		}
		return &ValidationError{
			Field:   "maxComplaintsPerDay",
			Message: "maxComplaintsPerDay is required and cannot be empty",
			Value:   value,
		}
	}

	trimmed := strings.TrimSpace(*raw)

	num, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return &ValidationError{
			Field:   "maxComplaintsPerDay",
			Message: "maxComplaintsPerDay must be a valid number",
			Value:   *raw,
		}
	}

	if num != math.Trunc(num) {
		return &ValidationError{
			Field:   "maxComplaintsPerDay",
			Message: "maxComplaintsPerDay must be a whole number",
			Value:   *raw,
		}
	}

	if num < float64(min) || num > float64(max) {
		return &ValidationError{
			Field:   "maxComplaintsPerDay",
			Message: fmt.Sprintf("maxComplaintsPerDay must be between %d and %d", min, max),
			Value:   *raw,
		}
	}

	return nil
}

// Metadata runs the full metadata validation pass for the active generation:
// country code, daily submission limit (only for generations whose metadata
// region defines one), and app store link. Every message carries the metadata
// region hint. Errors are accumulated, never short-circuited.
func Metadata(country, storeLink, dailyLimit *string, gen schema.Generation) []ValidationError {
	var errs []ValidationError

	if err := Required(country, "country"); err != nil {
		errs = append(errs, withHint(*err))
	} else if err := CountryCode(*country); err != nil {
		errs = append(errs, withHint(*err))
	}

	if gen.HasDailyLimit {
		if err := MaxComplaintsPerDay(dailyLimit, gen.DailyLimitMin, gen.DailyLimitMax); err != nil {
			errs = append(errs, withHint(*err))
		}
	}

	if storeLink != nil && strings.TrimSpace(*storeLink) != "" && !IsURL(*storeLink) {
		errs = append(errs, ValidationError{
			Field:   "appStoreLink",
			Message: "App Store link must be a valid URL" + metadataHint,
			Value:   *storeLink,
		})
	}

	return errs
}

// RequiredMetadata checks only the metadata fields whose absence aborts the
// pipeline before any row work: the country code always, the daily
// submission limit only when the generation defines one. Returns hinted
// required-errors for the absent ones.
func RequiredMetadata(country, dailyLimit *string, gen schema.Generation) []ValidationError {
	var errs []ValidationError
	if err := Required(country, "country"); err != nil {
		errs = append(errs, withHint(*err))
	}
	if gen.HasDailyLimit {
		if err := Required(dailyLimit, "maxComplaintsPerDay"); err != nil {
			errs = append(errs, withHint(*err))
		}
	}
	return errs
}

func withHint(err ValidationError) ValidationError {
	err.Message += metadataHint
	return err
}
