package validate

import (
	"fmt"
	"strings"

	"github.com/reportline/sheetparser/internal/schema"
)

// Complaint validates one candidate record against the field schema of the
// active sheet generation. Checks run in fixed order: required on every
// mandatory field, length bounds on every mandatory field, conditional
// length on the optional review text, range on the optional rating.
//
// Every error's field path is prefixed with the record id and every message
// is suffixed with the literal sheet row number so a sheet owner can find
// the offending cell. A record with zero errors becomes part of the output;
// any error withholds it entirely.
func Complaint(values schema.ComplaintValues, id, sheetRow int, gen schema.Generation) []ValidationError {
	var errs []ValidationError

	add := func(spec schema.FieldSpec, err *ValidationError) {
		if err == nil {
			return
		}
		err.Field = fmt.Sprintf("complaint_%d.%s", id, spec.Name)
		err.Message = fmt.Sprintf("%s (Google Sheet Row %d)", err.Message, sheetRow)
		errs = append(errs, *err)
	}

	// Required pass first, so a missing field reports once as "required"
	// rather than as a length failure.
	for _, spec := range gen.Fields {
		if !spec.Required {
			continue
		}
		v := fieldValue(values, spec.Column)
		add(spec, Required(v, spec.Name))
	}

	for _, spec := range gen.Fields {
		switch spec.Kind {
		case schema.FieldText:
			v := fieldValue(values, spec.Column)
			if v == nil || strings.TrimSpace(*v) == "" {
				continue
			}
			// Rename the generic length message to this field's name.
			if err := StringLength(*v, spec.Name, spec.MinLen, spec.MaxLen); err != nil {
				add(spec, err)
			}
		case schema.FieldRating:
			add(spec, Rating(fieldValue(values, spec.Column), gen.RatingMin, gen.RatingMax))
		}
	}

	return errs
}

// fieldValue maps a data-region column to the corresponding value.
// Mandatory columns always carry a string; optional trailing columns may
// be absent.
func fieldValue(v schema.ComplaintValues, col int) *string {
	switch col {
	case 0:
		return &v.IWouldLikeTo
	case 1:
		return &v.TellUsMore
	case 2:
		return &v.ForWhatReason
	case 3:
		return &v.DescribeTheIssue
	case 4:
		return v.AppStoreReview
	case 5:
		return v.AppStoreRating
	}
	return nil
}
