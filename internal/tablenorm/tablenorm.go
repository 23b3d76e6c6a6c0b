// Package tablenorm implements the cell-normalization rule shared by
// feature selection and tokenization: numeric cells are coerced to their
// integer-rounded decimal string form, and nulls/empty strings are treated
// as absent. The original implementation (py_entitymatching's
// debugblocker._replace_nan_to_empty and _get_feature_weight) repeats this
// logic at both call sites; this module factors it once.
package tablenorm

import (
	"strconv"

	"github.com/entitymatch/debugblocker/pkg/debugblocker/table"
)

// Coerce normalizes a raw cell value: null becomes "", a numeric value is
// rounded to the nearest integer and formatted as a plain decimal string,
// and everything else passes through unchanged. Ties round to even (e.g.
// "-2.5" -> "-2"), matching the original's '{:.0f}'.format(field) behavior
// rather than round-half-away-from-zero.
func Coerce(raw string, isNull bool, dt table.DType) string {
	if isNull {
		return ""
	}
	if dt == table.Numeric {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return strconv.FormatFloat(f, 'f', 0, 64)
		}
		// Not parseable as a number despite the declared dtype; fall
		// through and treat the raw text as-is rather than failing the
		// whole run over one malformed cell.
	}
	return raw
}

// IsEmpty reports whether a coerced cell value counts as absent.
func IsEmpty(coerced string) bool {
	return coerced == ""
}
