package currency

import (
	"errors"
	"fmt"
)

// RateTable maps a currency code to its price in the pivot currency
// (units of that currency per 1 pivot). Supplied by an external
// provider, treated as opaque input for the duration of one call.
type RateTable map[string]float64

// ErrMissingRate is returned when a conversion endpoint is absent from
// the supplied rate table. Per the provider contract the table should
// be pre-validated, so hitting this is a caller bug, surfaced rather
// than silently miscomputed.
var ErrMissingRate = errors.New("missing exchange rate")

// Convert converts amount from one currency to another through the
// pivot. Same-currency conversion is exact identity, any amount
// included. No rounding happens here; round only at the display
// boundary.
func Convert(amount float64, from, to string, rates RateTable) (float64, error) {
	if from == to {
		return amount, nil
	}

	inPivot := amount
	if from != PivotCode {
		r, ok := rates[from]
		if !ok || r <= 0 {
			return 0, fmt.Errorf("%w for %q", ErrMissingRate, from)
		}
		inPivot = amount / r
	}

	if to == PivotCode {
		return inPivot, nil
	}
	r, ok := rates[to]
	if !ok || r <= 0 {
		return 0, fmt.Errorf("%w for %q", ErrMissingRate, to)
	}
	return inPivot * r, nil
}
