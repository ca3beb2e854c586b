package currency

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// groupedAmount anchors amountPart so that nothing but the grouped
// number may remain once the lead token is stripped.
var groupedAmount = regexp.MustCompile(`^` + amountPart + `$`)

// ParseAmount parses a comma-grouped decimal remainder ("1,234.56",
// "1,23,456", "999") into a positive float64. It fails when the string
// is not exactly a grouped number, or when the value is zero, negative,
// or not a finite float.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !groupedAmount.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || !isValidAmount(v) {
		return 0, false
	}
	return v, true
}

func isValidAmount(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
