package currency

import (
	"math"
	"strconv"
	"strings"
)

const DefaultCode = "BDT"

// FormatBDT formats whole taka with lakh grouping, e.g. "BDT 1,25,000".
func FormatBDT(amount float64) string {
	return Format(DefaultCode, amount)
}

// Format rounds to whole units; negatives are written "-BDT 4,500".
func Format(code string, amount float64) string {
	units := int64(math.Round(amount))
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	return sign + code + " " + group(strconv.FormatInt(units, 10))
}

// Range formats a price band, collapsing it when both ends match.
func Range(code string, lo, hi float64) string {
	from, to := Format(code, lo), Format(code, hi)
	if from == to {
		return from
	}
	return from + " - " + to
}

// group writes digits in the lakh/crore style used for taka: the last
// three digits, then pairs, e.g. 12,34,567.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	parts := make([]string, 0, len(head)/2+2)
	if len(head)%2 == 1 {
		parts = append(parts, head[:1])
		head = head[1:]
	}
	for i := 0; i < len(head); i += 2 {
		parts = append(parts, head[i:i+2])
	}
	return strings.Join(append(parts, tail), ",")
}
