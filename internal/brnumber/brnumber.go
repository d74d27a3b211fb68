// Package brnumber parses numbers written in Brazilian notation ("R$ 1.234,56").
//
// It is the single point of locale normalization: every numeric value read from
// the wallet API or a scraped page goes through Parse.
package brnumber

import (
	"strconv"
	"strings"
)

// Parse converts locale-formatted text into a float64.
//
//   - empty or blank input is absent
//   - every rune other than a digit, '-', ',' or '.' is dropped
//   - with both ',' and '.', '.' groups thousands and ',' is the decimal mark
//   - with only ',', it is the decimal mark
//   - with only '.' (or neither) the text is parsed as is
//
// Parse never fails loudly: anything that does not survive strconv.ParseFloat
// is reported as absent.
func Parse(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '-', r == ',', r == '.':
			return r
		default:
			return -1
		}
	}, s)

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case hasComma:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
