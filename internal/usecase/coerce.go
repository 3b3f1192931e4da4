package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"mis-dashboard/internal/domain"
)

var (
	nonNumeric    = regexp.MustCompile(`[^0-9.\-]`)
	leadingNumber = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// ToFloat parses a loosely formatted quantity such as "12.5/pc" or "-3.2kg".
// Anything after the first slash is ignored, every character other than
// digits, '.' and '-' is dropped, and the longest numeric prefix of what is
// left is parsed. Unparseable input yields 0.
func ToFloat(value any) float64 {
	text, ok := domain.ValueText(value)
	if !ok {
		return 0
	}

	if i := strings.IndexByte(text, '/'); i >= 0 {
		text = text[:i]
	}
	text = nonNumeric.ReplaceAllString(text, "")

	prefix := leadingNumber.FindString(text)
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return f
}

// FormatFixed renders a loosely formatted quantity with a fixed number of
// decimal places for display.
func FormatFixed(value any, places int32) string {
	return decimal.NewFromFloat(ToFloat(value)).StringFixed(places)
}
