package core

// convert.go provides the text-to-number conversions used by validation and
// the number-to-text rendering used by the formatters.
//
// Parsing rules:
//   - sample_id: ASCII digits only, with a leading "-" allowed on a negative
//     value ("+3", "-0", " 3", "3.0", "1e3" fail)
//   - fauxness: anything strconv.ParseFloat accepts once surrounding spaces
//     are trimmed, including "1e-3", "inf" and "nan"
//
// Range checks happen in validation.go, not here.

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// parseSampleID converts an integer literal. It fails on any non-digit other
// than the minus of a negative value, and on values that overflow int64.
func parseSampleID(raw string) (int64, bool) {
	digits := strings.TrimPrefix(raw, "-")
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || (n == 0 && digits != raw) {
		return 0, false
	}
	return n, true
}

// parseFauxness converts a float literal. Literals too large for float64
// convert to ±Inf rather than failing, so they are reported as out of range.
func parseFauxness(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// inUnitRange reports whether f lies in [0, 1]. NaN is outside.
func inUnitRange(f float64) bool {
	return f >= 0 && f <= 1
}

// formatFloat renders f the way it reads in a data file: shortest exact
// form, always with a decimal point or exponent (1 -> "1.0", 1e-05 stays).
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Float is a float64 that encodes to JSON with formatFloat. Non-finite
// values have no JSON number form and encode as strings.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	s := formatFloat(v)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte(strconv.Quote(s)), nil
	}
	return []byte(s), nil
}

func (f Float) String() string {
	return formatFloat(float64(f))
}
