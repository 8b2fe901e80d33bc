package geo

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

var ErrNotANumber = errors.New("not a finite number")

// leadingNumber is the longest decimal float at the start of a string.
// Anything after it is ignored, so "12.5km" reads as 12.5.
var leadingNumber = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseCoordinate coerces a decoded JSON value to a finite float64. Numbers
// are taken as is, strings go through ParseCoordinateString, and everything
// else (null included) is rejected.
func ParseCoordinate(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case string:
		return ParseCoordinateString(n)
	default:
		return 0, errors.Wrapf(ErrNotANumber, "unsupported type %T", v)
	}
}

// ParseCoordinateString reads the leading number of s after skipping
// leading whitespace.
func ParseCoordinateString(s string) (float64, error) {
	m := leadingNumber.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return 0, errors.Wrapf(ErrNotANumber, "%q", s)
	}
	if strings.HasSuffix(m, "Infinity") {
		return 0, ErrNotANumber
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Overflow: ParseFloat already returned ±Inf, which finite rejects.
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || numErr.Err != strconv.ErrRange {
			return 0, errors.Wrapf(ErrNotANumber, "%q", s)
		}
	}
	return finite(f)
}

func finite(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotANumber
	}
	return f, nil
}
