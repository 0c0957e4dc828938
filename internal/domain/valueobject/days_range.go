package valueobject

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidRangeFormat is returned when a days-range string cannot be
// parsed. Callers wrap it with the offending bucket name.
var ErrInvalidRangeFormat = errors.New("invalid days range format")

var (
	boundedRangeRe   = regexp.MustCompile(`^(\d+)-(\d+)$`)
	unboundedRangeRe = regexp.MustCompile(`^(\d+)\+$`)
)

// DaysRange is an immutable arrears-aging interval parsed from a
// human-readable spec such as "0-30" (inclusive on both ends) or
// "366+" (unbounded above).
type DaysRange struct {
	min       int
	max       int
	unbounded bool
	raw       string
}

// ParseDaysRange parses a days-range string into a DaysRange.
func ParseDaysRange(spec string) (DaysRange, error) {
	if m := unboundedRangeRe.FindStringSubmatch(spec); m != nil {
		min, err := strconv.Atoi(m[1])
		if err != nil {
			return DaysRange{}, fmt.Errorf("%w: %q", ErrInvalidRangeFormat, spec)
		}
		return DaysRange{min: min, unbounded: true, raw: spec}, nil
	}

	m := boundedRangeRe.FindStringSubmatch(spec)
	if m == nil {
		return DaysRange{}, fmt.Errorf("%w: %q (expected 'A-B' or 'A+')", ErrInvalidRangeFormat, spec)
	}

	min, err := strconv.Atoi(m[1])
	if err != nil {
		return DaysRange{}, fmt.Errorf("%w: %q", ErrInvalidRangeFormat, spec)
	}
	max, err := strconv.Atoi(m[2])
	if err != nil {
		return DaysRange{}, fmt.Errorf("%w: %q", ErrInvalidRangeFormat, spec)
	}
	if min > max {
		return DaysRange{}, fmt.Errorf("%w: %q (min %d exceeds max %d)", ErrInvalidRangeFormat, spec, min, max)
	}

	return DaysRange{min: min, max: max, raw: spec}, nil
}

// MustDaysRange parses a days-range string and panics on error. Intended
// for test fixtures and package-level variables only.
func MustDaysRange(spec string) DaysRange {
	r, err := ParseDaysRange(spec)
	if err != nil {
		panic(err)
	}
	return r
}

// Contains reports whether value falls inside the range. Bounds are
// integers but the comparison is numeric, so fractional day counts work.
func (r DaysRange) Contains(value float64) bool {
	if value < float64(r.min) {
		return false
	}
	if r.unbounded {
		return true
	}
	return value <= float64(r.max)
}

// Min returns the inclusive lower bound.
func (r DaysRange) Min() int { return r.min }

// Max returns the inclusive upper bound and whether one exists. ok is
// false for "A+" ranges.
func (r DaysRange) Max() (max int, ok bool) {
	if r.unbounded {
		return 0, false
	}
	return r.max, true
}

// IsZero reports whether the range has not been initialised.
func (r DaysRange) IsZero() bool { return r.raw == "" }

// String returns the original spec string.
func (r DaysRange) String() string { return r.raw }
