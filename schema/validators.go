package schema

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// Unsigned is the set of destination widths for exact-integer fields.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// ExactUnsigned converts a wire double to U. It reports false when f has a
// fractional part, is negative, is not finite, or does not fit in U.
func ExactUnsigned[U Unsigned](f float64) (U, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) {
		return 0, false
	}
	width := bits.Len64(uint64(^U(0)))
	if f >= math.Ldexp(1, width) {
		return 0, false
	}
	u := U(f)
	if float64(u) != f {
		return 0, false
	}
	return u, true
}

// ParseVersion parses the "<major>.<minor>" micro-format. Both segments are
// unsigned decimal integers that fit in 32 bits; signs, whitespace, empty
// segments and further "." segments are rejected.
func ParseVersion(s string) (major, minor uint32, err error) {
	head, tail, ok := strings.Cut(s, ".")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q has no minor segment", ErrInvalidVersionFormat, s)
	}
	if major, err = versionSegment(head); err != nil {
		return 0, 0, fmt.Errorf("%w: major segment of %q", ErrInvalidVersionFormat, s)
	}
	if minor, err = versionSegment(tail); err != nil {
		return 0, 0, fmt.Errorf("%w: minor segment of %q", ErrInvalidVersionFormat, s)
	}
	return major, minor, nil
}

func versionSegment(s string) (uint32, error) {
	if s == "" {
		return 0, ErrInvalidVersionFormat
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidVersionFormat
		}
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
