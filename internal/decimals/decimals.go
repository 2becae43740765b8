// Package decimals parses arbitrary-precision decimals and scales them with
// round-half-up.
package decimals

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"gopkg.in/inf.v0"
)

// ErrInvalidDecimal is wrapped by every Parse failure.
var ErrInvalidDecimal = errors.New("invalid decimal")

// Parse reads plain ("300.005") and exponent ("3.00005e2") notation exactly.
func Parse(s string) (*inf.Dec, error) {
	s = strings.TrimSpace(s)
	if d, ok := new(inf.Dec).SetString(s); ok {
		return d, nil
	}
	if !strings.ContainsAny(s, "eE") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	d := new(inf.Dec).QuoExact(new(inf.Dec).SetUnscaledBig(r.Num()), new(inf.Dec).SetUnscaledBig(r.Denom()))
	if d == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	return d, nil
}

// Normalize returns d rounded half-up (ties away from zero) to exactly scale
// fractional digits. d is not modified.
func Normalize(d *inf.Dec, scale inf.Scale) *inf.Dec {
	return new(inf.Dec).Round(d, scale, inf.RoundHalfUp)
}

// ParseNormalized is Parse followed by Normalize.
func ParseNormalized(s string, scale inf.Scale) (*inf.Dec, error) {
	d, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return Normalize(d, scale), nil
}
