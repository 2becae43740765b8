package decoder

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/inf.v0"
)

// Policy decides what happens to a finding that carries an unparsable value or
// no uniqueId. Structure and I/O errors are always fatal.
type Policy int

const (
	// PolicyAbort stops the decode and returns the error.
	PolicyAbort Policy = iota
	// PolicySkip drops the finding, logs a warning and continues.
	PolicySkip
)

func (p Policy) String() string {
	switch p {
	case PolicyAbort:
		return "abort"
	case PolicySkip:
		return "skip"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy accepts "abort" and "skip"; empty means abort.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return PolicyAbort, nil
	case "skip":
		return PolicySkip, nil
	default:
		return PolicyAbort, fmt.Errorf("unknown finding error policy %q, expected abort or skip", s)
	}
}

const defaultBufferSize = 32 * 1024

// Option configures a Decoder.
type Option func(*Decoder)

// WithPolicy sets the per-finding failure policy.
func WithPolicy(p Policy) Option {
	return func(d *Decoder) { d.policy = p }
}

// WithLogger sets the logger used for per-finding diagnostics.
func WithLogger(l hclog.Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithScale sets the scale decimals are normalized to.
func WithScale(s inf.Scale) Option {
	return func(d *Decoder) { d.scale = s }
}

// WithBufferSize sets the tokenizer read buffer size in bytes.
func WithBufferSize(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.bufSize = n
		}
	}
}
