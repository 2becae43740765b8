package decoder

import (
	"errors"
	"fmt"

	"github.com/scan-io-git/scanio-parser/internal/finding"
)

// ErrMissingScanDate is returned when a scan builder is supplied and the
// document closes without a scanDate.
var ErrMissingScanDate = errors.New("scan has no scanDate")

// StructureError reports a document that does not have the expected JSON shape.
// Token is the zero-based index of the offending token.
type StructureError struct {
	Msg   string
	Token int
	Err   error
}

func (e *StructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at token %d: %v", e.Msg, e.Token, e.Err)
	}
	return fmt.Sprintf("%s at token %d", e.Msg, e.Token)
}

func (e *StructureError) Unwrap() error {
	return e.Err
}

// FormatError reports a recognized field whose value its codec rejected.
type FormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Field, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// MissingIdentityError reports a finding object that closed without a uniqueId.
// Sequence is the zero-based position of the finding in the array.
type MissingIdentityError struct {
	Sequence int
}

func (e *MissingIdentityError) Error() string {
	return fmt.Sprintf("finding %06d closed without uniqueId", e.Sequence)
}

func (e *MissingIdentityError) Unwrap() error {
	return finding.ErrMissingUniqueID
}
