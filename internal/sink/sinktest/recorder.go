// Package sinktest provides an in-memory builder that records every call, for
// tests of code driving the builder contract.
package sinktest

import (
	"time"

	"gopkg.in/inf.v0"

	"github.com/scan-io-git/scanio-parser/pkg/builder"
)

// Call is one setter invocation on a vulnerability handle.
type Call struct {
	Method string
	Name   string
	Value  interface{}
}

// Vulnerability is everything recorded for one StartStaticVulnerability.
type Vulnerability struct {
	UniqueID  string
	Calls     []Call
	Completed bool
	// Misuse counts setter calls made after completion.
	Misuse int

	completeErr error
}

// Value returns the last value recorded for method (and, for custom attributes, name).
func (v *Vulnerability) Value(method string, name ...string) (interface{}, bool) {
	for i := len(v.Calls) - 1; i >= 0; i-- {
		c := v.Calls[i]
		if c.Method != method {
			continue
		}
		if len(name) > 0 && c.Name != name[0] {
			continue
		}
		return c.Value, true
	}
	return nil, false
}

// Methods returns the method names in call order, with the attribute name
// appended for custom setters.
func (v *Vulnerability) Methods() []string {
	out := make([]string, 0, len(v.Calls))
	for _, c := range v.Calls {
		if c.Name != "" {
			out = append(out, c.Method+":"+c.Name)
			continue
		}
		out = append(out, c.Method)
	}
	return out
}

func (v *Vulnerability) record(method, name string, value interface{}) {
	if v.Completed {
		v.Misuse++
		return
	}
	v.Calls = append(v.Calls, Call{Method: method, Name: name, Value: value})
}

func (v *Vulnerability) SetCategory(s string)              { v.record("SetCategory", "", s) }
func (v *Vulnerability) SetFileName(s string)              { v.record("SetFileName", "", s) }
func (v *Vulnerability) SetVulnerabilityAbstract(s string) { v.record("SetVulnerabilityAbstract", "", s) }
func (v *Vulnerability) SetLineNumber(n int)               { v.record("SetLineNumber", "", n) }
func (v *Vulnerability) SetConfidence(f float32)           { v.record("SetConfidence", "", f) }
func (v *Vulnerability) SetImpact(f float32)               { v.record("SetImpact", "", f) }
func (v *Vulnerability) SetPriority(p builder.Priority)    { v.record("SetPriority", "", p) }

func (v *Vulnerability) SetStringCustomAttributeValue(name, value string) {
	v.record("SetStringCustomAttributeValue", name, value)
}

func (v *Vulnerability) SetLongStringCustomAttributeValue(name, value string) {
	v.record("SetLongStringCustomAttributeValue", name, value)
}

func (v *Vulnerability) SetDateCustomAttributeValue(name string, value time.Time) {
	v.record("SetDateCustomAttributeValue", name, value)
}

func (v *Vulnerability) SetDecimalCustomAttributeValue(name string, value *inf.Dec) {
	v.record("SetDecimalCustomAttributeValue", name, value)
}

// CompleteVulnerability checks decimal scales the way a host would.
func (v *Vulnerability) CompleteVulnerability() error {
	if v.Completed {
		v.Misuse++
		return builder.ErrVulnerabilityCompleted
	}
	if v.completeErr != nil {
		return v.completeErr
	}
	for _, c := range v.Calls {
		if d, ok := c.Value.(*inf.Dec); ok {
			if err := builder.CheckDecimalScale(c.Name, d); err != nil {
				return err
			}
		}
	}
	v.Completed = true
	return nil
}

// Recorder implements builder.ScanBuilder and builder.VulnerabilityHandler.
type Recorder struct {
	ScanDate      *time.Time
	EngineVersion *string
	Elapsed       *int
	HostName      *string
	ScanCompleted int

	Vulnerabilities []*Vulnerability

	// StartErr, when set, is returned by StartStaticVulnerability.
	StartErr error
	// CompleteErr, when set, is returned by every CompleteVulnerability.
	CompleteErr error
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SetScanDate(t time.Time)   { r.ScanDate = &t }
func (r *Recorder) SetEngineVersion(s string) { r.EngineVersion = &s }
func (r *Recorder) SetElapsedTime(n int)      { r.Elapsed = &n }
func (r *Recorder) SetHostName(s string)      { r.HostName = &s }

func (r *Recorder) CompleteScan() error {
	if r.ScanCompleted > 0 {
		return builder.ErrScanCompleted
	}
	r.ScanCompleted++
	return nil
}

func (r *Recorder) StartStaticVulnerability(uniqueID string) (builder.StaticVulnerabilityBuilder, error) {
	if uniqueID == "" {
		return nil, builder.ErrEmptyUniqueID
	}
	if r.StartErr != nil {
		return nil, r.StartErr
	}
	v := &Vulnerability{UniqueID: uniqueID, completeErr: r.CompleteErr}
	r.Vulnerabilities = append(r.Vulnerabilities, v)
	return v, nil
}

// Completed returns the vulnerabilities that reached CompleteVulnerability.
func (r *Recorder) Completed() []*Vulnerability {
	var out []*Vulnerability
	for _, v := range r.Vulnerabilities {
		if v.Completed {
			out = append(out, v)
		}
	}
	return out
}

// IDs returns the unique ids of all started vulnerabilities in order.
func (r *Recorder) IDs() []string {
	out := make([]string, 0, len(r.Vulnerabilities))
	for _, v := range r.Vulnerabilities {
		out = append(out, v.UniqueID)
	}
	return out
}
