// Package builder defines the host-facing contract that receives decoded scan
// metadata and vulnerabilities one record at a time.
package builder

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/inf.v0"
)

// MaxDecimalScale is the largest number of fractional digits a decimal custom
// attribute may carry.
const MaxDecimalScale inf.Scale = 2

var (
	// ErrEmptyUniqueID is returned when a vulnerability is started without an identifier.
	ErrEmptyUniqueID = errors.New("unique id must not be empty")
	// ErrVulnerabilityCompleted is returned by any call on a handle after CompleteVulnerability.
	ErrVulnerabilityCompleted = errors.New("vulnerability already completed")
	// ErrScanCompleted is returned by any call on a scan builder after CompleteScan.
	ErrScanCompleted = errors.New("scan already completed")
)

// Priority is the closed, ordered set of vulnerability severities.
type Priority int

const (
	Critical Priority = iota
	High
	Medium
	Low
)

var priorityNames = [...]string{"Critical", "High", "Medium", "Low"}

func (p Priority) String() string {
	if p < Critical || p > Low {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityNames[p]
}

// ParsePriority matches name case-sensitively against the priority names.
func ParsePriority(name string) (Priority, bool) {
	for i, n := range priorityNames {
		if n == name {
			return Priority(i), true
		}
	}
	return Medium, false
}

// ScanBuilder receives scan-level metadata.
type ScanBuilder interface {
	SetScanDate(date time.Time)
	SetEngineVersion(version string)
	SetElapsedTime(seconds int)
	SetHostName(name string)
	CompleteScan() error
}

// VulnerabilityHandler opens one record per vulnerability.
type VulnerabilityHandler interface {
	StartStaticVulnerability(uniqueID string) (StaticVulnerabilityBuilder, error)
}

// StaticVulnerabilityBuilder populates a single vulnerability. Calling a setter
// twice for the same attribute overwrites the earlier value. The handle must not
// be used after CompleteVulnerability returns.
type StaticVulnerabilityBuilder interface {
	SetCategory(category string)
	SetFileName(fileName string)
	SetVulnerabilityAbstract(text string)
	SetLineNumber(line int)
	SetConfidence(confidence float32)
	SetImpact(impact float32)
	SetPriority(priority Priority)

	SetStringCustomAttributeValue(name, value string)
	SetLongStringCustomAttributeValue(name, value string)
	SetDateCustomAttributeValue(name string, value time.Time)
	SetDecimalCustomAttributeValue(name string, value *inf.Dec)

	CompleteVulnerability() error
}

// DecimalScaleError reports a decimal attribute whose scale exceeds MaxDecimalScale.
type DecimalScaleError struct {
	Attribute string
	Value     string
	Scale     inf.Scale
}

func (e *DecimalScaleError) Error() string {
	return fmt.Sprintf("decimal attribute %q value %s has scale %d, maximum is %d", e.Attribute, e.Value, e.Scale, MaxDecimalScale)
}

// CheckDecimalScale returns a *DecimalScaleError when value carries more fractional
// digits than MaxDecimalScale.
func CheckDecimalScale(name string, value *inf.Dec) error {
	if value == nil {
		return nil
	}
	if value.Scale() > MaxDecimalScale {
		return &DecimalScaleError{Attribute: name, Value: value.String(), Scale: value.Scale()}
	}
	return nil
}
