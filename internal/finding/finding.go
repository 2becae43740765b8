// Package finding stages one vulnerability while its fields stream in and
// commits it to a builder.VulnerabilityHandler.
package finding

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/inf.v0"

	"github.com/scan-io-git/scanio-parser/internal/vocabulary"
	"github.com/scan-io-git/scanio-parser/pkg/builder"
)

// ErrMissingUniqueID is returned by Commit when no identifier was staged.
var ErrMissingUniqueID = errors.New("finding has no uniqueId")

// Value is a typed attribute value. Only the field matching Kind is meaningful.
type Value struct {
	Kind  vocabulary.Kind
	Str   string
	Int   int
	Float float32
	Time  time.Time
	Dec   *inf.Dec
}

func StringValue(kind vocabulary.Kind, s string) Value { return Value{Kind: kind, Str: s} }
func IntValue(i int) Value                            { return Value{Kind: vocabulary.Integer, Int: i} }
func FloatValue(f float32) Value                      { return Value{Kind: vocabulary.Float, Float: f} }
func DateValue(t time.Time) Value                     { return Value{Kind: vocabulary.Date, Time: t} }
func DecimalValue(d *inf.Dec) Value                   { return Value{Kind: vocabulary.Decimal, Dec: d} }

// Text renders the value for string-typed custom attributes.
func (v Value) Text() string {
	switch v.Kind {
	case vocabulary.Integer:
		return strconv.Itoa(v.Int)
	case vocabulary.Float:
		return strconv.FormatFloat(float64(v.Float), 'f', -1, 32)
	case vocabulary.Date:
		return v.Time.UTC().Format(time.RFC3339Nano)
	case vocabulary.Decimal:
		return v.Dec.String()
	default:
		return v.Str
	}
}

// Finding holds the attributes seen so far for one vulnerability. A Finding is
// created per finding object and must not be reused after Commit.
type Finding struct {
	table  *vocabulary.Table
	values map[vocabulary.Symbol]Value
}

// New returns an empty staging record for table.
func New(table *vocabulary.Table) *Finding {
	return &Finding{table: table, values: make(map[vocabulary.Symbol]Value)}
}

// Set stores v for the attribute, replacing any earlier value.
func (f *Finding) Set(attr *vocabulary.Attribute, v Value) {
	f.values[attr.Symbol] = v
}

// Get returns the staged value for s.
func (f *Finding) Get(s vocabulary.Symbol) (Value, bool) {
	v, ok := f.values[s]
	return v, ok
}

// Len reports how many attributes are staged.
func (f *Finding) Len() int {
	return len(f.values)
}

// UniqueID returns the staged identifier.
func (f *Finding) UniqueID() (string, bool) {
	v, ok := f.values[vocabulary.UniqueID]
	if !ok {
		return "", false
	}
	return v.Str, true
}

// customGroups is the commit order of custom attributes by value kind.
var customGroups = [][]vocabulary.Kind{
	{vocabulary.String, vocabulary.Enum, vocabulary.Integer, vocabulary.Float},
	{vocabulary.LongString, vocabulary.Base64},
	{vocabulary.Date},
	{vocabulary.Decimal},
}

// Commit opens a record for the staged identifier, sets built-in attributes in
// vocabulary order, then custom attributes grouped string, long text, date and
// decimal, and completes the record. Absent attributes are never set.
func (f *Finding) Commit(h builder.VulnerabilityHandler) error {
	id, ok := f.UniqueID()
	if !ok {
		return ErrMissingUniqueID
	}
	b, err := h.StartStaticVulnerability(id)
	if err != nil {
		return fmt.Errorf("start vulnerability %q: %w", id, err)
	}

	f.table.Each(func(a vocabulary.Attribute) {
		if a.Scope != vocabulary.ScopeBuiltin {
			return
		}
		if v, ok := f.values[a.Symbol]; ok {
			setBuiltin(b, a.Symbol, v)
		}
	})

	for _, kinds := range customGroups {
		f.table.Each(func(a vocabulary.Attribute) {
			if a.Scope != vocabulary.ScopeCustom || !hasKind(kinds, a.Kind) {
				return
			}
			if v, ok := f.values[a.Symbol]; ok {
				setCustom(b, a, v)
			}
		})
	}

	if err := b.CompleteVulnerability(); err != nil {
		return fmt.Errorf("complete vulnerability %q: %w", id, err)
	}
	return nil
}

func setBuiltin(b builder.StaticVulnerabilityBuilder, s vocabulary.Symbol, v Value) {
	switch s {
	case vocabulary.Category:
		b.SetCategory(v.Str)
	case vocabulary.FileName:
		b.SetFileName(v.Str)
	case vocabulary.VulnerabilityAbstract:
		b.SetVulnerabilityAbstract(v.Str)
	case vocabulary.LineNumber:
		b.SetLineNumber(v.Int)
	case vocabulary.Confidence:
		b.SetConfidence(v.Float)
	case vocabulary.Impact:
		b.SetImpact(v.Float)
	case vocabulary.Priority:
		p, _ := builder.ParsePriority(v.Str)
		b.SetPriority(p)
	}
}

func setCustom(b builder.StaticVulnerabilityBuilder, a vocabulary.Attribute, v Value) {
	switch a.Kind {
	case vocabulary.LongString, vocabulary.Base64:
		b.SetLongStringCustomAttributeValue(a.Name, v.Str)
	case vocabulary.Date:
		b.SetDateCustomAttributeValue(a.Name, v.Time)
	case vocabulary.Decimal:
		b.SetDecimalCustomAttributeValue(a.Name, v.Dec)
	default:
		b.SetStringCustomAttributeValue(a.Name, v.Text())
	}
}

func hasKind(kinds []vocabulary.Kind, k vocabulary.Kind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}
