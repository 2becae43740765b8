// Package vocabulary holds the closed registry of recognized scan attributes.
//
// Every document format generation is one immutable Table built at package
// initialisation. A decoder selects a table once and only reads it afterwards.
package vocabulary

import (
	"fmt"
	"sort"
	"strings"
)

// Symbol identifies an attribute independently of its wire name.
type Symbol int

const (
	ScanDate Symbol = iota + 1
	EngineVersion
	Elapsed
	BuildServer

	UniqueID
	Category
	FileName
	VulnerabilityAbstract
	LineNumber
	Confidence
	Impact
	Priority

	CategoryID
	Criticality
	Artifact
	Status
	CustomStatus
	Description
	Comment
	BuildNumber
	Ratio
	LastChangeDate
	ArtifactBuildDate
	TextBase64
)

// Kind is the declared value type of an attribute.
type Kind int

const (
	String Kind = iota
	LongString
	Base64
	Integer
	Float
	Date
	Decimal
	Enum
)

var kindNames = [...]string{"string", "long-string", "base64", "integer", "float", "date", "decimal", "enum"}

func (k Kind) String() string {
	if k < String || k > Enum {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Scope tells where an attribute may appear and how it is committed.
type Scope int

const (
	// ScopeScan attributes are top-level scan metadata.
	ScopeScan Scope = iota
	// ScopeIdentity is the finding identifier passed to the record opener.
	ScopeIdentity
	// ScopeBuiltin attributes have dedicated builder setters.
	ScopeBuiltin
	// ScopeCustom attributes go through the typed custom-attribute setters.
	ScopeCustom
)

// EnumSet is a closed set of accepted values plus the member substituted for
// anything else.
type EnumSet struct {
	Values  []string
	Default string
}

// Match returns raw when it is a member (case-sensitive) and the default otherwise.
func (e *EnumSet) Match(raw string) (string, bool) {
	for _, v := range e.Values {
		if v == raw {
			return v, true
		}
	}
	return e.Default, false
}

// Attribute describes one recognized field.
type Attribute struct {
	Symbol Symbol
	Name   string
	Kind   Kind
	Scope  Scope
	Enum   *EnumSet
}

// Generation names a document format revision.
type Generation string

const (
	// GenerationLegacy carries priority and status as free text.
	GenerationLegacy Generation = "legacy"
	// GenerationEnum adds the priority and custom status enums and decimal attributes.
	GenerationEnum Generation = "enum"
	// GenerationBase64 adds the base64 long text attribute to GenerationEnum.
	GenerationBase64 Generation = "base64"

	// Latest is the generation used when none is configured.
	Latest = GenerationBase64
)

// FindingsField is the reserved top-level name of the findings array.
const FindingsField = "findings"

// Table is the read-only attribute registry of one generation.
type Table struct {
	generation Generation
	attrs      []Attribute
	scan       map[string]*Attribute
	finding    map[string]*Attribute
	bySymbol   map[Symbol]*Attribute
}

// Generation returns the generation the table was built for.
func (t *Table) Generation() Generation {
	return t.generation
}

// LookupScan resolves a top-level field name.
func (t *Table) LookupScan(name string) (*Attribute, bool) {
	a, ok := t.scan[name]
	return a, ok
}

// LookupFinding resolves a field name inside a finding object.
func (t *Table) LookupFinding(name string) (*Attribute, bool) {
	a, ok := t.finding[name]
	return a, ok
}

// Attribute returns the descriptor registered for s.
func (t *Table) Attribute(s Symbol) (*Attribute, bool) {
	a, ok := t.bySymbol[s]
	return a, ok
}

// Attributes returns a copy of the descriptors in registration order, which is
// also the commit order for built-in and custom attributes.
func (t *Table) Attributes() []Attribute {
	out := make([]Attribute, len(t.attrs))
	copy(out, t.attrs)
	return out
}

// Each calls fn for every descriptor in registration order.
func (t *Table) Each(fn func(Attribute)) {
	for _, a := range t.attrs {
		fn(a)
	}
}

// Names returns the sorted wire names of the attributes in the given scope.
func (t *Table) Names(scope Scope) []string {
	var names []string
	for _, a := range t.attrs {
		if a.Scope == scope {
			names = append(names, a.Name)
		}
	}
	// aliases share a symbol but are reachable by name only
	lookup := t.finding
	if scope == ScopeScan {
		lookup = t.scan
	}
	for name, a := range lookup {
		if a.Scope == scope && !contains(names, name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ForGeneration returns the table registered for g. Empty and "latest" select
// Latest.
func ForGeneration(g Generation) (*Table, error) {
	if g == "" || strings.EqualFold(string(g), "latest") {
		g = Latest
	}
	t, ok := tables[Generation(strings.ToLower(string(g)))]
	if !ok {
		return nil, fmt.Errorf("unknown vocabulary generation %q, expected one of %s", g, strings.Join(GenerationNames(), ", "))
	}
	return t, nil
}

// GenerationNames lists the known generations.
func GenerationNames() []string {
	names := make([]string, 0, len(tables))
	for g := range tables {
		names = append(names, string(g))
	}
	sort.Strings(names)
	return names
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
