package vocabulary

import "fmt"

var (
	// PriorityEnum is the closed set of finding priorities.
	PriorityEnum = EnumSet{Values: []string{"Critical", "High", "Medium", "Low"}, Default: "Medium"}
	// StatusEnum is the closed set of custom finding statuses.
	StatusEnum = EnumSet{Values: []string{"NEW", "OPEN", "REMEDIATED"}, Default: "NEW"}
)

var tables = map[Generation]*Table{}

func init() {
	scan := []Attribute{
		{Symbol: ScanDate, Name: "scanDate", Kind: Date, Scope: ScopeScan},
		{Symbol: EngineVersion, Name: "engineVersion", Kind: String, Scope: ScopeScan},
		{Symbol: Elapsed, Name: "elapsed", Kind: Integer, Scope: ScopeScan},
		{Symbol: BuildServer, Name: "buildServer", Kind: String, Scope: ScopeScan},
	}
	builtins := []Attribute{
		{Symbol: UniqueID, Name: "uniqueId", Kind: String, Scope: ScopeIdentity},
		{Symbol: Category, Name: "category", Kind: String, Scope: ScopeBuiltin},
		{Symbol: FileName, Name: "fileName", Kind: String, Scope: ScopeBuiltin},
		{Symbol: VulnerabilityAbstract, Name: "vulnerabilityAbstract", Kind: String, Scope: ScopeBuiltin},
		{Symbol: LineNumber, Name: "lineNumber", Kind: Integer, Scope: ScopeBuiltin},
		{Symbol: Confidence, Name: "confidence", Kind: Float, Scope: ScopeBuiltin},
		{Symbol: Impact, Name: "impact", Kind: Float, Scope: ScopeBuiltin},
	}

	legacy := join(scan, builtins, []Attribute{
		{Symbol: CategoryID, Name: "categoryId", Kind: String, Scope: ScopeCustom},
		{Symbol: Criticality, Name: "criticality", Kind: String, Scope: ScopeCustom},
		{Symbol: Artifact, Name: "artifact", Kind: String, Scope: ScopeCustom},
		{Symbol: Status, Name: "status", Kind: String, Scope: ScopeCustom},
		{Symbol: Description, Name: "description", Kind: LongString, Scope: ScopeCustom},
		{Symbol: Comment, Name: "comment", Kind: LongString, Scope: ScopeCustom},
		{Symbol: BuildNumber, Name: "buildNumber", Kind: String, Scope: ScopeCustom},
		{Symbol: LastChangeDate, Name: "lastChangeDate", Kind: Date, Scope: ScopeCustom},
		{Symbol: ArtifactBuildDate, Name: "artifactBuildDate", Kind: Date, Scope: ScopeCustom},
	})
	register(GenerationLegacy, legacy, nil)

	enumCustom := []Attribute{
		{Symbol: CategoryID, Name: "categoryId", Kind: String, Scope: ScopeCustom},
		{Symbol: Artifact, Name: "artifact", Kind: String, Scope: ScopeCustom},
		{Symbol: CustomStatus, Name: "customStatus", Kind: Enum, Scope: ScopeCustom, Enum: &StatusEnum},
		{Symbol: Description, Name: "description", Kind: LongString, Scope: ScopeCustom},
		{Symbol: Comment, Name: "comment", Kind: LongString, Scope: ScopeCustom},
		{Symbol: BuildNumber, Name: "buildNumber", Kind: Decimal, Scope: ScopeCustom},
		{Symbol: Ratio, Name: "ratio", Kind: Decimal, Scope: ScopeCustom},
		{Symbol: LastChangeDate, Name: "lastChangeDate", Kind: Date, Scope: ScopeCustom},
		{Symbol: ArtifactBuildDate, Name: "artifactBuildDate", Kind: Date, Scope: ScopeCustom},
	}
	priority := Attribute{Symbol: Priority, Name: "priority", Kind: Enum, Scope: ScopeBuiltin, Enum: &PriorityEnum}
	aliases := map[string]Symbol{"hostName": BuildServer}

	register(GenerationEnum, join(scan, builtins, []Attribute{priority}, enumCustom), aliases)

	register(GenerationBase64, join(scan, builtins, []Attribute{priority}, enumCustom, []Attribute{
		{Symbol: TextBase64, Name: "textBase64", Kind: Base64, Scope: ScopeCustom},
	}), aliases)
}

func register(g Generation, attrs []Attribute, aliases map[string]Symbol) {
	t := &Table{
		generation: g,
		attrs:      attrs,
		scan:       make(map[string]*Attribute),
		finding:    make(map[string]*Attribute),
		bySymbol:   make(map[Symbol]*Attribute),
	}
	for i := range t.attrs {
		a := &t.attrs[i]
		if _, dup := t.bySymbol[a.Symbol]; dup {
			panic(fmt.Sprintf("vocabulary %s: symbol of %q registered twice", g, a.Name))
		}
		t.bySymbol[a.Symbol] = a
		if a.Scope == ScopeScan {
			t.scan[a.Name] = a
		} else {
			t.finding[a.Name] = a
		}
	}
	for name, sym := range aliases {
		a := t.bySymbol[sym]
		if a.Scope == ScopeScan {
			t.scan[name] = a
		} else {
			t.finding[name] = a
		}
	}
	tables[g] = t
}

func join(groups ...[]Attribute) []Attribute {
	var out []Attribute
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
