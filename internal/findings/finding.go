package findings

import "time"

// Property is a simple name/value pair used for custom vulnerability attributes.
// Kind names the value kind the attribute was declared with (string, long_string,
// date, decimal).
type Property struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

const (
	KindString     = "string"
	KindLongString = "long_string"
	KindDate       = "date"
	KindDecimal    = "decimal"
)

// Vulnerability is the normalized record produced for one committed finding.
type Vulnerability struct {
	UniqueID              string   `json:"unique_id"`
	Category              string   `json:"category,omitempty"`
	FileName              string   `json:"file_name,omitempty"`
	VulnerabilityAbstract string   `json:"vulnerability_abstract,omitempty"`
	LineNumber            *int     `json:"line_number,omitempty"`
	Confidence            *float32 `json:"confidence,omitempty"`
	Impact                *float32 `json:"impact,omitempty"`
	Priority              string   `json:"priority,omitempty"`

	Properties []Property `json:"properties,omitempty"`
}

// Property returns the custom attribute called name.
func (v *Vulnerability) Property(name string) (Property, bool) {
	for _, p := range v.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// SetProperty adds a custom attribute or overwrites the value of an existing one.
func (v *Vulnerability) SetProperty(p Property) {
	for i := range v.Properties {
		if v.Properties[i].Name == p.Name {
			v.Properties[i] = p
			return
		}
	}
	v.Properties = append(v.Properties, p)
}

// Scan is the normalized scan metadata record.
type Scan struct {
	ScanDate      time.Time `json:"scan_date"`
	EngineVersion string    `json:"engine_version,omitempty"`
	ElapsedTime   *int      `json:"elapsed_time,omitempty"`
	HostName      string    `json:"host_name,omitempty"`
}
