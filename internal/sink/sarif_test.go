package sink

import (
	"bytes"
	"testing"

	"github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/inf.v0"

	"github.com/scan-io-git/scanio-parser/internal/findings"
	"github.com/scan-io-git/scanio-parser/pkg/builder"
)

func TestSARIFWriter(t *testing.T) {
	var out bytes.Buffer
	w, err := NewSARIFWriter(nopCloser{&out})
	require.NoError(t, err)
	b := New(w)

	b.SetScanDate(scanDate)
	b.SetEngineVersion("1.0-SNAPSHOT")
	b.SetElapsedTime(860)
	b.SetHostName("server01")
	require.NoError(t, b.CompleteScan())

	first, err := b.StartStaticVulnerability("fda2eaa2")
	require.NoError(t, err)
	first.SetCategory("Cross-site Scripting")
	first.SetFileName("src/index.jsp")
	first.SetVulnerabilityAbstract("Cross-site Scripting found in src/index.jsp")
	first.SetLineNumber(103)
	first.SetPriority(builder.Critical)
	first.SetStringCustomAttributeValue("categoryId", "a101")
	first.SetDecimalCustomAttributeValue("ratio", inf.NewDec(30001, 2))
	require.NoError(t, first.CompleteVulnerability())

	second, err := b.StartStaticVulnerability("c834c327")
	require.NoError(t, err)
	second.SetCategory("SQL Injection")
	second.SetPriority(builder.Low)
	second.SetLineNumber(0)
	require.NoError(t, second.CompleteVulnerability())

	third, err := b.StartStaticVulnerability("fda2eaa3")
	require.NoError(t, err)
	third.SetStringCustomAttributeValue("categoryId", "a101")
	require.NoError(t, third.CompleteVulnerability())

	require.NoError(t, b.Flush())
	require.NoError(t, b.Flush())
	require.NoError(t, b.Close())

	report, err := sarif.FromBytes(out.Bytes())
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)
	run := report.Runs[0]

	assert.Equal(t, "scanio-parser", run.Tool.Driver.Name)
	assert.Equal(t, "1.0-SNAPSHOT", *run.Tool.Driver.Version)
	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "a101", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "SQL Injection", run.Tool.Driver.Rules[1].ID)

	require.Len(t, run.Invocations, 1)
	inv := run.Invocations[0]
	assert.True(t, inv.StartTimeUTC.Equal(scanDate))
	assert.Equal(t, 860.0, inv.EndTimeUTC.Sub(*inv.StartTimeUTC).Seconds())
	assert.Equal(t, "server01", *inv.Machine)

	require.Len(t, run.Results, 3)
	r := run.Results[0]
	assert.Equal(t, "a101", *r.RuleID)
	assert.Equal(t, "error", *r.Level)
	assert.Equal(t, "Cross-site Scripting found in src/index.jsp", *r.Message.Text)
	require.Len(t, r.Locations, 1)
	assert.Equal(t, "src/index.jsp", *r.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, 103, *r.Locations[0].PhysicalLocation.Region.StartLine)
	assert.Equal(t, "fda2eaa2", r.Properties["uniqueId"])
	assert.Equal(t, "300.01", r.Properties["ratio"])
	assert.Equal(t, "Critical", r.Properties["priority"])

	assert.Equal(t, "note", *run.Results[1].Level)
	assert.Empty(t, run.Results[1].Locations)
	assert.Equal(t, "SQL Injection", *run.Results[1].Message.Text)

	assert.Equal(t, "a101", *run.Results[2].RuleID)
	assert.Equal(t, "warning", *run.Results[2].Level)
}

func TestSarifRuleID(t *testing.T) {
	assert.Equal(t, "uncategorized", sarifRuleID(findingsVulnerability("", nil)))
	assert.Equal(t, "XSS", sarifRuleID(findingsVulnerability("XSS", nil)))
	assert.Equal(t, "a101", sarifRuleID(findingsVulnerability("XSS", map[string]string{"categoryId": "a101"})))
}

func TestToSarifLevel(t *testing.T) {
	tests := map[string]string{
		"Critical": "error",
		"High":     "error",
		"Medium":   "warning",
		"":         "warning",
		"Low":      "note",
		"Blocker":  "none",
	}
	for priority, want := range tests {
		assert.Equal(t, want, toSarifLevel(priority), priority)
	}
}

func findingsVulnerability(category string, props map[string]string) findings.Vulnerability {
	v := findings.Vulnerability{UniqueID: "id", Category: category}
	for name, value := range props {
		v.SetProperty(findings.Property{Name: name, Kind: findings.KindString, Value: value})
	}
	return v
}
