package generator

import (
	"time"

	"github.com/scan-io-git/scanio-parser/internal/dates"
)

// Fixed header of the steady scan.
const (
	SteadyScanDate    = "2017-04-18T23:31:42.136Z"
	SteadyBuildServer = "server01"
	SteadyElapsed     = 860
)

const (
	xssDescription = "Cross-site scripting (XSS) is a type of computer security vulnerability typically found in web applications. " +
		"XSS enables attackers to inject client-side scripts into web pages viewed by other users. " +
		"A cross-site scripting vulnerability may be used by attackers to bypass access controls such as the same-origin policy."
	sqliDescription = "SQL injection is a code injection technique, used to attack data-driven applications, in which nefarious SQL statements " +
		"are inserted into an entry field for execution (e.g. to dump the database contents to the attacker)."

	steadyText = "Example of a text encoded in the original scan to Base64. \n" +
		"From Wikipedia: \n\n" +
		"Computer security, also known as cyber security or IT security, is the protection of computer systems from the theft or damage " +
		"to their hardware, software or information, as well as from disruption or misdirection of the services they provide. \n"
)

var (
	steadyLastChange    = dates.MustDecode("2017-04-16T21:31:42.092Z")
	steadyArtifactBuild = dates.MustDecode("2017-04-17T22:31:42.092Z")
)

type steadyEntry struct {
	id       string
	line     int
	file     string
	artifact string
	comment  string
	status   string
}

var steadyXSS = []steadyEntry{
	{id: "fda2eaa2-7643-4fc5-809e-3eb6957e1945", line: 103, file: "00000001.bin", artifact: "artifact-fda2eaa2-7643-4fc5-809e-3eb6957e1945/00000001.jar", comment: "This should be fixed", status: "OPEN"},
	{id: "fda2eaa2-7643-4fc5-809e-3eb6957e1999", line: 146, file: "00000021.bin", artifact: "artifact-fda2eaa2-7643-4fc5-809e-3eb6957e1999/00000001.jar", comment: "This should be fixed", status: "OPEN"},
	{id: "fda2eaa2-7643-4fc5-809e-3eb6957e1946", line: 489, file: "00000011.bin", artifact: "artifact-fda2eaa2-7643-4fc5-809e-3eb6957e1946/00000001.jar", comment: "fixed in build 303.0001", status: "REMEDIATED"},
}

var steadySQLi = []steadyEntry{
	{id: "c834c327-4cee-4420-b1f8-b24bea95fee3", line: 8409, file: "00000002.bin", artifact: "artifact-c834c327-4cee-4420-b1f8-b24bea95fee3/00000002.jar", comment: "fixed in build 300.845200451", status: "REMEDIATED"},
	{id: "c834c327-4cee-4420-b1f8-b24bea95fe11", line: 1001, file: "00000002.bin", artifact: "artifact-c834c327-4cee-4420-b1f8-b24bea95fee3/00000002.jar", comment: "fixed in build 300.845200451", status: "REMEDIATED"},
	{id: "c834c327-4cee-4420-b1f8-b24bea95fe12", line: 423, file: "00000003.bin", artifact: "artifact-c834c327-4cee-4420-b1f8-b24bea95fee3/00000002.jar", status: "OPEN"},
	{id: "c834c327-4cee-4420-b1f8-b24bea95ffx5", line: 8409, file: "00000042.bin", artifact: "artifact-c834c327-4cee-4420-b1f8-b24bea95fee3/00000002.jar", comment: "fixed in build 300.845200451", status: "REMEDIATED"},
	{id: "c834c327-4cee-4420-b1f8-b24bea95fe88", line: 409, file: "00000008.bin", artifact: "artifact-c834c327-4cee-4420-b1f8-b24bea95feag/00000012.jar", status: "NEW"},
	{id: "c834c327-4cee-4420-b1f8-b24bea95f111", line: 22, file: "00000018.bin", artifact: "artifact-c834c327-4cee-4420-b1f8-b24bea95fe88/00000008.jar", status: "NEW"},
	{id: "c834c327-4cee-4420-b1f8-b24bea95fe55", line: 112, file: "00000007.bin", artifact: "artifact-c834c327-4cee-4420-b1f8-b24bea95fee3/00000002.jar", status: "OPEN"},
}

// SteadyFindings returns the ten findings of the steady scan.
func SteadyFindings() []Finding {
	out := make([]Finding, 0, len(steadyXSS)+len(steadySQLi))
	for _, e := range steadyXSS {
		out = append(out, e.finding(Finding{
			Category:    "Cross-site Scripting",
			Confidence:  4.968653,
			Impact:      200.690,
			Priority:    "Critical",
			CategoryID:  "a101",
			Description: xssDescription,
			BuildNumber: "300.3837014436722",
		}))
	}
	for _, e := range steadySQLi {
		out = append(out, e.finding(Finding{
			Category:    "SQL Injection",
			Confidence:  2.941967,
			Impact:      200.696,
			Priority:    "High",
			CategoryID:  "c121",
			Description: sqliDescription,
			BuildNumber: "300.314668238163",
		}))
	}
	return out
}

func (e steadyEntry) finding(f Finding) Finding {
	f.UniqueID = e.id
	f.FileName = "file-" + e.id + "/" + e.file
	f.VulnerabilityAbstract = f.Category + " found in " + f.FileName
	f.LineNumber = e.line
	f.Artifact = e.artifact
	f.Comment = e.comment
	f.CustomStatus = e.status
	f.LastChangeDate = steadyLastChange
	f.ArtifactBuildDate = steadyArtifactBuild
	f.Text = steadyText
	return f
}

// Steady writes the steady scan to path, which must not exist yet.
func Steady(path string) error {
	findings := SteadyFindings()
	return write(path, &document{
		entry:       SteadyEntry,
		json:        prettyJSON,
		scanDate:    SteadyScanDate,
		buildServer: SteadyBuildServer,
		count:       len(findings),
		finding:     func(i int) Finding { return findings[i] },
		elapsed:     func(time.Time) int { return SteadyElapsed },
	})
}
