package generator

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/scan-io-git/scanio-parser/internal/dates"
	"github.com/scan-io-git/scanio-parser/internal/vocabulary"
)

// GenericOptions parameterise a generic scan.
type GenericOptions struct {
	IssueCount    int
	CategoryCount int
	// LongTextSize is the number of filler bytes appended to each textBase64 value.
	LongTextSize int

	// Now defaults to the current time.
	Now time.Time
	// Rand defaults to a time seeded source.
	Rand *rand.Rand
	// HostName defaults to os.Hostname.
	HostName string
}

// Validate checks the counts.
func (o GenericOptions) Validate() error {
	switch {
	case o.IssueCount < 0:
		return fmt.Errorf("issue count must not be negative, got %d", o.IssueCount)
	case o.CategoryCount < 1:
		return fmt.Errorf("category count must be positive, got %d", o.CategoryCount)
	case o.LongTextSize < 0:
		return fmt.Errorf("long text size must not be negative, got %d", o.LongTextSize)
	}
	return nil
}

// Generic writes a scan of random findings to path, which must not exist yet.
func Generic(path string, opts GenericOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.HostName == "" {
		host, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("resolve host name: %w", err)
		}
		opts.HostName = host
	}

	return write(path, &document{
		entry:        GenericEntry,
		json:         compactJSON,
		scanDate:     dates.Encode(opts.Now),
		buildServer:  opts.HostName,
		count:        opts.IssueCount,
		finding:      opts.finding,
		longTextSize: opts.LongTextSize,
		elapsed: func(start time.Time) int {
			return int(time.Since(start).Milliseconds())
		},
	})
}

func (o GenericOptions) finding(i int) Finding {
	r := o.Rand
	id := fmt.Sprintf("%s/%08d", uuid.NewString(), i+1)
	category := r.Intn(o.CategoryCount)
	priorities := vocabulary.PriorityEnum.Values
	statuses := vocabulary.StatusEnum.Values

	return Finding{
		UniqueID:              uuid.NewString(),
		Category:              fmt.Sprintf("[generated] Random category %d", category),
		FileName:              fmt.Sprintf("file-%s.bin", id),
		VulnerabilityAbstract: "Abstract for vulnerability " + id,
		LineNumber:            r.Intn(math.MaxInt32),
		Confidence:            r.Float32()*9 + 1,
		Impact:                r.Float32() + 200,
		Priority:              priorities[r.Intn(len(priorities))],
		CategoryID:            fmt.Sprintf("c%d", category),
		Artifact:              fmt.Sprintf("artifact-%s.jar", id),
		Description:           "Description for vulnerability " + id + "\nSecurity problem in code...",
		Comment:               "Comment for vulnerability " + id + "\nMight be a false positive...",
		BuildNumber:           strconv.FormatFloat(float64(r.Float32()+300), 'f', -1, 32),
		CustomStatus:          statuses[r.Intn(len(statuses))],
		LastChangeDate:        o.Now.Add(-50 * time.Hour),
		ArtifactBuildDate:     o.Now.Add(-25 * time.Hour),
		Text:                  "Very long text for " + id + ": \n",
	}
}
