package validator

import (
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
)

// Bucket is one of the three counted issue categories shown to the user.
type Bucket string

// Issue buckets.
const (
	BucketRequired     Bucket = "required"
	BucketRecordSchema Bucket = "recordSchema"
	BucketMarkupSchema Bucket = "markupSchema"
)

// Kind classifies a single issue.
type Kind string

// Issue kinds. The first three come from the local phase.
const (
	KindMissingType   Kind = "MissingType"
	KindTypeMismatch  Kind = "TypeMismatch"
	KindRequiredEmpty Kind = "RequiredEmpty"
	KindSchema        Kind = "SchemaViolation"
	KindCheckFailed   Kind = "CheckFailed"
)

// Issue is a single validation finding.
//
// Path is set whenever the finding could be attributed to a submodel or
// element. Near carries the closest idShort when only the line heuristic
// could place a markup error.
type Issue struct {
	Bucket  Bucket     `json:"bucket"`
	Kind    Kind       `json:"kind"`
	Message string     `json:"message"`
	Path    model.Path `json:"path"`
	Where   string     `json:"where,omitempty"`
	Near    string     `json:"near,omitempty"`
	Line    int        `json:"line,omitempty"`
	Field   string     `json:"field,omitempty"`
	Hint    string     `json:"hint,omitempty"`
}

// Located reports whether the issue is attributed to a tree node.
func (i Issue) Located() bool {
	return i.Path.Submodel != ""
}

// Counts holds the number of issues per bucket.
type Counts struct {
	Required     int `json:"required"`
	RecordSchema int `json:"recordSchema"`
	MarkupSchema int `json:"markupSchema"`
}

// Total returns the sum over all buckets.
func (c Counts) Total() int {
	return c.Required + c.RecordSchema + c.MarkupSchema
}

func countIssues(issues []Issue) Counts {
	var c Counts
	for _, i := range issues {
		switch i.Bucket {
		case BucketRequired:
			c.Required++
		case BucketRecordSchema:
			c.RecordSchema++
		case BucketMarkupSchema:
			c.MarkupSchema++
		}
	}
	return c
}
