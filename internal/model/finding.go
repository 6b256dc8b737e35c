package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity is the normalized issue severity. SevUnknown covers anything a
// tool reports outside the five known buckets.
type Severity int

const (
	SevError Severity = iota
	SevWarning
	SevStyle
	SevPerformance
	SevPortability
	SevUnknown
)

// KnownSeverities lists the report buckets in display order.
var KnownSeverities = []Severity{SevError, SevWarning, SevStyle, SevPerformance, SevPortability}

var severityNames = [...]string{
	SevError:       "error",
	SevWarning:     "warning",
	SevStyle:       "style",
	SevPerformance: "performance",
	SevPortability: "portability",
	SevUnknown:     "unknown",
}

// ParseSeverity maps a tool severity string onto the enumeration.
// Anything outside the known set becomes SevUnknown.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SevError
	case "warning":
		return SevWarning
	case "style":
		return SevStyle
	case "performance":
		return SevPerformance
	case "portability":
		return SevPortability
	default:
		return SevUnknown
	}
}

func (s Severity) String() string {
	if s < SevError || s > SevUnknown {
		return severityNames[SevUnknown]
	}
	return severityNames[s]
}

// Known reports whether s is one of the five counted buckets.
func (s Severity) Known() bool {
	return s >= SevError && s < SevUnknown
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	*s = ParseSeverity(string(b))
	return nil
}

// UnknownRule is the rule id used when a tool reports none.
const UnknownRule = "unknown"

// Issue is one normalized diagnostic. Line and Column are 0 when unknown.
type Issue struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Rule     string   `json:"rule"`
}

// RawOutput is what a runner captured from one tool invocation.
type RawOutput struct {
	Tool     string // tool identifier
	File     string // analyzed path, used when the tool reports none
	Data     []byte // stdout/stderr or generated document
	ExitCode int    // recorded, never interpreted
}

// ToolResult is one tool's normalized output for a session. IssuesCount
// always equals len(Issues); build it with NewToolResult.
type ToolResult struct {
	Tool        string  `json:"tool"`
	Timestamp   string  `json:"timestamp"`
	IssuesCount int     `json:"issues_count"`
	Issues      []Issue `json:"issues"`
}

// NewToolResult builds a ToolResult whose IssuesCount matches its issues.
func NewToolResult(tool, timestamp string, issues []Issue) ToolResult {
	if issues == nil {
		issues = []Issue{}
	}
	return ToolResult{
		Tool:        tool,
		Timestamp:   timestamp,
		IssuesCount: len(issues),
		Issues:      issues,
	}
}

func (r *ToolResult) UnmarshalJSON(b []byte) error {
	type plain ToolResult
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if p.IssuesCount != len(p.Issues) {
		return fmt.Errorf("tool result %q: issues_count %d does not match %d issues", p.Tool, p.IssuesCount, len(p.Issues))
	}
	if p.Issues == nil {
		p.Issues = []Issue{}
	}
	*r = ToolResult(p)
	return nil
}
