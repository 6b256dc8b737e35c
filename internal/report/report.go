// Package report turns session statistics into a renderable document.
package report

import (
	"time"

	"github.com/Sena-ops/lintmerge/internal/aggregate"
	"github.com/Sena-ops/lintmerge/internal/model"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metadata describes the session a report belongs to.
type Metadata struct {
	Timestamp   string
	GeneratedAt time.Time
	Project     string
	Target      string
	Standard    string
	Scope       string
	ConfigFiles []string
	Tools       []string
}

type ToolRow struct {
	Tool        string `json:"tool"`
	IssuesCount int    `json:"issues_count"`
	Status      string `json:"status"`
}

type SeverityRow struct {
	Severity model.Severity `json:"severity"`
	Count    int            `json:"count"`
}

type RankedRule struct {
	Rank  int    `json:"rank"`
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

// Reference names the per-tool artifact persisted for the session.
type Reference struct {
	Tool string `json:"tool"`
	Name string `json:"name"`
	File string `json:"file"`
}

// Settings records the analysis configuration echoed in the report.
type Settings struct {
	Standard    string   `json:"standard"`
	Scope       string   `json:"scope"`
	ConfigFiles []string `json:"config_files"`
	Tools       []string `json:"tools"`
}

// Document is the format-independent session report.
type Document struct {
	Title       string        `json:"title"`
	Timestamp   string        `json:"timestamp"`
	GeneratedAt time.Time     `json:"generated_at"`
	Project     string        `json:"project"`
	Target      string        `json:"target"`
	TotalIssues int           `json:"total_issues"`
	Tools       []ToolRow     `json:"tools"`
	Severities  []SeverityRow `json:"severities"`
	TopRules    []RankedRule  `json:"top_rules"`
	Actions     []string      `json:"actions"`
	References  []Reference   `json:"references"`
	Settings    Settings      `json:"settings"`
}

var recommendedActions = []string{
	"High priority: fix error-level issues first",
	"Medium priority: work through warnings",
	"Low priority: consider style and performance improvements",
	"Ongoing: run static analysis regularly",
}

// ArtifactName is the deterministic base name of a tool's session artifact.
func ArtifactName(tool, timestamp string) string {
	return tool + "_" + timestamp
}

// SummaryName is the file name of the rendered session summary.
func SummaryName(timestamp string) string {
	return "summary_" + timestamp + ".md"
}

// Assemble builds the document model. It performs no analysis of its own.
func Assemble(sum aggregate.Summary, results []model.ToolResult, meta Metadata) Document {
	project := meta.Project
	if project == "" {
		project = meta.Target
	}
	doc := Document{
		Title:       "Static Analysis Report",
		Timestamp:   meta.Timestamp,
		GeneratedAt: meta.GeneratedAt,
		Project:     project,
		Target:      meta.Target,
		TotalIssues: sum.TotalIssues,
		Tools:       make([]ToolRow, 0, len(results)),
		Severities:  make([]SeverityRow, 0, len(model.KnownSeverities)),
		TopRules:    make([]RankedRule, 0, len(sum.TopRules)),
		Actions:     append([]string(nil), recommendedActions...),
		References:  make([]Reference, 0, len(results)),
		Settings: Settings{
			Standard:    meta.Standard,
			Scope:       meta.Scope,
			ConfigFiles: meta.ConfigFiles,
			Tools:       meta.Tools,
		},
	}
	if project != "" {
		doc.Title = project + " " + doc.Title
	}

	for _, r := range results {
		status := StatusOK
		if r.IssuesCount < 0 {
			status = StatusError
		}
		doc.Tools = append(doc.Tools, ToolRow{Tool: r.Tool, IssuesCount: r.IssuesCount, Status: status})

		name := ArtifactName(r.Tool, meta.Timestamp)
		doc.References = append(doc.References, Reference{Tool: r.Tool, Name: name, File: name + ".json"})
	}

	for _, s := range model.KnownSeverities {
		doc.Severities = append(doc.Severities, SeverityRow{Severity: s, Count: sum.SeverityCounts[s]})
	}

	for i, rc := range sum.TopRules {
		doc.TopRules = append(doc.TopRules, RankedRule{Rank: i + 1, Rule: rc.Rule, Count: rc.Count})
	}
	return doc
}
