package sarif

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Sena-ops/lintmerge/internal/model"
)

const (
	Version = "2.1.0"
	Schema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
)

type Log struct {
	Version string `json:"version"`
	Schema  string `json:"$schema"`
	Runs    []Run  `json:"runs"`
}

type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

type Tool struct {
	Driver Driver `json:"driver"`
}

type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type Result struct {
	RuleID    string     `json:"ruleId"`
	Message   Message    `json:"message"`
	Level     string     `json:"level"` // error, warning, note
	Locations []Location `json:"locations"`
}

type Message struct {
	Text string `json:"text"`
}

type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           *Region          `json:"region,omitempty"`
}

type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region is omitted when the line is unknown.
type Region struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

// FromToolResults builds one SARIF run per tool, in input order.
func FromToolResults(results []model.ToolResult) *Log {
	runs := make([]Run, 0, len(results))
	for _, r := range results {
		issues := append([]model.Issue(nil), r.Issues...)
		SortIssues(issues)

		out := make([]Result, 0, len(issues))
		for _, i := range issues {
			out = append(out, toResult(i))
		}
		runs = append(runs, Run{
			Tool:    Tool{Driver: Driver{Name: r.Tool}},
			Results: out,
		})
	}
	return &Log{Version: Version, Schema: Schema, Runs: runs}
}

// Export writes the session as {outDir}/{fileBase}.sarif.
func Export(results []model.ToolResult, outDir, fileBase string) (string, error) {
	log := FromToolResults(results)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create sarif dir: %w", err)
	}
	outPath := filepath.Join(outDir, fileBase+".sarif")

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sarif: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write sarif: %w", err)
	}
	return outPath, nil
}

func SortIssues(is []model.Issue) {
	sort.SliceStable(is, func(i, j int) bool {
		if is[i].File == is[j].File {
			if is[i].Line == is[j].Line {
				return is[i].Rule < is[j].Rule
			}
			return is[i].Line < is[j].Line
		}
		return is[i].File < is[j].File
	})
}

func toResult(i model.Issue) Result {
	fileURI := toURI(i.File)
	if fileURI == "" {
		fileURI = "UNKNOWN"
	}
	var region *Region
	if i.Line > 0 {
		region = &Region{StartLine: i.Line, StartColumn: i.Column}
	}
	return Result{
		RuleID:  i.Rule,
		Level:   sevToLevel(i.Severity),
		Message: Message{Text: strings.TrimSpace(i.Message)},
		Locations: []Location{{
			PhysicalLocation: PhysicalLocation{
				ArtifactLocation: ArtifactLocation{URI: fileURI},
				Region:           region,
			},
		}},
	}
}

func sevToLevel(s model.Severity) string {
	switch s {
	case model.SevError:
		return "error"
	case model.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func toURI(p string) string {
	p = strings.TrimSpace(p)
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(p, "../")
	}
	return strings.TrimPrefix(p, "./")
}
