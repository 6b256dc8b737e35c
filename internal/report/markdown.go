package report

import (
	"fmt"
	"strings"
)

var severityLabels = map[string]string{
	"error":       "Error",
	"warning":     "Warning",
	"style":       "Style",
	"performance": "Performance",
	"portability": "Portability",
}

// RenderMarkdown serializes a Document as the session summary.
func RenderMarkdown(doc Document) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s\n\n", doc.Title))
	b.WriteString(fmt.Sprintf("**Generated**: %s\n", doc.GeneratedAt.Format("2006-01-02 15:04:05")))
	if doc.Target != "" {
		b.WriteString(fmt.Sprintf("**Target**: %s\n", doc.Target))
	}
	b.WriteString(fmt.Sprintf("**Total issues**: %d\n\n", doc.TotalIssues))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Tool | Issues | Status |\n")
	b.WriteString("|------|--------|--------|\n")
	for _, t := range doc.Tools {
		b.WriteString(fmt.Sprintf("| %s | %d | %s |\n", t.Tool, t.IssuesCount, t.Status))
	}

	b.WriteString("\n## Breakdown\n\n")
	b.WriteString("| Severity | Count |\n")
	b.WriteString("|----------|-------|\n")
	for _, s := range doc.Severities {
		label := severityLabels[s.Severity.String()]
		if label == "" {
			label = s.Severity.String()
		}
		b.WriteString(fmt.Sprintf("| %s | %d |\n", label, s.Count))
	}

	b.WriteString("\n## Top issues\n\n")
	if len(doc.TopRules) == 0 {
		b.WriteString("No issues found.\n")
	}
	for _, r := range doc.TopRules {
		b.WriteString(fmt.Sprintf("%d. **%s**: %d\n", r.Rank, r.Rule, r.Count))
	}

	b.WriteString("\n## Recommended actions\n\n")
	for i, a := range doc.Actions {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, a))
	}

	b.WriteString("\n## Detailed reports\n\n")
	for _, ref := range doc.References {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", ref.File, ref.File))
	}

	b.WriteString("\n## Settings\n\n")
	if doc.Settings.Standard != "" {
		b.WriteString(fmt.Sprintf("- **Standard**: %s\n", doc.Settings.Standard))
	}
	if doc.Settings.Scope != "" {
		b.WriteString(fmt.Sprintf("- **Scope**: %s\n", doc.Settings.Scope))
	}
	if len(doc.Settings.Tools) > 0 {
		b.WriteString(fmt.Sprintf("- **Tools**: %s\n", strings.Join(doc.Settings.Tools, ", ")))
	}
	if len(doc.Settings.ConfigFiles) > 0 {
		b.WriteString(fmt.Sprintf("- **Config files**: %s\n", strings.Join(doc.Settings.ConfigFiles, ", ")))
	}

	b.WriteString("\n---\n*Generated by lintmerge*\n")
	return b.String()
}
