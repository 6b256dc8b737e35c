// Package aggregate folds per-tool results into session statistics.
package aggregate

import (
	"sort"

	"github.com/Sena-ops/lintmerge/internal/model"
)

// TopN is the length of the top-rules ranking.
const TopN = 5

// RuleCount is the number of issues reported under one rule.
type RuleCount struct {
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

// Summary holds the statistics of one session.
type Summary struct {
	TotalIssues    int                    `json:"total_issues"`
	SeverityCounts map[model.Severity]int `json:"severity_counts"`
	RuleCounts     map[string]int         `json:"rule_counts"`
	TopRules       []RuleCount            `json:"top_rules"`
}

// Aggregate computes a Summary over results in the given order.
// TotalIssues trusts each result's IssuesCount. Unknown severities count
// toward the total but not toward SeverityCounts. TopRules ties keep the
// order in which rules were first seen.
func Aggregate(results []model.ToolResult) Summary {
	sum := Summary{
		SeverityCounts: make(map[model.Severity]int, len(model.KnownSeverities)),
		RuleCounts:     map[string]int{},
		TopRules:       []RuleCount{},
	}
	for _, s := range model.KnownSeverities {
		sum.SeverityCounts[s] = 0
	}

	var order []string
	for _, r := range results {
		sum.TotalIssues += r.IssuesCount
		for _, issue := range r.Issues {
			if issue.Severity.Known() {
				sum.SeverityCounts[issue.Severity]++
			}
			if _, seen := sum.RuleCounts[issue.Rule]; !seen {
				order = append(order, issue.Rule)
			}
			sum.RuleCounts[issue.Rule]++
		}
	}

	ranked := make([]RuleCount, 0, len(order))
	for _, rule := range order {
		ranked = append(ranked, RuleCount{Rule: rule, Count: sum.RuleCounts[rule]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}
	sum.TopRules = ranked
	return sum
}
