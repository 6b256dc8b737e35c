package adapters

import (
	"strconv"
	"strings"

	"github.com/Sena-ops/lintmerge/internal/model"
)

// ParseClangTidyLine turns one compiler-style diagnostic line into an Issue.
// The second return is false when the line is not a diagnostic.
// The file is left empty; callers supply the analyzed path.
func ParseClangTidyLine(line string) (model.Issue, bool) {
	isWarning := strings.Contains(line, "warning:")
	if !isWarning && !strings.Contains(line, "error:") {
		return model.Issue{}, false
	}

	sev := model.SevError
	if isWarning {
		sev = model.SevWarning
	}

	parts := strings.Split(line, ":")
	return model.Issue{
		Line:     positional(parts, 1),
		Column:   positional(parts, 2),
		Severity: sev,
		Message:  strings.TrimSpace(line),
		Rule:     bracketRule(line),
	}, true
}

// ParseClangTidyBytes parses clang-tidy output line by line. Lines have no
// length limit.
func ParseClangTidyBytes(b []byte, file string) []model.Issue {
	out := make([]model.Issue, 0, 16)
	for _, line := range strings.Split(string(b), "\n") {
		issue, ok := ParseClangTidyLine(strings.TrimRight(line, "\r"))
		if !ok {
			continue
		}
		issue.File = file
		out = append(out, issue)
	}
	return out
}

// bracketRule returns the text between the last '[' and the next ']'.
func bracketRule(line string) string {
	open := strings.LastIndex(line, "[")
	if open < 0 {
		return model.UnknownRule
	}
	end := strings.Index(line[open+1:], "]")
	if end < 0 {
		return model.UnknownRule
	}
	return line[open+1 : open+1+end]
}

func positional(parts []string, idx int) int {
	if idx >= len(parts) {
		return 0
	}
	return safeLine(atoi(parts[idx]))
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
