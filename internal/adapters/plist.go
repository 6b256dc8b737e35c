package adapters

import (
	"fmt"
	"strings"

	"howett.net/plist"

	"github.com/Sena-ops/lintmerge/internal/model"
)

// clang --analyze -analyzer-output=plist-multi-file
type analyzerPlist struct {
	Files       []string `plist:"files"`
	Diagnostics []struct {
		Description string `plist:"description"`
		Category    string `plist:"category"`
		Type        string `plist:"type"`
		CheckName   string `plist:"check_name"`
		Location    struct {
			Line int `plist:"line"`
			Col  int `plist:"col"`
			File int `plist:"file"`
		} `plist:"location"`
	} `plist:"diagnostics"`
}

// ParsePlistBytes converts a Clang Static Analyzer report. Every analyzer
// diagnostic is a warning; file indexes outside the files table fall back
// to the analyzed path.
func ParsePlistBytes(b []byte, file string) ([]model.Issue, error) {
	var doc analyzerPlist
	if _, err := plist.Unmarshal(b, &doc); err != nil {
		return []model.Issue{}, fmt.Errorf("%w: analyzer plist: %v", ErrParse, err)
	}

	out := make([]model.Issue, 0, len(doc.Diagnostics))
	for _, d := range doc.Diagnostics {
		path := file
		if idx := d.Location.File; idx >= 0 && idx < len(doc.Files) {
			path = doc.Files[idx]
		}
		rule := strings.TrimSpace(d.CheckName)
		if rule == "" {
			rule = model.UnknownRule
		}
		out = append(out, model.Issue{
			File:     path,
			Line:     safeLine(d.Location.Line),
			Column:   safeLine(d.Location.Col),
			Severity: model.SevWarning,
			Message:  firstNonEmpty(d.Description, d.Type),
			Rule:     rule,
		})
	}
	return out, nil
}
