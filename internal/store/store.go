// Package store persists per-tool results as {tool}_{timestamp}.json.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Sena-ops/lintmerge/internal/model"
	"github.com/Sena-ops/lintmerge/internal/report"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrCorruptResult marks a persisted result that could not be read back.
	ErrCorruptResult = errors.New("corrupt tool result")
)

// ResultPath is where the result of tool in session timestamp is stored.
func ResultPath(dir, tool, timestamp string) string {
	return filepath.Join(dir, report.ArtifactName(tool, timestamp)+".json")
}

func WriteToolResult(dir string, r model.ToolResult) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := ResultPath(dir, r.Tool, r.Timestamp)
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s result: %w", r.Tool, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func ReadToolResult(path string) (model.ToolResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.ToolResult{}, err
	}
	var r model.ToolResult
	if err := json.Unmarshal(b, &r); err != nil {
		return model.ToolResult{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return r, nil
}

// LoadSession reads every persisted result of one session. When order is
// given, results follow it and unlisted tools come after, sorted by name.
//
// A result file that cannot be read stands in as a zero-issue result for
// its tool; the returned error then wraps ErrCorruptResult and the results
// are still complete. Only ErrSessionNotFound leaves results nil.
func LoadSession(dir, timestamp string, order []string) ([]model.ToolResult, error) {
	suffix := "_" + timestamp + ".json"
	matches, err := filepath.Glob(filepath.Join(dir, "*"+suffix))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrSessionNotFound, timestamp, dir)
	}

	rank := make(map[string]int, len(order))
	for i, tool := range order {
		rank[tool] = i
	}

	results := make([]model.ToolResult, 0, len(matches))
	var errs []error
	for _, m := range matches {
		r, err := ReadToolResult(m)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", ErrCorruptResult, err))
			r = model.NewToolResult(strings.TrimSuffix(filepath.Base(m), suffix), timestamp, nil)
		}
		if r.Timestamp != timestamp {
			continue
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		ri, iok := rank[results[i].Tool]
		rj, jok := rank[results[j].Tool]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return results[i].Tool < results[j].Tool
		}
	})
	return results, errors.Join(errs...)
}

// LatestTimestamp returns the newest session timestamp found in dir.
func LatestTimestamp(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	latest := ""
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "summary_") || !strings.HasSuffix(name, ".md") {
			continue
		}
		ts := strings.TrimSuffix(strings.TrimPrefix(name, "summary_"), ".md")
		if ts > latest {
			latest = ts
		}
	}
	if latest == "" {
		return "", fmt.Errorf("%w in %s", ErrSessionNotFound, dir)
	}
	return latest, nil
}
