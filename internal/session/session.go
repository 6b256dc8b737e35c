// Package session runs one analysis session: every enabled tool, then
// normalization, persistence, aggregation and the rendered summary.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Sena-ops/lintmerge/internal/adapters"
	"github.com/Sena-ops/lintmerge/internal/aggregate"
	"github.com/Sena-ops/lintmerge/internal/model"
	"github.com/Sena-ops/lintmerge/internal/report"
	"github.com/Sena-ops/lintmerge/internal/sarif"
	"github.com/Sena-ops/lintmerge/internal/scanner"
	"github.com/Sena-ops/lintmerge/internal/store"
)

// TimestampLayout formats session identifiers.
const TimestampLayout = "20060102_150405"

func NewTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

type Session struct {
	Runner    scanner.Runner
	Logger    *zap.SugaredLogger
	OutputDir string
	Jobs      int
	Timeout   time.Duration
	SARIF     bool
	Now       func() time.Time
}

// Plan is what to analyze in one session.
type Plan struct {
	Timestamp string
	Tools     []string
	Request   scanner.Request
	Meta      report.Metadata
}

// Outcome is everything a finished session produced.
type Outcome struct {
	Timestamp   string
	Results     []model.ToolResult
	Summary     aggregate.Summary
	Document    report.Document
	SummaryPath string
	SARIFPath   string
}

// Run executes every tool in plan concurrently and aggregates their results
// in plan order. Tool failures degrade to zero-issue results; only failing
// to write the summary is returned as an error.
func (s *Session) Run(ctx context.Context, plan Plan) (Outcome, error) {
	log := s.logger()
	ts := plan.Timestamp
	if ts == "" {
		ts = NewTimestamp(s.now())
	}
	req := plan.Request
	req.Timestamp = ts
	if req.OutputDir == "" {
		req.OutputDir = s.OutputDir
	}

	results := make([]model.ToolResult, len(plan.Tools))
	var g errgroup.Group
	g.SetLimit(max(s.Jobs, 1))
	for i, tool := range plan.Tools {
		g.Go(func() error {
			results[i] = s.runTool(ctx, tool, req)
			return nil
		})
	}
	// runTool absorbs every failure, so Wait has nothing to report.
	_ = g.Wait()

	for _, r := range results {
		path, err := store.WriteToolResult(s.OutputDir, r)
		if err != nil {
			log.Errorw("failed to save tool result", "tool", r.Tool, "error", err)
			continue
		}
		log.Infow("tool finished", "tool", r.Tool, "issues", r.IssuesCount, "file", path)
	}

	meta := plan.Meta
	meta.Timestamp = ts
	if meta.Tools == nil {
		meta.Tools = plan.Tools
	}
	out, err := s.finish(results, meta)
	if err != nil {
		return out, err
	}

	if s.SARIF {
		path, err := sarif.Export(results, s.OutputDir, "lintmerge_"+ts)
		if err != nil {
			log.Errorw("failed to export sarif", "error", err)
		} else {
			out.SARIFPath = path
		}
	}
	return out, nil
}

// Resummarize rebuilds the summary of a persisted session. Unreadable
// result files count as tools with no issues.
func (s *Session) Resummarize(timestamp string, order []string, meta report.Metadata) (Outcome, error) {
	results, err := store.LoadSession(s.OutputDir, timestamp, order)
	if errors.Is(err, store.ErrSessionNotFound) {
		return Outcome{Timestamp: timestamp}, err
	}
	if err != nil {
		s.logger().Warnw("some tool results could not be read, reporting no issues for them", "timestamp", timestamp, "error", err)
	}
	meta.Timestamp = timestamp
	if meta.Tools == nil {
		for _, r := range results {
			meta.Tools = append(meta.Tools, r.Tool)
		}
	}
	return s.finish(results, meta)
}

func (s *Session) finish(results []model.ToolResult, meta report.Metadata) (Outcome, error) {
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = s.now()
	}
	sum := aggregate.Aggregate(results)
	doc := report.Assemble(sum, results, meta)
	out := Outcome{
		Timestamp: meta.Timestamp,
		Results:   results,
		Summary:   sum,
		Document:  doc,
	}

	if err := os.MkdirAll(s.OutputDir, 0o755); err != nil {
		return out, fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.OutputDir, report.SummaryName(meta.Timestamp))
	if err := os.WriteFile(path, []byte(report.RenderMarkdown(doc)), 0o644); err != nil {
		return out, fmt.Errorf("write summary: %w", err)
	}
	out.SummaryPath = path
	return out, nil
}

func (s *Session) runTool(ctx context.Context, tool string, req scanner.Request) model.ToolResult {
	log := s.logger().With("tool", tool)
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	if !adapters.Supported(tool) {
		log.Warnw("no normalizer for tool, skipping", "error", adapters.ErrUnsupportedTool)
		return model.NewToolResult(tool, req.Timestamp, nil)
	}

	start := s.now()
	raws, err := s.Runner.Run(ctx, tool, req)
	if err != nil {
		log.Warnw("tool failed, reporting no issues", "error", err)
		return model.NewToolResult(tool, req.Timestamp, nil)
	}
	log.Debugw("tool ran", "outputs", len(raws), "elapsed", s.now().Sub(start))

	issues := []model.Issue{}
	for _, raw := range raws {
		found, err := adapters.Normalize(tool, raw)
		if err != nil {
			log.Warnw("could not normalize output", "file", raw.File, "exit_code", raw.ExitCode, "error", err)
		}
		issues = append(issues, found...)
	}
	return model.NewToolResult(tool, req.Timestamp, issues)
}

func (s *Session) logger() *zap.SugaredLogger {
	if s.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return s.Logger
}

func (s *Session) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
