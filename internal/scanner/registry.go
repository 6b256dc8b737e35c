package scanner

import (
	"context"
	"fmt"

	"github.com/Sena-ops/lintmerge/internal/config"
	"github.com/Sena-ops/lintmerge/internal/model"
)

// Request is what every tool needs to know about the session.
type Request struct {
	Root        string
	OutputDir   string
	Timestamp   string
	Headers     []string
	Standard    string
	IncludeDirs []string
}

// Runner invokes one external tool and returns its raw output.
type Runner interface {
	Run(ctx context.Context, tool string, req Request) ([]model.RawOutput, error)
}

type ScannerFunc func(ctx context.Context, req Request) ([]model.RawOutput, error)

// Registry is the exec-backed Runner.
type Registry struct {
	scanners map[string]ScannerFunc
}

func NewRegistry(tools config.Tools) *Registry {
	return &Registry{scanners: map[string]ScannerFunc{
		toolClangTidy: func(ctx context.Context, req Request) ([]model.RawOutput, error) {
			return RunClangTidy(ctx, tools.ClangTidy, req)
		},
		toolCppcheck: func(ctx context.Context, req Request) ([]model.RawOutput, error) {
			return RunCppcheck(ctx, tools.Cppcheck, req)
		},
		toolClangAnalyzer: func(ctx context.Context, req Request) ([]model.RawOutput, error) {
			return RunClangAnalyzer(ctx, tools.ClangAnalyzer, req)
		},
	}}
}

func (r *Registry) Run(ctx context.Context, tool string, req Request) ([]model.RawOutput, error) {
	fn, ok := r.scanners[tool]
	if !ok {
		return nil, fmt.Errorf("scanner '%s' not supported", tool)
	}
	return fn(ctx, req)
}
