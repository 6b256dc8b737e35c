package adapters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sena-ops/lintmerge/internal/model"
)

const (
	ToolClangTidy     = "clang-tidy"
	ToolCppcheck      = "cppcheck"
	ToolClangAnalyzer = "clang-analyzer"
)

var (
	// ErrParse marks a document that could not be decoded. It is never fatal.
	ErrParse = errors.New("parse failure")
	// ErrUnsupportedTool is returned for tool ids without a normalizer.
	ErrUnsupportedTool = errors.New("unsupported tool")
)

type NormalizeFunc func(raw model.RawOutput) ([]model.Issue, error)

var normalizers = map[string]NormalizeFunc{
	ToolClangTidy: func(raw model.RawOutput) ([]model.Issue, error) {
		return ParseClangTidyBytes(raw.Data, raw.File), nil
	},
	ToolCppcheck: func(raw model.RawOutput) ([]model.Issue, error) {
		return ParseCppcheckBytes(raw.Data)
	},
	ToolClangAnalyzer: func(raw model.RawOutput) ([]model.Issue, error) {
		return ParsePlistBytes(raw.Data, raw.File)
	},
}

// Normalize converts one raw tool output into issues. A non-nil error is
// informational: the returned slice is always usable.
func Normalize(tool string, raw model.RawOutput) ([]model.Issue, error) {
	fn, ok := normalizers[tool]
	if !ok {
		return []model.Issue{}, fmt.Errorf("%w: %q", ErrUnsupportedTool, tool)
	}
	return fn(raw)
}

// Supported reports whether tool has a normalizer.
func Supported(tool string) bool {
	_, ok := normalizers[tool]
	return ok
}

func safeLine(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
