package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Sena-ops/lintmerge/internal/config"
	"github.com/Sena-ops/lintmerge/internal/model"
)

const toolClangAnalyzer = "clang-analyzer"

// RunClangAnalyzer runs `clang --analyze` per header. Each header gets its
// own plist directory under {OutputDir}/clang-analyzer_{Timestamp}/ so every
// report maps back to the header it came from. Per-file compile failures are
// ignored; the plists that were produced are returned.
func RunClangAnalyzer(ctx context.Context, cfg config.ClangAnalyzer, req Request) ([]model.RawOutput, error) {
	plistRoot, err := filepath.Abs(filepath.Join(req.OutputDir, toolClangAnalyzer+"_"+req.Timestamp))
	if err != nil {
		return nil, err
	}

	out := make([]model.RawOutput, 0, len(req.Headers))
	for i, file := range req.Headers {
		plistDir := filepath.Join(plistRoot, fmt.Sprintf("%04d", i))
		if err := os.MkdirAll(plistDir, 0o755); err != nil {
			return out, fmt.Errorf("create plist dir: %w", err)
		}
		if _, err := execTool(ctx, req.Root, cfg.Binary, clangAnalyzerArgs(cfg, req, plistDir, file)...); err != nil {
			return out, err
		}

		matches, err := filepath.Glob(filepath.Join(plistDir, "*.plist"))
		if err != nil {
			return out, err
		}
		sort.Strings(matches)
		for _, p := range matches {
			b, err := os.ReadFile(p)
			if err != nil {
				return out, fmt.Errorf("read plist: %w", err)
			}
			out = append(out, model.RawOutput{Tool: toolClangAnalyzer, File: file, Data: b})
		}
	}
	return out, nil
}

func clangAnalyzerArgs(cfg config.ClangAnalyzer, req Request, plistDir, file string) []string {
	args := []string{
		"--analyze",
		"-Xclang", "-analyzer-output=plist-multi-file",
		"-Xclang", "-analyzer-output-dir=" + plistDir,
	}
	if cfg.Checkers != "" {
		args = append(args, "-Xclang", "-analyzer-checker="+cfg.Checkers)
	}
	args = append(args, compilerFlags(req)...)
	return append(args, file)
}
