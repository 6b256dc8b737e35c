package scanner

import (
	"context"
	"fmt"

	"github.com/Sena-ops/lintmerge/internal/config"
	"github.com/Sena-ops/lintmerge/internal/model"
)

const toolClangTidy = "clang-tidy"

// RunClangTidy runs clang-tidy once per header and returns each run's
// combined output tagged with the header path.
func RunClangTidy(ctx context.Context, cfg config.ClangTidy, req Request) ([]model.RawOutput, error) {
	if len(req.Headers) == 0 {
		return nil, fmt.Errorf("no headers given to clang-tidy")
	}

	out := make([]model.RawOutput, 0, len(req.Headers))
	for _, file := range req.Headers {
		res, err := execTool(ctx, req.Root, cfg.Binary, clangTidyArgs(cfg, req, file)...)
		if err != nil {
			return out, err
		}
		out = append(out, model.RawOutput{
			Tool:     toolClangTidy,
			File:     file,
			Data:     joinOutput(res),
			ExitCode: res.ExitCode,
		})
	}
	return out, nil
}

func clangTidyArgs(cfg config.ClangTidy, req Request, file string) []string {
	args := []string{}
	if cfg.ConfigFile != "" {
		args = append(args, "--config-file="+cfg.ConfigFile)
	}
	if cfg.HeaderFilter != "" {
		args = append(args, "--header-filter="+cfg.HeaderFilter)
	}
	args = append(args, "--format-style=file")
	if cfg.Fix {
		args = append(args, "--fix")
	}
	args = append(args, file, "--")
	return append(args, compilerFlags(req)...)
}

func compilerFlags(req Request) []string {
	var flags []string
	if req.Standard != "" {
		flags = append(flags, "-std="+req.Standard)
	}
	for _, dir := range req.IncludeDirs {
		flags = append(flags, "-I"+dir)
	}
	return flags
}
