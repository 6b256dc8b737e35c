package scanner

import (
	"context"

	"github.com/Sena-ops/lintmerge/internal/config"
	"github.com/Sena-ops/lintmerge/internal/model"
)

const toolCppcheck = "cppcheck"

// RunCppcheck runs cppcheck over the configured target directory. The XML
// report arrives on stderr.
func RunCppcheck(ctx context.Context, cfg config.Cppcheck, req Request) ([]model.RawOutput, error) {
	res, err := execTool(ctx, req.Root, cfg.Binary, cppcheckArgs(cfg, req)...)
	if err != nil {
		return nil, err
	}
	return []model.RawOutput{{
		Tool:     toolCppcheck,
		File:     cfg.Target,
		Data:     res.Stderr,
		ExitCode: res.ExitCode,
	}}, nil
}

func cppcheckArgs(cfg config.Cppcheck, req Request) []string {
	args := []string{}
	if cfg.Enable != "" {
		args = append(args, "--enable="+cfg.Enable)
	}
	if req.Standard != "" {
		args = append(args, "--std="+req.Standard)
	}
	if cfg.Platform != "" {
		args = append(args, "--platform="+cfg.Platform)
	}
	if cfg.Inconclusive {
		args = append(args, "--inconclusive")
	}
	args = append(args, "--inline-suppr", "--xml", "--xml-version=2")
	for _, dir := range req.IncludeDirs {
		args = append(args, "-I", dir)
	}
	for _, s := range cfg.Suppress {
		args = append(args, "--suppress="+s)
	}
	return append(args, cfg.Target)
}
