package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// execResult is a finished process. A non-zero exit is not an error here:
// analyzers exit non-zero whenever they report something.
type execResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

func execTool(ctx context.Context, dir, bin string, args ...string) (execResult, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := execResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("run %s: %w", bin, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, fmt.Errorf("run %s: %w\nstderr: %s", bin, err, stderr.String())
}

func joinOutput(r execResult) []byte {
	out := make([]byte, 0, len(r.Stdout)+len(r.Stderr)+1)
	out = append(out, r.Stdout...)
	if len(r.Stdout) > 0 && r.Stdout[len(r.Stdout)-1] != '\n' {
		out = append(out, '\n')
	}
	return append(out, r.Stderr...)
}
