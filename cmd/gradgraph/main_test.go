package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradgraph/internal/autodiff/ops"
	"github.com/born-ml/gradgraph/internal/cli"
)

func TestRun_Demo(t *testing.T) {
	var out, logs bytes.Buffer
	err := run(&out, &logs, []string{"-demo", "simple"})
	require.NoError(t, err)
	require.Equal(t, "f = 15\ndf/dx = 5\ndf/dy = 8\n", out.String())
}

func TestRun_ProblemFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.yaml")
	doc := "variables:\n  x: 0.5\n  y: 4\nexpression: pow(y, x) + unused\nconstants:\n  unused: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	var out, logs bytes.Buffer
	err := run(&out, &logs, []string{"-check", path})
	require.NoError(t, err)
	require.Contains(t, out.String(), "f = 2\n")
	require.Contains(t, out.String(), "gradient check")
}

func TestRun_DebugLogging(t *testing.T) {
	var out, logs bytes.Buffer
	err := run(&out, &logs, []string{"-log-level", "debug", "-log-format", "json", "-e", "x + 1", "-var", "x=1", "-var", "z=2"})
	require.NoError(t, err)
	require.Contains(t, logs.String(), `"msg":"Graph built."`)
	require.Contains(t, logs.String(), `"msg":"Variable is not referenced by the expression."`)
}

func TestRun_ShouldExit(t *testing.T) {
	var out, logs bytes.Buffer
	require.NoError(t, run(&out, &logs, []string{"-h"}))
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_UsageError(t *testing.T) {
	var out, logs bytes.Buffer
	err := run(&out, &logs, []string{"--this-is-not-a-valid-flag"})

	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, cli.ExitUsage, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_EvaluationError(t *testing.T) {
	var out, logs bytes.Buffer
	err := run(&out, &logs, []string{"-e", "x / (y - y)", "-var", "x=1", "-var", "y=3"})
	require.Error(t, err)
	require.True(t, errors.Is(err, ops.ErrDomain))

	var exitErr *cli.ExitError
	require.False(t, errors.As(err, &exitErr))
}
