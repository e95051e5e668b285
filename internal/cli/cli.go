package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/born-ml/gradgraph/internal/config"
	"github.com/born-ml/gradgraph/internal/driver"
)

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is an error that carries a process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

// varFlag collects repeated -var name=value flags in order.
type varFlag struct {
	bindings config.Bindings
}

func (f *varFlag) String() string {
	parts := make([]string, len(f.bindings))
	for i, b := range f.bindings {
		parts[i] = b.Name + "=" + strconv.FormatFloat(b.Value, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (f *varFlag) Set(s string) error {
	name, raw, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return errors.New("expected name=value")
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("value of %s: %w", name, err)
	}
	f.bindings = append(f.bindings, config.Binding{Name: name, Value: value})
	return nil
}

// Parse processes command-line arguments. It returns a validated
// driver.Config, a boolean indicating the program should exit cleanly
// (help was printed), or an *ExitError.
func Parse(args []string, output io.Writer) (*driver.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gradgraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gradgraph - evaluate an expression graph and its gradients.

Usage:
  gradgraph [options] [PROBLEM.yaml]
  gradgraph -e "(x + y) * (y + 3)" -var x=1 -var y=2
  gradgraph -demo matmul -check

Arguments:
  PROBLEM.yaml
    Problem file with variables, constants, expression and check settings.

Options:
`)
		flagSet.PrintDefaults()
	}

	var vars varFlag
	exprFlag := flagSet.String("e", "", "Expression to evaluate, e.g. \"log(x) * y\".")
	flagSet.Var(&vars, "var", "Variable binding name=value for -e (repeatable).")
	demoFlag := flagSet.String("demo", "", "Run a built-in graph. Options: 'simple' or 'matmul'.")
	checkFlag := flagSet.Bool("check", false, "Compare derivatives with finite differences.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, usageError("expected at most one problem file, got %d arguments", flagSet.NArg())
	}
	path := flagSet.Arg(0)

	if path == "" && *exprFlag == "" && *demoFlag == "" {
		slog.Debug("Nothing to evaluate, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	if _, ok := levels[logLevel]; !ok {
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	cfg, err := driver.NewConfig(driver.Config{
		ProblemPath: path,
		Expression:  *exprFlag,
		Vars:        vars.bindings,
		Demo:        strings.ToLower(*demoFlag),
		Check:       *checkFlag,
		LogLevel:    logLevel,
		LogFormat:   logFormat,
	})
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
