package hipify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Options is the invocation contract of the external hipify tool. The
// translation itself (CUDA construct mapping, glob evaluation) is owned by
// that tool; the driver only supplies the parameters.
type Options struct {
	ProjectDirectory string
	OutputDirectory  string
	Includes         []string
	Ignores          []string
	OutOfPlaceOnly   bool
	JSONSettings     string
	AddStaticCasts   bool
}

// Runner dispatches a hipify invocation.
type Runner interface {
	Run(ctx context.Context, opts Options) error
}

// ExecRunner invokes the hipify tool as an external command.
type ExecRunner struct {
	command string
}

// NewExecRunner creates a runner that shells out to the given hipify command.
func NewExecRunner(command string) *ExecRunner {
	return &ExecRunner{command: command}
}

func (r *ExecRunner) Run(ctx context.Context, opts Options) error {
	args := Arguments(opts)

	slog.With("command", r.command, "project_dir", opts.ProjectDirectory, "out_of_place_only", opts.OutOfPlaceOnly).Info("invoking hipify")

	cmd := exec.CommandContext(ctx, r.command, args...)
	cmd.Dir = opts.ProjectDirectory
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", r.command, err)
	}
	return nil
}

// Arguments renders the options as command-line arguments for the hipify
// tool.
func Arguments(opts Options) []string {
	args := []string{
		"--project-directory", opts.ProjectDirectory,
		"--output-directory", opts.OutputDirectory,
	}
	for _, glob := range opts.Includes {
		args = append(args, "--includes", glob)
	}
	for _, glob := range opts.Ignores {
		args = append(args, "--ignores", glob)
	}
	if opts.OutOfPlaceOnly {
		args = append(args, "--out-of-place-only")
	}
	if opts.JSONSettings != "" {
		args = append(args, "--json-settings", opts.JSONSettings)
	}
	if opts.AddStaticCasts {
		args = append(args, "--add-static-casts")
	}
	return args
}
