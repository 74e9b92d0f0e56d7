// Package git lists changed files by shelling out to the git CLI.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ericfisherdev/ghbots/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ChangedFilesSource = (*Differ)(nil)

// RunFunc executes git with args in dir and returns stdout.
type RunFunc func(ctx context.Context, dir string, args ...string) ([]byte, error)

// Differ lists the files changed between a base revision and the working tree.
type Differ struct {
	Dir string  // Repository checkout; empty means the current directory.
	Run RunFunc // Defaults to the git binary on PATH.
}

// NewDiffer returns a Differ rooted at dir.
func NewDiffer(dir string) *Differ {
	return &Differ{Dir: dir, Run: gitOutput}
}

// ChangedFiles runs `git diff --name-only -z <baseRef>..` and returns the
// distinct non-empty paths in output order. Paths are NUL-terminated so
// git does not quote names with non-ASCII or special characters.
func (d *Differ) ChangedFiles(ctx context.Context, baseRef string) ([]string, error) {
	if baseRef == "" {
		return nil, errors.New("git diff: base revision is required")
	}

	run := d.Run
	if run == nil {
		run = gitOutput
	}

	out, err := run(ctx, d.Dir, "diff", "--name-only", "-z", baseRef+"..")
	if err != nil {
		return nil, fmt.Errorf("git diff --name-only %s..: %w", baseRef, err)
	}

	return parseNameOnly(string(out)), nil
}

func parseNameOnly(out string) []string {
	seen := make(map[string]bool)
	var files []string
	for _, name := range strings.Split(out, "\x00") {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		files = append(files, name)
	}
	return files
}

func gitOutput(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return out, nil
}
