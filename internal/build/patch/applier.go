package patch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// Applier applies patch files to a source tree through an external
// version-control binary.
type Applier struct {
	gitBinary string
}

// NewApplier creates a new patch applier that shells out to gitBinary.
func NewApplier(gitBinary string) *Applier {
	return &Applier{gitBinary: gitBinary}
}

// ApplyAll applies every regular file under patchDir, in name order, against
// projectDir. A patch that does not apply cleanly is logged and skipped; the
// process result is deliberately discarded so that a partially patched tree
// does not abort the build. Returns the names of the patches attempted.
func (a *Applier) ApplyAll(ctx context.Context, projectDir, patchDir string) ([]string, error) {
	entries, err := os.ReadDir(patchDir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.With("patch_dir", patchDir).Info("no patch directory found, skipping patch application")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read patch directory %s: %w", patchDir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	slog.With("count", len(names), "patch_dir", patchDir).Info("applying patches")

	for _, name := range names {
		a.apply(ctx, projectDir, filepath.Join(patchDir, name))
	}

	return names, nil
}

func (a *Applier) apply(ctx context.Context, projectDir, patchPath string) {
	slog.With("patch", filepath.Base(patchPath)).Info("applying patch")

	cmd := exec.CommandContext(ctx, a.gitBinary, "apply", patchPath)
	cmd.Dir = projectDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Result intentionally ignored: already-applied or conflicting patches
	// must not fail the build.
	if err := cmd.Run(); err != nil {
		slog.With("patch", filepath.Base(patchPath), "err", err.Error()).Warn("patch did not apply cleanly, continuing")
	}
}
