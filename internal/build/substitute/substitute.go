package substitute

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Rule is a single literal replacement applied to matching files.
type Rule struct {
	From string
	To   string
}

// Result summarizes a substitution pass over a tree.
type Result struct {
	FilesScanned  int
	FilesModified int
	Replacements  int
}

// Walker performs literal in-place substitutions over a source tree.
type Walker struct {
	extensions []string
	exempt     []string
	rules      []Rule
}

// NewWalker creates a walker that rewrites files whose name ends in one of
// extensions, skipping files whose path ends with one of the exempt
// suffixes.
func NewWalker(extensions, exempt []string, rules []Rule) *Walker {
	return &Walker{
		extensions: extensions,
		exempt:     exempt,
		rules:      rules,
	}
}

// Run walks root and applies the rules to every matching file. A missing
// root is not an error: there is simply nothing to substitute.
func (w *Walker) Run(ctx context.Context, root string) (Result, error) {
	var result Result

	if _, err := os.Stat(root); os.IsNotExist(err) {
		slog.With("root", root).Info("substitution root not found, nothing to do")
		return result, nil
	}

	slog.With("root", root, "rules", len(w.rules)).Info("running substitutions")

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !w.matches(path) {
			return nil
		}

		result.FilesScanned++
		replaced, err := w.rewrite(path)
		if err != nil {
			return err
		}
		if replaced > 0 {
			result.FilesModified++
			result.Replacements += replaced
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("substitution pass over %s failed: %w", root, err)
	}

	slog.With(
		"scanned", result.FilesScanned,
		"modified", result.FilesModified,
		"replacements", result.Replacements,
	).Info("substitutions complete")

	return result, nil
}

func (w *Walker) matches(path string) bool {
	name := filepath.Base(path)
	matched := false
	for _, ext := range w.extensions {
		if strings.HasSuffix(name, ext) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	slashed := filepath.ToSlash(path)
	for _, suffix := range w.exempt {
		if strings.HasSuffix(slashed, suffix) {
			return false
		}
	}
	return true
}

// rewrite applies the rules to a single file and writes the content back in
// place, with the handle flushed and synced before release. Files with no
// occurrences are left untouched.
func (w *Walker) rewrite(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	updated, replaced := Apply(content, w.rules)
	if replaced == 0 {
		return 0, nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s for rewrite: %w", path, err)
	}

	if _, err := f.Write(updated); err != nil {
		f.Close()
		return 0, fmt.Errorf("failed to rewrite %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return 0, fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to close %s: %w", path, err)
	}

	return replaced, nil
}

// Apply replaces every literal occurrence of each rule in content and
// returns the updated content with the total occurrence count.
func Apply(content []byte, rules []Rule) ([]byte, int) {
	total := 0
	for _, rule := range rules {
		count := bytes.Count(content, []byte(rule.From))
		if count == 0 {
			continue
		}
		content = bytes.ReplaceAll(content, []byte(rule.From), []byte(rule.To))
		total += count
	}
	return content, total
}
