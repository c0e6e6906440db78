package snippets

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/codebench-ai/codebench/internal/progress"
)

// defaultExcludes are directory names skipped during import walks.
var defaultExcludes = []string{
	".git",
	"node_modules",
	"vendor",
	"__pycache__",
	".codebench",
	"dist",
	"build",
	".next",
	"target",
	".venv",
	".idea",
	".vscode",
}

// languageByExt maps file extensions to snippet language tags. Files with
// other extensions are skipped.
var languageByExt = map[string]string{
	".py":   "python",
	".go":   "go",
	".js":   "javascript",
	".ts":   "typescript",
	".sh":   "bash",
	".rb":   "ruby",
	".rs":   "rust",
	".java": "java",
	".c":    "c",
	".cpp":  "cpp",
	".sql":  "sql",
	".html": "html",
	".css":  "css",
	".yaml": "yaml",
	".yml":  "yaml",
	".md":   "markdown",
}

const maxImportSize = 256 * 1024

// ImportOptions filter which files an import picks up.
type ImportOptions struct {
	Includes []string // glob patterns; empty includes everything
	Excludes []string // glob patterns; empty excludes nothing beyond defaults
}

// ImportReport summarizes an import run.
type ImportReport struct {
	Imported int
	Skipped  int
}

// ImportDir walks root and saves matching files as snippets. Files with
// unknown extensions, binary content, or above the size cap are skipped.
func ImportDir(ctx context.Context, store *Store, index *Index, root string, opts ImportOptions, reporter progress.Reporter) (*ImportReport, error) {
	if reporter == nil {
		reporter = progress.Nop{}
	}

	files, err := collectFiles(root, opts)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	reporter.Start(len(files))
	defer reporter.Finish()

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		reporter.Update(i+1, rel)

		sn, ok, err := snippetFromFile(path, rel)
		if err != nil {
			return report, err
		}
		if !ok {
			report.Skipped++
			continue
		}

		created, err := store.Create(ctx, *sn)
		if err != nil {
			return report, fmt.Errorf("importing %s: %w", rel, err)
		}
		if index != nil {
			if err := index.Add(ctx, *created); err != nil {
				return report, fmt.Errorf("indexing %s: %w", rel, err)
			}
		}
		report.Imported++
	}

	if index != nil {
		if err := index.Persist(); err != nil {
			return report, err
		}
	}
	return report, nil
}

func collectFiles(root string, opts ImportOptions) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && isExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if !matchesInclude(rel, opts.Includes) || matchesAny(rel, opts.Excludes) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func isExcludedDir(name string) bool {
	for _, excl := range defaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// matchesInclude reports whether relPath matches any include pattern. An
// empty pattern list includes everything.
func matchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// matchesAny matches relPath against glob patterns, with ** support, also
// trying the bare filename.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, filepath.Base(normalized)); err == nil && matched {
			return true
		}
	}
	return false
}

// snippetFromFile reads path into a snippet. ok is false when the file
// should be skipped.
func snippetFromFile(path, rel string) (*Snippet, bool, error) {
	ext := strings.ToLower(filepath.Ext(path))
	language, known := languageByExt[ext]
	if !known {
		return nil, false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, false, fmt.Errorf("stat %s: %w", rel, err)
	}
	if info.Size() == 0 || info.Size() > maxImportSize {
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", rel, err)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, false, nil
	}

	return &Snippet{
		Title:       filepath.Base(path),
		Language:    language,
		Code:        string(data),
		Description: "Imported from " + filepath.ToSlash(rel),
	}, true, nil
}
