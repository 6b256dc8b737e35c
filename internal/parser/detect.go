package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// ErrNoInputFiles stops a session before any tool runs.
var ErrNoInputFiles = errors.New("no header files found to analyze")

// DetectSourceFiles walks the layout directories under root. Returned paths
// are relative to root, slash separated and sorted. A missing directory is
// skipped; an empty header set is ErrNoInputFiles.
func DetectSourceFiles(root string, layout Layout) (SourceSet, error) {
	var gi *ignore.GitIgnore
	if layout.RespectGitignore {
		gi = loadGitignore(root)
	}

	headers, err := collect(root, layout.Headers, layout.HeaderExts, gi)
	if err != nil {
		return SourceSet{}, err
	}
	sources, err := collect(root, layout.Sources, layout.SourceExts, gi)
	if err != nil {
		return SourceSet{}, err
	}
	benchmarks, err := collect(root, layout.Benchmarks, layout.SourceExts, gi)
	if err != nil {
		return SourceSet{}, err
	}

	set := SourceSet{Headers: headers, Sources: sources, Benchmarks: benchmarks}
	if len(set.Headers) == 0 {
		return set, fmt.Errorf("%w under %s", ErrNoInputFiles, root)
	}
	return set, nil
}

func collect(root string, dirs, exts []string, gi *ignore.GitIgnore) ([]string, error) {
	extSet := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(e)] = struct{}{}
	}

	seen := map[string]struct{}{}
	out := []string{}
	for _, d := range dirs {
		base := filepath.Join(root, d)
		info, err := os.Stat(base)
		if err != nil || !info.IsDir() {
			continue
		}
		err = filepath.WalkDir(base, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			name := entry.Name()
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if entry.IsDir() {
				if path != base && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				if gi != nil && path != base && gi.MatchesPath(rel+"/") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(name, ".") || entry.Type()&os.ModeSymlink != 0 {
				return nil
			}
			if _, ok := extSet[strings.ToLower(filepath.Ext(name))]; !ok {
				return nil
			}
			if gi != nil && gi.MatchesPath(rel) {
				return nil
			}
			if _, dup := seen[rel]; !dup {
				seen[rel] = struct{}{}
				out = append(out, rel)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", base, err)
		}
	}
	sort.Strings(out)
	return out, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
