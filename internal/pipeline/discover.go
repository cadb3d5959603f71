package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/camconv/internal/config"
)

// DirFiles is one visited directory's classified contents. Names are base
// names sorted lexicographically for deterministic processing order.
type DirFiles struct {
	Dir         string
	Convertible []string
	Sidecars    []string
}

// Scan walks root and returns per-directory classification in traversal
// order. Any subdirectory named like the originals folder (case-insensitive)
// is pruned, so previously archived files are never rediscovered as new
// jobs. Directories contributing neither convertible nor sidecar files are
// omitted. Unreadable subdirectories are skipped; only failure to enumerate
// the root is an error.
func Scan(cfg *config.Config, root string) ([]DirFiles, error) {
	var dirs []DirFiles
	index := make(map[string]int) // dir path → position in dirs

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return walkErr(root, path, err)
		}
		if d.IsDir() {
			if path != root && strings.EqualFold(d.Name(), cfg.OriginalsDirName) {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		var convertible bool
		switch {
		case cfg.IsConvertible(name):
			convertible = true
		case cfg.IsSidecar(name):
		default:
			return nil
		}

		dir := filepath.Dir(path)
		i, seen := index[dir]
		if !seen {
			i = len(dirs)
			index[dir] = i
			dirs = append(dirs, DirFiles{Dir: dir})
		}
		if convertible {
			dirs[i].Convertible = append(dirs[i].Convertible, name)
		} else {
			dirs[i].Sidecars = append(dirs[i].Sidecars, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range dirs {
		sort.Strings(dirs[i].Convertible)
		sort.Strings(dirs[i].Sidecars)
	}
	return dirs, nil
}

// walkErr decides whether a traversal error aborts the scan. Only failure to
// enumerate the root is fatal; an unreadable subdirectory is skipped so the
// rest of the tree still gets processed.
func walkErr(root, path string, err error) error {
	if path == root {
		return err
	}
	return filepath.SkipDir
}

// CountConvertible walks the whole tree once and returns the total number of
// convertible files. Used for the user-facing progress denominator, computed
// up front before any conversion begins.
func CountConvertible(cfg *config.Config, root string) (int, error) {
	dirs, err := Scan(cfg, root)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, d := range dirs {
		total += len(d.Convertible)
	}
	return total, nil
}
