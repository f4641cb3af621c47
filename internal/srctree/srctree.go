// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package srctree walks a source tree and reports the files the developer
// tools operate on.
package srctree

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExclusions are the directory-path substrings skipped by default:
// VCS metadata, build output, the vendored GSL and editor settings.
var DefaultExclusions = []string{".git", "build", "gsl", ".vscode"}

// DefaultExtensions are the file name suffixes of C++ sources and headers.
var DefaultExtensions = []string{".h", ".cpp"}

// Filter decides which files of a tree are eligible.
type Filter struct {
	// Exclusions are matched as substrings of directory paths. A directory
	// whose path contains any of them has its files skipped. An empty list
	// excludes nothing.
	Exclusions []string
	// Extensions are matched as case-sensitive suffixes of file names.
	Extensions []string
}

// Default returns a Filter with DefaultExclusions and DefaultExtensions.
func Default() Filter {
	return Filter{
		Exclusions: slices.Clone(DefaultExclusions),
		Extensions: slices.Clone(DefaultExtensions),
	}
}

// Excluded reports whether files directly inside dir are skipped.
func (f Filter) Excluded(dir string) bool {
	return slices.ContainsFunc(f.Exclusions, func(tok string) bool {
		return strings.Contains(dir, tok)
	})
}

// Eligible reports whether a file with the given name is processed.
// A name consisting of the extension alone, such as ".h", is eligible.
func (f Filter) Eligible(name string) bool {
	return slices.ContainsFunc(f.Extensions, func(ext string) bool {
		return strings.HasSuffix(name, ext)
	})
}

// Walk calls fn for every eligible file under root.
//
// The tree is visited top-down. In each directory, its eligible files are
// reported first, in lexical order, and then its subdirectories are visited
// in lexical order. Exclusion is decided for every directory separately, on
// its path as built from root, so subdirectories of an excluded directory are
// still visited but skipped as long as their path still contains the token.
// Directory paths keep root as written: walking "." checks "." and
// "./Graphics/GL", so a token like "./third_party" only matches at the top
// level.
// Symbolic links are never followed: a link to a directory is ignored, any
// other link is treated as a file.
//
// Paths passed to fn are root joined with the path inside the tree. Walk
// stops at the first error returned by fn or by the filesystem and returns
// it.
func Walk(root string, f Filter, fn func(path string) error) error {
	return walk(root, root, f, fn)
}

// walk visits dir. key is the path exclusion tokens are matched against; it
// differs from dir only in keeping a leading "./".
func walk(dir, key string, f Filter, fn func(path string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var subdirs []string
	excluded := f.Excluded(key)
	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, e.Name())
			continue
		}
		if e.Type()&fs.ModeSymlink != 0 && isDirLink(filepath.Join(dir, e.Name())) {
			continue
		}
		if excluded || !f.Eligible(e.Name()) {
			continue
		}
		if err := fn(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}

	for _, name := range subdirs {
		if err := walk(filepath.Join(dir, name), subkey(key, name), f, fn); err != nil {
			return err
		}
	}
	return nil
}

func subkey(key, name string) string {
	if strings.HasSuffix(key, string(filepath.Separator)) {
		return key + name
	}
	return key + string(filepath.Separator) + name
}

func isDirLink(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// Collect returns the paths of all eligible files under root in the order
// Walk visits them.
func Collect(root string, f Filter) ([]string, error) {
	var paths []string
	err := Walk(root, f, func(path string) error {
		paths = append(paths, path)
		return nil
	})
	return paths, err
}
