// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package headerfilter builds a regular expression matching the names of the
// source files in a tree, in the form documentation generators accept as a
// header filter:
//
//	.*(Constants\.h|Journey\.cpp|Text\.h|Journey\.cpp)
//
// Names appear in walk order. Nothing is sorted or deduplicated, and extra
// entries are appended after the discovered ones even if a file with the same
// name was discovered.
package headerfilter

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"

	"go.astrophena.name/journeytools/internal/srctree"
)

// DefaultExtra is the entry appended after all discovered names.
const DefaultExtra = "Journey.cpp"

const (
	prefix    = ".*("
	separator = "|"
	suffix    = ")"
)

// Escape escapes every dot in name. No other character is escaped.
func Escape(name string) string {
	return strings.ReplaceAll(name, ".", `\.`)
}

// alternation writes alternatives separated by the separator.
type alternation struct {
	w io.StringWriter
	n int
}

func (a *alternation) add(name string) error {
	if a.n > 0 {
		if _, err := a.w.WriteString(separator); err != nil {
			return err
		}
	}
	a.n++
	_, err := a.w.WriteString(Escape(name))
	return err
}

// Pattern returns the filter for the given discovered names followed by the
// extra entries.
func Pattern(names, extras []string) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	alt := &alternation{w: &sb}
	for _, name := range names {
		alt.add(name)
	}
	for _, e := range extras {
		alt.add(e)
	}
	sb.WriteString(suffix)
	return sb.String()
}

// Write walks root and streams the filter for the files accepted by f to w.
// The prefix is written before the walk begins and no newline is written at
// the end.
//
// On a walk error, whatever was produced so far is flushed to w and the
// error is returned.
func Write(w io.Writer, root string, f srctree.Filter, extras []string) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(prefix)

	alt := &alternation{w: bw}
	err := srctree.Walk(root, f, func(path string) error {
		return alt.add(filepath.Base(path))
	})
	if err != nil {
		bw.Flush()
		return err
	}

	for _, e := range extras {
		alt.add(e)
	}
	bw.WriteString(suffix)
	return bw.Flush()
}
