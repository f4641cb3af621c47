// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Gen-header-filter prints a regular expression matching the C++ source files of
the tree, for use as a documentation generator's header filter.

It recursively walks the current directory and collects the name of every
file ending with .h or .cpp, skipping files directly inside a directory whose
path contains .git, build, gsl or .vscode. It then prints, without a trailing
newline:

	.*(name1\.h|name2\.cpp|...|Journey\.cpp)

Names are listed in the order they were found, with every dot escaped.
Journey.cpp is always appended as the last alternative, even if it was
already found in the tree.

The tool is configured through the .devtools.txtar file in the current
directory, if present. This file is a txtar archive and can contain the
following files:

  - exclusions.json: A JSON array of directory path substrings to skip.
    Directory paths start with "./", as in "./Graphics/GL".
  - extensions.json: A JSON array of file name suffixes to list.
  - header-filter.json: A JSON object whose "extra" field is an array of
    names appended after the discovered ones.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/journeytools/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
