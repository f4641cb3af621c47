// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Clang-format formats every C++ source file of the tree in place.

It recursively walks the current directory and runs

	clang-format -verbose -i <file>

once for every file whose name ends with .h or .cpp. Files directly inside a
directory whose path contains .git, build, gsl or .vscode are skipped.

A failing formatter does not stop the run: the failure is logged and the next
file is formatted. The tool exits with a non-zero status only if the tree or
its configuration cannot be read.

The tool is configured through the .devtools.txtar file in the current
directory, if present. This file is a txtar archive and can contain the
following files:

  - exclusions.json: A JSON array of directory path substrings to skip. An
    empty array skips nothing. Directory paths start with "./", so
    "./third_party" skips only the top-level third_party directory.
  - extensions.json: A JSON array of file name suffixes to format.
  - clang-format.json: A JSON object whose "command" field is the formatter
    command line, split like a shell would. The file path is appended to it.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/journeytools/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
