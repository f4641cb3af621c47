// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Addcopyright adds a copyright header to the C++ source files of the tree.

It recursively walks the current directory, visiting the same files as
clang-format and gen-header-filter. If a file does not start with the
copyright marker for its extension, the tool prepends the copyright template
for that extension.

The tool is configured through the .devtools.txtar file in the current
directory. Besides the exclusions.json and extensions.json files shared with
the other tools, the archive can contain:

  - copyright/template.{ext}: A template for the copyright header for a
    specific file extension (e.g., copyright/template.h). The template can
    contain a formatting verb %d for the year the file was last modified.
  - copyright/header.{ext}: A string that identifies an existing copyright
    header for a specific file extension (e.g., copyright/header.h). If a
    file starts with this string, it's considered to already have a
    copyright header, and the tool will not add a new one.

Files with an extension that has no template or no header are left alone.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/journeytools/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
