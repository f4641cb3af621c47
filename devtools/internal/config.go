// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package internal contains configuration shared by the developer tools.
package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/google/shlex"

	"go.astrophena.name/journeytools/internal/clangformat"
	"go.astrophena.name/journeytools/internal/headerfilter"
	"go.astrophena.name/journeytools/internal/srctree"
	"go.astrophena.name/journeytools/txtar"
)

// ConfigFile is the default location of the configuration archive, relative
// to the root of the source tree.
const ConfigFile = ".devtools.txtar"

// ErrInvalidConfig is returned, wrapped, when the configuration archive
// cannot be understood.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of all developer tools.
type Config struct {
	// Filter selects the files every tool operates on.
	Filter srctree.Filter
	// FormatCommand is the formatter command line, without the file path.
	FormatCommand []string
	// HeaderFilterExtras are appended to the generated header filter.
	HeaderFilterExtras []string
	// CopyrightTemplates maps a file extension to the header prepended to
	// files with that extension. A %d verb is replaced with the year.
	CopyrightTemplates map[string]string
	// CopyrightHeaders maps a file extension to the prefix that marks a file
	// as already carrying a copyright header.
	CopyrightHeaders map[string]string
}

// DefaultConfig returns the configuration used when no archive exists.
func DefaultConfig() *Config {
	return &Config{
		Filter:             srctree.Default(),
		FormatCommand:      slices.Clone(clangformat.DefaultCommand),
		HeaderFilterExtras: []string{headerfilter.DefaultExtra},
		CopyrightTemplates: make(map[string]string),
		CopyrightHeaders:   make(map[string]string),
	}
}

// LoadConfig reads the configuration archive at file. A missing file is not
// an error: the defaults are returned.
func LoadConfig(file string) (*Config, error) {
	ar, err := txtar.ParseFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(ar)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return cfg, nil
}

// ParseConfig builds a configuration from an archive. Settings missing from
// the archive keep their defaults. Unknown files are ignored.
func ParseConfig(ar *txtar.Archive) (*Config, error) {
	cfg := DefaultConfig()

	for _, f := range ar.Files {
		var err error
		switch f.Name {
		case "exclusions.json":
			err = unmarshal(f, &cfg.Filter.Exclusions)
		case "extensions.json":
			err = unmarshal(f, &cfg.Filter.Extensions)
		case "clang-format.json":
			err = parseFormatConfig(f, cfg)
		case "header-filter.json":
			err = parseHeaderFilterConfig(f, cfg)
		}
		if err != nil {
			return nil, err
		}

		dir, base := path.Split(f.Name)
		if dir != "copyright/" {
			continue
		}
		ext := path.Ext(base)
		switch {
		case strings.HasPrefix(base, "template"):
			cfg.CopyrightTemplates[ext] = string(f.Data)
		case strings.HasPrefix(base, "header"):
			cfg.CopyrightHeaders[ext] = strings.TrimSuffix(string(f.Data), "\n")
		}
	}

	return cfg, nil
}

func unmarshal(f txtar.File, v any) error {
	if err := json.Unmarshal(f.Data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, f.Name, err)
	}
	return nil
}

func parseFormatConfig(f txtar.File, cfg *Config) error {
	var fc struct {
		Command string `json:"command"`
	}
	if err := unmarshal(f, &fc); err != nil {
		return err
	}
	if fc.Command == "" {
		return nil
	}
	argv, err := shlex.Split(fc.Command)
	if err != nil {
		return fmt.Errorf("%w: %s: command %q: %v", ErrInvalidConfig, f.Name, fc.Command, err)
	}
	if len(argv) == 0 {
		return fmt.Errorf("%w: %s: command %q is empty", ErrInvalidConfig, f.Name, fc.Command)
	}
	cfg.FormatCommand = argv
	return nil
}

func parseHeaderFilterConfig(f txtar.File, cfg *Config) error {
	var hc struct {
		Extra *[]string `json:"extra"`
	}
	if err := unmarshal(f, &hc); err != nil {
		return err
	}
	if hc.Extra != nil {
		cfg.HeaderFilterExtras = *hc.Extra
	}
	return nil
}
