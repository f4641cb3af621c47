// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.astrophena.name/journeytools/cli"
	"go.astrophena.name/journeytools/devtools/internal"
	"go.astrophena.name/journeytools/internal/srctree"
	"go.astrophena.name/journeytools/logger"
)

func main() { cli.Main(new(app)) }

type app struct {
	dry    bool
	config string
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.dry, "dry", false, "Print the files that would have a copyright header added, without making changes.")
	fs.StringVar(&a.config, "config", internal.ConfigFile, "Read configuration from `file`.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	if len(env.Args) > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrInvalidArgs, env.Args)
	}

	cfg, err := internal.LoadConfig(a.config)
	if err != nil {
		return err
	}
	if len(cfg.CopyrightTemplates) == 0 {
		logger.Warn(ctx, "no copyright templates configured", slog.String("config", a.config))
		return nil
	}

	var added int
	err = srctree.Walk(".", cfg.Filter, func(path string) error {
		ok, err := a.stamp(ctx, cfg, path)
		if ok {
			added++
		}
		return err
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "done", slog.Int("added", added))
	return nil
}

// stamp prepends the copyright header to path if it lacks one and reports
// whether it did (or, in a dry run, would have).
func (a *app) stamp(ctx context.Context, cfg *internal.Config, path string) (bool, error) {
	ext := filepath.Ext(path)
	tmpl, ok := cfg.CopyrightTemplates[ext]
	if !ok {
		return false, nil
	}
	header, ok := cfg.CopyrightHeaders[ext]
	if !ok {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	if bytes.HasPrefix(content, []byte(header)) {
		// Already has a copyright header.
		return false, nil
	}

	hdr := fmt.Sprintf(tmpl, info.ModTime().Year())

	if a.dry {
		logger.Info(ctx, "would add copyright header", slog.String("path", path), slog.String("header", hdr))
		return true, nil
	}

	var buf bytes.Buffer
	buf.WriteString(hdr)
	buf.Write(content)

	if err := os.WriteFile(path, buf.Bytes(), info.Mode().Perm()); err != nil {
		return false, err
	}
	logger.Debug(ctx, "added copyright header", slog.String("path", path))
	return true, nil
}
