// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"go.astrophena.name/journeytools/cli"
	"go.astrophena.name/journeytools/devtools/internal"
	"go.astrophena.name/journeytools/internal/clangformat"
	"go.astrophena.name/journeytools/logger"
)

func main() { cli.Main(new(app)) }

type app struct {
	dry    bool
	config string

	// executor overrides how the formatter is run. Used in tests.
	executor clangformat.Executor
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.dry, "dry", false, "Print the files that would be formatted, without running the formatter.")
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

	r := &clangformat.Runner{
		Command:  cfg.FormatCommand,
		Executor: a.executor,
		Output:   env.Stderr,
		DryRun:   a.dry,
	}
	sum, err := r.Run(ctx, ".", cfg.Filter)
	if err != nil {
		return err
	}

	logger.Info(ctx, "done",
		slog.Int("submitted", sum.Submitted),
		slog.Int("failed", sum.Failed),
	)
	return nil
}
