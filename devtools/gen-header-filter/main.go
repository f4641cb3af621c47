// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/natefinch/atomic"

	"go.astrophena.name/journeytools/cli"
	"go.astrophena.name/journeytools/devtools/internal"
	"go.astrophena.name/journeytools/internal/headerfilter"
	"go.astrophena.name/journeytools/logger"
)

func main() { cli.Main(new(app)) }

type app struct {
	out    string
	config string
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.out, "o", "", "Write the filter to `file` instead of standard output.")
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

	if a.out == "" {
		return headerfilter.Write(env.Stdout, ".", cfg.Filter, cfg.HeaderFilterExtras)
	}

	var buf bytes.Buffer
	if err := headerfilter.Write(&buf, ".", cfg.Filter, cfg.HeaderFilterExtras); err != nil {
		return err
	}
	n := buf.Len()
	if err := atomic.WriteFile(a.out, &buf); err != nil {
		return err
	}
	logger.Debug(ctx, "wrote header filter", slog.String("path", a.out), slog.Int("bytes", n))
	return nil
}
