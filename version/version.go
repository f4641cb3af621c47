// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version reports build information embedded in the running binary.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"go.astrophena.name/journeytools/syncx"
)

// Info describes the running binary.
type Info struct {
	// Name is the command name.
	Name string
	// Commit is the VCS revision the binary was built from, if known.
	Commit string
	// Modified reports whether the working tree had uncommitted changes.
	Modified bool
	// BuildTime is the commit time, if known.
	BuildTime time.Time
	// Go is the version of Go used to build the binary.
	Go string
	// OS and Arch are the target platform.
	OS, Arch string
}

// String returns a human-readable multi-line representation of i.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s ", i.Name)
	if i.Commit == "" {
		sb.WriteString("(devel)")
	} else {
		sb.WriteString(i.Commit)
		if i.Modified {
			sb.WriteString("-dirty")
		}
	}
	sb.WriteByte('\n')
	if !i.BuildTime.IsZero() {
		fmt.Fprintf(&sb, "built at %s\n", i.BuildTime.Format(time.RFC3339))
	}
	fmt.Fprintf(&sb, "%s %s/%s\n", i.Go, i.OS, i.Arch)
	return sb.String()
}

var info syncx.Lazy[Info]

// Version returns the build information of the running binary.
func Version() Info {
	return info.Get(func() Info {
		i := Info{
			Name: CmdName(),
			Go:   runtime.Version(),
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		}
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return i
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				i.Commit = s.Value
			case "vcs.modified":
				i.Modified = s.Value == "true"
			case "vcs.time":
				i.BuildTime, _ = time.Parse(time.RFC3339, s.Value)
			}
		}
		return i
	})
}

// CmdName returns the base name of the running executable.
func CmdName() string {
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, ".exe")
}
