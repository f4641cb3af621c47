// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package clangformat

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"go.astrophena.name/journeytools/internal/srctree"
	"go.astrophena.name/journeytools/logger"
	"go.astrophena.name/journeytools/testutil"
	"go.astrophena.name/journeytools/txtar"
)

// recorder is an Executor that remembers every command line it was given.
type recorder struct {
	calls [][]string
	// fail makes invocations on these paths exit with status 1.
	fail map[string]bool
}

func (r *recorder) Exec(ctx context.Context, argv []string) Result {
	r.calls = append(r.calls, argv)
	path := argv[len(argv)-1]
	res := Result{Argv: argv, Output: []byte("Formatting " + path + "\n")}
	if r.fail[path] {
		res.ExitCode = 1
	}
	return res
}

func (r *recorder) paths() []string {
	var paths []string
	for _, argv := range r.calls {
		paths = append(paths, argv[len(argv)-1])
	}
	return paths
}

var tree = map[string]string{
	"Journey.cpp":             "int main() {}\n",
	"Constants.h":             "#pragma once\n",
	"README.md":               "# Journey\n",
	"CMakeLists.txt":          "project(Journey)\n",
	"Graphics/Text.h":         "",
	"Graphics/Text.cpp":       "",
	"Graphics/shader.glsl":    "",
	"build/Journey.cpp":       "",
	"build/gen/config.h":      "",
	"includes/gsl/gsl_util.h": "",
	".vscode/launch.h":        "",
}

func withLogs(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return logger.Put(context.Background(), logger.New(&buf, logger.Options{NoColor: true})), &buf
}

func TestRunnerInvokesOncePerEligibleFile(t *testing.T) {
	t.Chdir(testutil.Tree(t, tree))
	ctx, _ := withLogs(t)

	rec := new(recorder)
	r := &Runner{Executor: rec}
	sum, err := r.Run(ctx, ".", srctree.Default())
	if err != nil {
		t.Fatal(err)
	}

	testutil.AssertEqual(t, sum, Summary{Submitted: 4})
	testutil.AssertEqual(t, rec.paths(), []string{
		"Constants.h",
		"Journey.cpp",
		filepath.Join("Graphics", "Text.cpp"),
		filepath.Join("Graphics", "Text.h"),
	})
	testutil.AssertEqual(t, rec.calls[0], []string{"clang-format", "-verbose", "-i", "Constants.h"})
}

func TestRunnerWithoutExclusions(t *testing.T) {
	t.Chdir(testutil.Tree(t, tree))
	ctx, _ := withLogs(t)

	rec := new(recorder)
	r := &Runner{Executor: rec}
	sum, err := r.Run(ctx, ".", srctree.Filter{Extensions: srctree.DefaultExtensions})
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, sum.Submitted, 8)
	for _, p := range rec.paths() {
		if strings.HasSuffix(p, ".md") || strings.HasSuffix(p, ".glsl") || strings.HasSuffix(p, ".txt") {
			t.Errorf("ineligible file %q was submitted", p)
		}
	}
}

func TestRunnerIgnoresFormatterFailures(t *testing.T) {
	t.Chdir(testutil.Tree(t, tree))
	ctx, logs := withLogs(t)

	rec := &recorder{fail: map[string]bool{"Journey.cpp": true}}
	var out bytes.Buffer
	r := &Runner{Executor: rec, Output: &out}
	sum, err := r.Run(ctx, ".", srctree.Default())
	if err != nil {
		t.Fatalf("formatter failure must not fail the run: %v", err)
	}

	testutil.AssertEqual(t, sum, Summary{Submitted: 4, Failed: 1})
	if !strings.Contains(logs.String(), "formatter failed") || !strings.Contains(logs.String(), "path=Journey.cpp") {
		t.Errorf("failure was not logged: %q", logs.String())
	}
	if !strings.Contains(out.String(), "Formatting Journey.cpp\n") {
		t.Errorf("captured output was not forwarded: %q", out.String())
	}
}

func TestRunnerDryRun(t *testing.T) {
	t.Chdir(testutil.Tree(t, tree))
	ctx, logs := withLogs(t)

	rec := new(recorder)
	r := &Runner{Executor: rec, DryRun: true}
	sum, err := r.Run(ctx, ".", srctree.Default())
	if err != nil {
		t.Fatal(err)
	}

	testutil.AssertEqual(t, sum, Summary{Submitted: 4})
	testutil.AssertEqual(t, len(rec.calls), 0)
	if got := strings.Count(logs.String(), "would format"); got != 4 {
		t.Errorf("logged %d files, want 4:\n%s", got, logs.String())
	}
}

func TestRunnerCustomCommand(t *testing.T) {
	t.Chdir(testutil.Tree(t, map[string]string{"Timer.h": ""}))
	ctx, _ := withLogs(t)

	rec := new(recorder)
	r := &Runner{Command: []string{"clang-format-18", "-i", "--style=file"}, Executor: rec}
	if _, err := r.Run(ctx, ".", srctree.Default()); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, rec.calls, [][]string{{"clang-format-18", "-i", "--style=file", "Timer.h"}})
}

func TestRunnerCanceled(t *testing.T) {
	t.Chdir(testutil.Tree(t, tree))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := new(recorder)
	r := &Runner{Executor: rec}
	if _, err := r.Run(ctx, ".", srctree.Default()); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	testutil.AssertEqual(t, len(rec.calls), 0)
}

func TestRunnerWalkError(t *testing.T) {
	rec := new(recorder)
	r := &Runner{Executor: rec}
	if _, err := r.Run(context.Background(), filepath.Join(t.TempDir(), "missing"), srctree.Default()); err == nil {
		t.Fatal("want walk error, got nil")
	}
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}
}

func TestCommandExecutor(t *testing.T) {
	requireShell(t)

	cases := map[string]struct {
		argv       []string
		wantCode   int
		wantOutput string
		wantErr    bool
	}{
		"success": {
			argv:       []string{"sh", "-c", "echo ok"},
			wantCode:   0,
			wantOutput: "ok\n",
		},
		"non-zero exit": {
			argv:       []string{"sh", "-c", "echo broken >&2; exit 3"},
			wantCode:   3,
			wantOutput: "broken\n",
		},
		"missing binary": {
			argv:     []string{"journeytools-no-such-formatter", "-i", "a.h"},
			wantCode: -1,
			wantErr:  true,
		},
		"empty command": {
			argv:     nil,
			wantCode: -1,
			wantErr:  true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			res := CommandExecutor{}.Exec(context.Background(), tc.argv)
			testutil.AssertEqual(t, res.ExitCode, tc.wantCode)
			testutil.AssertEqual(t, string(res.Output), tc.wantOutput)
			testutil.AssertEqual(t, res.Err != nil, tc.wantErr)
			testutil.AssertEqual(t, res.OK(), !tc.wantErr && tc.wantCode == 0)
		})
	}
}

func TestRunnerFormatsInPlace(t *testing.T) {
	requireShell(t)

	dir := testutil.Tree(t, map[string]string{
		"Audio/Audio.cpp": "int  x ;\n",
		"Audio/Audio.h":   "int  x ;\n",
		"notes.txt":       "int  x ;\n",
	})
	t.Chdir(dir)
	ctx, _ := withLogs(t)

	r := &Runner{
		// The file path becomes $0 of the script.
		Command: []string{"sh", "-c", `echo "formatted" > "$0"`},
	}
	sum, err := r.Run(ctx, ".", srctree.Default())
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, sum, Summary{Submitted: 2})

	want := txtar.Format(&txtar.Archive{
		Files: []txtar.File{
			{Name: "Audio/Audio.cpp", Data: []byte("formatted\n")},
			{Name: "Audio/Audio.h", Data: []byte("formatted\n")},
			{Name: "notes.txt", Data: []byte("int  x ;\n")},
		},
	})
	testutil.AssertEqual(t, string(testutil.BuildTxtar(t, ".")), string(want))
}

func TestRunnerMissingFormatter(t *testing.T) {
	t.Chdir(testutil.Tree(t, map[string]string{"Timer.h": "", "Util/Misc.cpp": ""}))
	ctx, logs := withLogs(t)

	r := &Runner{Command: []string{"journeytools-no-such-formatter", "-i"}}
	sum, err := r.Run(ctx, ".", srctree.Default())
	if err != nil {
		t.Fatalf("missing formatter must not fail the run: %v", err)
	}
	testutil.AssertEqual(t, sum, Summary{Submitted: 2, Failed: 2})
	if !strings.Contains(logs.String(), "formatter could not run") {
		t.Errorf("start failure was not logged: %q", logs.String())
	}
}
