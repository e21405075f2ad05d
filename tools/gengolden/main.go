// Command gengolden regenerates (or checks) the golden-output fixtures
// backing the end-to-end scenarios: it runs a directory of `.tardi`
// scripts concurrently against a built `tardi` binary and diffs their
// stdout against `.golden` sibling files, bounding concurrency and
// fanning out failures with golang.org/x/sync/errgroup -- the same
// fan-out-many-subprocesses-and-collect-errors shape gothird's own
// scripts/gen_vm_expects.go uses (there, driving `goimports`; here,
// driving fresh `tardi` subprocesses instead of sharing one VM, since
// Tardi's I/O natives write straight to the process's real stdout and
// can't be redirected per-goroutine in-process).
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		bin     string
		dir     string
		update  bool
		timeout time.Duration
	)
	flag.StringVar(&bin, "bin", "tardi", "path to the tardi binary under test")
	flag.StringVar(&dir, "dir", "testdata/golden", "directory of .tardi scripts and .golden fixtures")
	flag.BoolVar(&update, "update", false, "write actual output back to the .golden files instead of comparing")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "per-script timeout")
	flag.Parse()

	scripts, err := filepath.Glob(filepath.Join(dir, "*.tardi"))
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		return fmt.Errorf("no .tardi scripts found under %s", dir)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout*time.Duration(len(scripts)))
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())

	var mismatches []string
	for _, script := range scripts {
		script := script
		eg.Go(func() error {
			got, err := runScript(ctx, bin, script, timeout)
			if err != nil {
				return fmt.Errorf("%s: %w", script, err)
			}

			goldenPath := strings.TrimSuffix(script, ".tardi") + ".golden"
			if update {
				return os.WriteFile(goldenPath, got, 0o644)
			}

			want, err := os.ReadFile(goldenPath)
			if err != nil {
				return fmt.Errorf("%s: %w", goldenPath, err)
			}
			if !bytes.Equal(want, got) {
				mismatches = append(mismatches, script)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("output mismatch in %d script(s): %s", len(mismatches), strings.Join(mismatches, ", "))
	}
	return nil
}

func runScript(ctx context.Context, bin, script string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}
