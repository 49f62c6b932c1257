package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"
)

type procConfig struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	build := procConfig{
		Name: "build-signup-wasm",
		Args: []string{"go", "build", "-o", "ui/main.wasm", "./cmd/signup-wasm"},
		Env:  []string{"GOOS=js", "GOARCH=wasm"},
	}
	if err := os.MkdirAll("ui", 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "webstay: %v\n", err)
		os.Exit(1)
	}
	if err := runOnce(ctx, build); err != nil {
		fmt.Fprintf(os.Stderr, "webstay: %v\n", err)
		os.Exit(1)
	}
	if err := copyWasmExec(ctx, "ui"); err != nil {
		fmt.Fprintf(os.Stderr, "webstay: %v\n", err)
		os.Exit(1)
	}

	procs := []procConfig{
		{
			Name: "signup-server",
			Args: []string{
				"go", "run", "./cmd/signup-server",
				"-listen", "127.0.0.1:4173",
				"-assets", "ui",
			},
		},
	}

	if err := runAll(ctx, procs); err != nil {
		fmt.Fprintf(os.Stderr, "webstay exited with error: %v\n", err)
		os.Exit(1)
	}
}

func runOnce(ctx context.Context, cfg procConfig) error {
	cmd := exec.CommandContext(ctx, cfg.Args[0], cfg.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Dir = cfg.Dir
	if len(cfg.Env) > 0 {
		cmd.Env = append(append([]string{}, os.Environ()...), cfg.Env...)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", cfg.Name, err)
	}
	return nil
}

// copyWasmExec places the toolchain's wasm_exec.js next to main.wasm. Newer
// toolchains keep it under lib/wasm, older ones under misc/wasm.
func copyWasmExec(ctx context.Context, dir string) error {
	out, err := exec.CommandContext(ctx, "go", "env", "GOROOT").Output()
	if err != nil {
		return fmt.Errorf("go env GOROOT: %w", err)
	}
	goroot := strings.TrimSpace(string(out))
	for _, sub := range []string{"lib/wasm", "misc/wasm"} {
		data, err := os.ReadFile(filepath.Join(goroot, sub, "wasm_exec.js"))
		if err != nil {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, "wasm_exec.js"), data, 0o644); err != nil {
			return fmt.Errorf("write wasm_exec.js: %w", err)
		}
		return nil
	}
	return fmt.Errorf("wasm_exec.js not found under %s", goroot)
}

func runAll(ctx context.Context, procs []procConfig) error {
	if len(procs) == 0 {
		return fmt.Errorf("no processes configured")
	}
	var wg sync.WaitGroup
	errCh := make(chan error, len(procs))

	for _, cfg := range procs {
		wg.Add(1)
		go func(cfg procConfig) {
			defer wg.Done()
			cmd := exec.CommandContext(ctx, cfg.Args[0], cfg.Args[1:]...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			if cfg.Dir != "" {
				cmd.Dir = cfg.Dir
			}
			if len(cfg.Env) > 0 {
				cmd.Env = append(append([]string{}, os.Environ()...), cfg.Env...)
			}
			if err := cmd.Start(); err != nil {
				errCh <- fmt.Errorf("%s start: %w", cfg.Name, err)
				return
			}
			if err := cmd.Wait(); err != nil {
				// If the context was cancelled, treat the exit as expected.
				select {
				case <-ctx.Done():
					return
				default:
				}
				errCh <- fmt.Errorf("%s exited: %w", cfg.Name, err)
			}
		}(cfg)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		shutdownDelay := time.After(2 * time.Second)
		select {
		case <-done:
		case <-shutdownDelay:
		}
	case err := <-errCh:
		return err
	case <-done:
	}
	return nil
}
