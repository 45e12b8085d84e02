// Package toolchain invokes the external LLVM/clang tools that turn
// emitted IR into an object file or executable, wrapping tool lookup
// and subprocess execution in a reusable library with context-bound
// timeouts.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/c2llvm/c2llvm/internal/clilog"
)

const (
	compileTimeout = 60 * time.Second
	optTimeout     = 10 * time.Second
)

// FindClang locates the clang executable, checking PATH first and
// then common Homebrew install prefixes.
func FindClang() (string, error) { return findTool("clang") }

// FindLLC locates the llc executable, the same way FindClang does.
func FindLLC() (string, error) { return findTool("llc") }

// FindOpt locates the opt executable, the same way FindClang does.
func FindOpt() (string, error) { return findTool("opt") }

func findTool(name string) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	prefixes := []string{"/opt/homebrew", "/usr/local"}
	if brewPrefix := os.Getenv("HOMEBREW_PREFIX"); brewPrefix != "" {
		prefixes = []string{brewPrefix}
	}
	for _, prefix := range prefixes {
		candidate := prefix + "/opt/llvm/bin/" + name
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s not found in PATH or common installation locations", name)
}

// AssembleAndLink turns irPath's LLVM IR text into an executable at
// outPath, at the given -O level (0-3). It prefers invoking clang
// directly; when clang is unavailable it falls back to an
// opt-then-llc-then-link pipeline, for hosts that carry the LLVM
// tools but no standalone clang driver.
func AssembleAndLink(irPath, outPath string, optLevel int) error {
	if clangPath, err := FindClang(); err == nil {
		return runClangLink(clangPath, irPath, outPath, optLevel)
	}
	clilog.Log.Debug("clang not found, falling back to opt+llc+link pipeline")
	return assembleViaLLC(irPath, outPath, optLevel)
}

func runClangLink(clangPath, irPath, outPath string, optLevel int) error {
	ctx, cancel := context.WithTimeout(context.Background(), compileTimeout)
	defer cancel()

	args := []string{fmt.Sprintf("-O%d", optLevel), "-o", outPath, "-x", "ir", irPath}
	clilog.Log.Debugf("running %s %v", clangPath, args)

	cmd := exec.CommandContext(ctx, clangPath, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("clang timed out after %s", compileTimeout)
		}
		return fmt.Errorf("clang failed: %w\n%s", err, stderr.String())
	}
	return nil
}

// assembleViaLLC drives the opt -> llc -> link pipeline used when the
// host has the LLVM tools but no clang driver capable of consuming
// textual IR directly.
func assembleViaLLC(irPath, outPath string, optLevel int) error {
	optimized, err := OptimizeIR(irPath, optLevel)
	if err != nil {
		clilog.Log.Debugf("opt unavailable or failed (%v), using unoptimized IR", err)
		optimized = irPath
	} else if optimized != irPath {
		defer os.Remove(optimized)
	}

	llcPath, err := FindLLC()
	if err != nil {
		return fmt.Errorf("locating llc: %w (install llvm, or ensure clang/llc is on PATH)", err)
	}

	objPath := optimized + ".o"
	defer os.Remove(objPath)

	ctx, cancel := context.WithTimeout(context.Background(), compileTimeout)
	defer cancel()

	args := []string{"-filetype=obj", "-o", objPath, optimized}
	clilog.Log.Debugf("running %s %v", llcPath, args)
	cmd := exec.CommandContext(ctx, llcPath, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("llc timed out after %s", compileTimeout)
		}
		return fmt.Errorf("llc failed: %w\n%s", err, stderr.String())
	}

	linker, err := findTool("cc")
	if err != nil {
		return fmt.Errorf("locating a system linker driver: %w", err)
	}
	linkCtx, linkCancel := context.WithTimeout(context.Background(), compileTimeout)
	defer linkCancel()
	linkArgs := []string{"-o", outPath, objPath}
	clilog.Log.Debugf("running %s %v", linker, linkArgs)
	linkCmd := exec.CommandContext(linkCtx, linker, linkArgs...)
	var linkStderr strings.Builder
	linkCmd.Stderr = &linkStderr
	if err := linkCmd.Run(); err != nil {
		if linkCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("linker timed out after %s", compileTimeout)
		}
		return fmt.Errorf("link failed: %w\n%s", err, linkStderr.String())
	}
	return nil
}

// OptimizeIR runs opt's new pass manager over irPath at the requested
// level, writing a sibling "<irPath>.opt" file and returning its path.
// Level 0 is a no-op that returns irPath unchanged.
func OptimizeIR(irPath string, optLevel int) (string, error) {
	if optLevel <= 0 {
		return irPath, nil
	}
	optPath, err := FindOpt()
	if err != nil {
		return irPath, err
	}

	outPath := irPath + ".opt"
	ctx, cancel := context.WithTimeout(context.Background(), optTimeout)
	defer cancel()

	pipeline := fmt.Sprintf("default<O%d>", optLevel)
	args := []string{"-S", "-o", outPath, "-passes=" + pipeline, irPath}
	clilog.Log.Debugf("running %s %v", optPath, args)

	cmd := exec.CommandContext(ctx, optPath, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return irPath, fmt.Errorf("opt timed out after %s", optTimeout)
		}
		return irPath, fmt.Errorf("opt failed: %w\n%s", err, stderr.String())
	}
	return outPath, nil
}
