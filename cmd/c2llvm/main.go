package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c2llvm/c2llvm/internal/clilog"
	"github.com/c2llvm/c2llvm/internal/diag"
	"github.com/c2llvm/c2llvm/internal/irgen"
	"github.com/c2llvm/c2llvm/internal/parser"
	"github.com/c2llvm/c2llvm/internal/sema"
	"github.com/c2llvm/c2llvm/internal/toolchain"
)

// version is overridden at build time with -ldflags.
var version = "dev"

type options struct {
	output    string
	emitIR    bool
	compile   bool
	optLevel  int
	force     bool
	verbose   bool
	typeCheck bool
	debug     bool
}

func main() {
	opts := &options{emitIR: true, optLevel: 0}

	root := &cobra.Command{
		Use:     "c2llvm <input.c>",
		Short:   "Translate a subset of C to LLVM IR",
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clilog.Configure(opts.verbose, opts.debug)
			return run(args[0], opts)
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := root.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "output path for IR or executable")
	flags.BoolVarP(&opts.emitIR, "emit-ir", "S", true, "emit IR only (default)")
	flags.BoolVarP(&opts.compile, "compile", "c", false, "compile and link via the external LLVM toolchain")
	flags.IntVarP(&opts.optLevel, "opt", "O", 0, "optimization level forwarded to the external toolchain (0-3)")
	flags.BoolVarP(&opts.force, "force", "f", false, "force emission despite semantic errors")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose diagnostics")
	flags.BoolVarP(&opts.typeCheck, "type-check", "t", false, "run semantic checks only, emit nothing")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "debug logging")
	root.SetVersionTemplate("c2llvm version {{.Version}}\n")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// run drives one translation unit through parser, checker and code
// generator, then optionally the external toolchain, returning a
// non-nil error only for hard I/O failures: semantic/emission failures
// are reported via os.Exit with the stable exit codes (0 success,
// 1 hard failure, 2 success with warnings).
func run(inputPath string, opts *options) error {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	p := parser.New(string(src), inputPath)
	prog := p.ParseProgram()
	bag := p.Diagnostics()
	if bag.HasErrors() {
		bag.WriteTo(os.Stderr)
		os.Exit(1)
	}

	checker := sema.NewChecker()
	semaBag := checker.Check(prog)
	for _, d := range semaBag.Diagnostics {
		clilog.Log.Debugf("sema: %s", d.Format())
	}
	semaBag.WriteTo(os.Stderr)

	if opts.typeCheck {
		if semaBag.HasErrors() {
			os.Exit(1)
		}
		return nil
	}

	if semaBag.HasErrors() && !opts.force {
		os.Exit(1)
	}

	gen := irgen.NewGenerator()
	ir, genDiags := gen.Generate(prog)
	for _, d := range genDiags {
		fmt.Fprintln(os.Stderr, d.Format())
	}

	exitCode := 0
	if semaBag.HasErrors() || hasErrors(genDiags) {
		exitCode = 2
	}

	irPath := opts.output
	if opts.compile {
		irPath = tempIRPath(inputPath)
	} else if irPath == "" {
		irPath = swapExt(inputPath, ".ll")
	}
	if err := os.WriteFile(irPath, []byte(ir), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", irPath, err)
	}

	if opts.compile {
		outPath := opts.output
		if outPath == "" {
			outPath = swapExt(inputPath, "")
		}
		if err := toolchain.AssembleAndLink(irPath, outPath, opts.optLevel); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Remove(irPath)
	}

	os.Exit(exitCode)
	return nil
}

func hasErrors(ds []diag.Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

func swapExt(path, newExt string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if newExt == "" {
		return base
	}
	return base + newExt
}

func tempIRPath(inputPath string) string {
	return swapExt(inputPath, ".ll")
}
