package toolchain_test

import (
	"testing"

	"github.com/c2llvm/c2llvm/internal/toolchain"
)

func TestFindClangReturnsErrorOrPath(t *testing.T) {
	path, err := toolchain.FindClang()
	if err != nil {
		if path != "" {
			t.Errorf("expected empty path on error, got %q", path)
		}
		return
	}
	if path == "" {
		t.Error("expected a non-empty clang path when no error is returned")
	}
}

func TestAssembleAndLinkReportsMissingInput(t *testing.T) {
	if _, err := toolchain.FindClang(); err != nil {
		t.Skip("clang not available in this environment")
	}
	err := toolchain.AssembleAndLink("/nonexistent/does-not-exist.ll", "/tmp/c2llvm-test-out", 0)
	if err == nil {
		t.Error("expected an error when the input IR file does not exist")
	}
}

func TestOptimizeIRNoopAtLevelZero(t *testing.T) {
	path, err := toolchain.OptimizeIR("/some/file.ll", 0)
	if err != nil {
		t.Fatalf("unexpected error at -O0: %v", err)
	}
	if path != "/some/file.ll" {
		t.Errorf("expected -O0 to return the input path unchanged, got %q", path)
	}
}
