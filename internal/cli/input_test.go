package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inklab/merview/pkg/errors"
)

func TestReadSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.mmd")
	if err := os.WriteFile(path, []byte("graph TD\nA --> B"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readSource(path)
	if err != nil {
		t.Fatalf("readSource() error = %v", err)
	}
	if got != "graph TD\nA --> B" {
		t.Errorf("readSource() = %q", got)
	}
}

func TestReadSourceMissingFile(t *testing.T) {
	_, err := readSource(filepath.Join(t.TempDir(), "nope.mmd"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestWriteOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := writeOutput(path, []byte("<svg/>")); err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("file contents = %q", data)
	}
}
