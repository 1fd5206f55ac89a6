package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

const (
	ORIGINAL = "sample data for rolling hash diff."
	MODIFIED = "saple data for rolli hash diff."
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := bytes.NewBuffer(nil)
	app.Writer = out
	app.ErrWriter = bytes.NewBuffer(nil)
	cli.OsExiter = func(int) {}

	err := app.Run(append([]string{"rdiff", "--log-level", "disabled"}, args...))
	return out.String(), err
}

func files(t *testing.T) (dir, original, modified string) {
	dir = t.TempDir()
	original = filepath.Join(dir, "original.txt")
	modified = filepath.Join(dir, "modified.txt")

	os.WriteFile(original, []byte(ORIGINAL), 0o644)
	os.WriteFile(modified, []byte(MODIFIED), 0o644)
	return
}

func TestDiffCommand(t *testing.T) {
	_, original, modified := files(t)

	out, err := run(t, "diff", original, modified, "4")
	if err != nil {
		t.Fatal(err)
	}

	for _, line := range []string{
		`Insertion(before, 4, "sap")`,
		`Insertion(before, 24, "i ")`,
		"Deletion(0)",
		"Deletion(20)",
		"Chunks matched: 7 of 9, in 2 spans",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("Missing %q in output:\n%v", line, out)
		}
	}
}

func TestDiffCommandRejectsBadChunkSizes(t *testing.T) {
	_, original, modified := files(t)

	if _, err := run(t, "diff", original, modified, "0"); err == nil {
		t.Error("Expected an error for a zero chunk size")
	}

	if _, err := run(t, "diff", original, modified, "four"); err == nil {
		t.Error("Expected an error for a chunk size that is not a number")
	}

	if _, err := run(t, "diff", original); err == nil {
		t.Error("Expected a usage error")
	}
}

func TestSignatureDeltaPatchCommands(t *testing.T) {
	dir, original, modified := files(t)
	sig := filepath.Join(dir, "original.rsig")
	rdelta := filepath.Join(dir, "changes.rdelta")
	out := filepath.Join(dir, "out.txt")

	if _, err := run(t, "signature", "--chunk-size", "4", original); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(sig); err != nil {
		t.Fatalf("Signature not written next to the original: %v", err)
	}

	if _, err := run(t, "delta", sig, modified, rdelta); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "patch", original, rdelta, out); err != nil {
		t.Fatal(err)
	}

	b, _ := os.ReadFile(out)
	if string(b) != MODIFIED {
		t.Errorf("Unexpected result %q", b)
	}
}

func TestSignatureCommandDoesNotOverwriteTheOriginal(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "data.rsig")
	os.WriteFile(original, []byte(ORIGINAL), 0o644)

	if _, err := run(t, "signature", "--chunk-size", "4", original); err == nil {
		t.Error("Expected an error when the output is the original")
	}

	if _, err := run(t, "signature", "--chunk-size", "4", original, original); err == nil {
		t.Error("Expected an error when the output is the original")
	}

	b, _ := os.ReadFile(original)
	if string(b) != ORIGINAL {
		t.Errorf("Original was changed to %q", b)
	}
}

func TestSignatureCommandWritesNothingForABadChunkSize(t *testing.T) {
	dir, original, _ := files(t)
	sig := filepath.Join(dir, "original.rsig")

	if _, err := run(t, "signature", "--chunk-size", "1024", original); err == nil {
		t.Error("Expected an error for a chunk size giving a single chunk")
	}

	if _, err := os.Stat(sig); !os.IsNotExist(err) {
		t.Errorf("Signature file should not exist: %v", err)
	}
}

func TestConfigFile(t *testing.T) {
	dir, original, modified := files(t)
	cfg := filepath.Join(dir, "rdiff.yaml")
	os.WriteFile(cfg, []byte("chunk_size: 4\n"), 0o644)

	out, err := run(t, "--config", cfg, "diff", original, modified)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "Chunk size: 4") {
		t.Errorf("Configured chunk size was not used:\n%v", out)
	}
}

func TestMissingFile(t *testing.T) {
	dir, original, _ := files(t)

	if _, err := run(t, "diff", original, filepath.Join(dir, "missing"), "4"); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
