package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Redundancy/go-rdiff/fileio"
)

func TestDefault(t *testing.T) {
	c := Default()

	if c.ChunkSize != 1024 || c.LogLevel != "info" || c.LogFormat != "console" {
		t.Errorf("Unexpected defaults %+v", c)
	}

	if err := c.Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	c, err := Load(strings.NewReader("chunk_size: 4\nlog_format: json\n"))
	if err != nil {
		t.Fatal(err)
	}

	if c.ChunkSize != 4 || c.LogFormat != "json" || c.LogLevel != "info" {
		t.Errorf("Unexpected config %+v", c)
	}
}

func TestLoadEmptyGivesDefaults(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}

	if *c != *Default() {
		t.Errorf("Unexpected config %+v", c)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("chunk_sise: 4\n"))

	if !IsConfigError(err) {
		t.Errorf("Expected a ConfigError, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rdiff.yaml")
	os.WriteFile(path, []byte("chunk_size: 16\nlog_level: debug\n"), 0o644)

	c, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if c.ChunkSize != 16 || c.LogLevel != "debug" {
		t.Errorf("Unexpected config %+v", c)
	}

	if _, err := LoadFile(path + ".missing"); !fileio.IsIOError(err) {
		t.Errorf("Expected an IOError, got %v", err)
	}
}

func TestFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rdiff.yaml")
	os.WriteFile(path, []byte("chunk_size: 8\n"), 0o644)

	t.Setenv("RDIFF_CONFIG", path)

	c, err := FromEnvironment()
	if err != nil {
		t.Fatal(err)
	}

	if c.ChunkSize != 8 {
		t.Errorf("Unexpected config %+v", c)
	}

	t.Setenv("RDIFF_CONFIG", "")

	if c, _ := FromEnvironment(); *c != *Default() {
		t.Errorf("Expected defaults, got %+v", c)
	}
}

func TestZeroChunkSize(t *testing.T) {
	c := Default()
	c.ChunkSize = 0

	err := c.Validate()

	if !errors.Is(err, ErrChunkSizeZero) || !IsConfigError(err) {
		t.Errorf("Expected ErrChunkSizeZero, got %v", err)
	}

	if err.Error() != "chunk_size: chunk size must be non zero" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestTooFewChunks(t *testing.T) {
	c := Default()
	c.ChunkSize = 34

	if err := c.ValidateFor(34); !errors.Is(err, ErrTooFewChunks) {
		t.Errorf("Expected ErrTooFewChunks, got %v", err)
	}

	if err := c.ValidateFor(35); err != nil {
		t.Errorf("Two chunks should be enough: %v", err)
	}

	if err := ValidateChunkSize(4, 0); !errors.Is(err, ErrTooFewChunks) {
		t.Errorf("An empty original has no chunks: %v", err)
	}
}

func TestUnknownLogFormat(t *testing.T) {
	c := Default()
	c.LogFormat = "xml"

	if err := c.Validate(); !IsConfigError(err) {
		t.Errorf("Expected a ConfigError, got %v", err)
	}
}

func TestWriteThenLoad(t *testing.T) {
	c := Default()
	c.ChunkSize = 64

	buffer := bytes.NewBuffer(nil)
	if err := c.Write(buffer); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(buffer)
	if err != nil {
		t.Fatal(err)
	}

	if *loaded != *c {
		t.Errorf("Config changed: %+v vs %+v", loaded, c)
	}
}
