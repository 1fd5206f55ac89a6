package patcher

import (
	"bytes"
	"errors"
	"testing"
)

const ORIGINAL = "sample data for rolling hash diff."

func TestBytesSource(t *testing.T) {
	s := NewBytesSource([]byte(ORIGINAL), 4)

	if s.ChunkCount() != 9 {
		t.Fatalf("Unexpected chunk count %v", s.ChunkCount())
	}

	if c, err := s.ReadChunk(8); err != nil || string(c) != "f." {
		t.Errorf("Unexpected last chunk %q (%v)", c, err)
	}

	if _, err := s.ReadChunk(9); !errors.Is(err, ErrChunkOutOfRange) {
		t.Errorf("Expected ErrChunkOutOfRange, got %v", err)
	}
}

func TestReaderAtSourceMatchesBytesSource(t *testing.T) {
	b := NewBytesSource([]byte(ORIGINAL), 4)
	r := NewReaderAtSource(bytes.NewReader([]byte(ORIGINAL)), int64(len(ORIGINAL)), 4)

	if r.ChunkCount() != b.ChunkCount() {
		t.Fatalf("Chunk counts differ: %v vs %v", r.ChunkCount(), b.ChunkCount())
	}

	for i := 0; i < b.ChunkCount(); i++ {
		expected, _ := b.ReadChunk(i)
		got, err := r.ReadChunk(i)

		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(got, expected) {
			t.Errorf("Chunk %v: %q vs %q", i, got, expected)
		}
	}

	if _, err := r.ReadChunk(-1); !errors.Is(err, ErrChunkOutOfRange) {
		t.Errorf("Expected ErrChunkOutOfRange, got %v", err)
	}
}

func TestReaderAtSourceOnATruncatedFile(t *testing.T) {
	r := NewReaderAtSource(bytes.NewReader([]byte("sample")), int64(len(ORIGINAL)), 4)

	if _, err := r.ReadChunk(3); err == nil {
		t.Error("Expected an error reading past the end of the file")
	}
}
