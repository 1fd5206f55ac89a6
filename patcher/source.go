/*
Package patcher follows a pattern established by hash, which defines the interface in the top level package, and then provides implementations
below it.

A patcher rebuilds the modified file from the chunks of the original and a delta.List.
*/
package patcher

import (
	"io"

	"github.com/Redundancy/go-rdiff/chunks"
	"github.com/pkg/errors"
)

/*
ChunkSource is used by the patchers to obtain chunks of the original.
It does not stipulate where the original data might be (in memory, a local file or somewhere else),
only that chunks are numbered from 0 and that every chunk but the last is the full chunk size.
*/
type ChunkSource interface {
	ChunkCount() int
	ReadChunk(i int) ([]byte, error)
}

// BytesSource serves chunks of an in-memory original
type BytesSource struct {
	parts [][]byte
}

func NewBytesSource(p []byte, chunkSize int) *BytesSource {
	return &BytesSource{parts: chunks.Split(p, chunkSize)}
}

func (s *BytesSource) ChunkCount() int {
	return len(s.parts)
}

func (s *BytesSource) ReadChunk(i int) ([]byte, error) {
	if i < 0 || i >= len(s.parts) {
		return nil, errors.Wrapf(ErrChunkOutOfRange, "chunk %v of %v", i, len(s.parts))
	}
	return s.parts[i], nil
}

// ReaderAtSource reads chunks on demand, for originals that are files
type ReaderAtSource struct {
	r         io.ReaderAt
	size      int64
	chunkSize int
	buffer    []byte
}

func NewReaderAtSource(r io.ReaderAt, size int64, chunkSize int) *ReaderAtSource {
	return &ReaderAtSource{
		r:         r,
		size:      size,
		chunkSize: chunkSize,
		buffer:    make([]byte, chunkSize),
	}
}

func (s *ReaderAtSource) ChunkCount() int {
	return chunks.Count(s.size, s.chunkSize)
}

// ReadChunk returns a buffer that is reused by the next call
func (s *ReaderAtSource) ReadChunk(i int) ([]byte, error) {
	if i < 0 || i >= s.ChunkCount() {
		return nil, errors.Wrapf(ErrChunkOutOfRange, "chunk %v of %v", i, s.ChunkCount())
	}

	length := s.chunkSize
	if i == s.ChunkCount()-1 {
		length = chunks.LastChunkSize(s.size, s.chunkSize)
	}

	n, err := s.r.ReadAt(s.buffer[:length], int64(i)*int64(s.chunkSize))

	// ReaderAt may return EOF with a full read of the last chunk
	if n == length {
		return s.buffer[:n], nil
	}

	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}

	return nil, errors.Wrapf(err, "reading chunk %v", i)
}
