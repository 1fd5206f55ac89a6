/*
Package indexbuilder provides a few shortcuts to building a signature table by generating
the chunk hashes of an original, and building the table from those.
*/
package indexbuilder

import (
	"bytes"
	"io"

	"github.com/Redundancy/go-rdiff/filechecksum"
	"github.com/Redundancy/go-rdiff/signature"
)

// BuildTable generates a signature table from a reader, along with the checksum of the whole file.
// Only the hashes are kept, so the original does not need to fit in memory.
func BuildTable(r io.Reader, chunkSize int) (table *signature.Table, fileChecksum []byte, err error) {
	hashes, fileChecksum, err := filechecksum.NewGenerator(chunkSize).GenerateHashes(r)

	if err != nil {
		return nil, nil, err
	}

	return signature.FromHashes(hashes), fileChecksum, nil
}

// This is mostly a utility function to avoid being overly verbose in tests that need
// a table to work, but don't want to construct one by hand
func BuildTableFromString(original string, chunkSize int) (*signature.Table, []byte, error) {
	return BuildTable(bytes.NewBufferString(original), chunkSize)
}

// Header describes the original for a signature file
func Header(size int64, chunkSize int, fileChecksum []byte) signature.Header {
	h := signature.Header{
		ChunkSize: uint32(chunkSize),
		FileSize:  size,
	}
	copy(h.FileChecksum[:], fileChecksum)
	return h
}
