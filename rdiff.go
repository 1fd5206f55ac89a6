/*
rdiff computes binary deltas in the manner of rsync: the original file is split into fixed size chunks,
each described by a weak rolling checksum (Adler-32) and a strong hash (xxh3). A rolling window moved
byte by byte over the modified file finds the chunks that survived, wherever they moved to, and the delta
records the bytes around them as insertions and the chunks that were not found as deletions.

The packages below follow the data:
  - rollsum: the rolling Adler-32 checksum
  - chunks: chunking and chunk hashes
  - signature: the table of chunk hashes of an original, and its file format
  - comparer: the scanner that produces a delta.List
  - delta: changes, and the delta file format
  - patcher: rebuilding the modified file from the original and a delta

This package ties them together for the common case of two files on disk, and is what the rdiff command uses.
*/
package rdiff

import (
	"github.com/Redundancy/go-rdiff/chunks"
	"github.com/Redundancy/go-rdiff/comparer"
	"github.com/Redundancy/go-rdiff/config"
	"github.com/Redundancy/go-rdiff/delta"
	"github.com/Redundancy/go-rdiff/signature"
)

// Diff returns the changes that turn original into modified.
// chunkSize must split original into at least 2 chunks.
func Diff(original, modified []byte, chunkSize int) (delta.List, error) {
	if err := config.ValidateChunkSize(chunkSize, int64(len(original))); err != nil {
		return nil, err
	}

	table := signature.Build(chunks.Split(original, chunkSize))
	return comparer.Scan(table, modified, chunkSize), nil
}

// Stats describes how a delta was found
type Stats struct {
	Comparisons    int64
	WeakHashHits   int64
	StrongHashHits int64

	ChunkCount   int
	Matched      int
	Deleted      int
	Insertions   int
	LiteralBytes int64

	// runs of chunks that are unchanged and in the same order
	Spans comparer.BlockSpanList
}

// Result of comparing two files
type Result struct {
	Changes   delta.List
	ChunkSize int
	Stats     Stats
}

func newStats(s *comparer.Scanner, table *signature.Table, changes delta.List, chunkSize int) Stats {
	return Stats{
		Comparisons:    s.Comparisons,
		WeakHashHits:   s.WeakHashHits,
		StrongHashHits: s.StrongHashHits,
		ChunkCount:     table.Len(),
		Matched:        table.ConsumedCount(),
		Deleted:        len(changes.Deletions()),
		Insertions:     len(changes.Insertions()),
		LiteralBytes:   changes.LiteralBytes(),
		Spans:          comparer.MergeSpans(s.Matches(), chunkSize),
	}
}
