/*
Package index provides the lookup from a weak checksum to the chunks of a reference file that carry it,
so that a rolling window only has its strong checksum computed when a weak checksum is present.

Candidates are kept in ascending chunk order. Walking them in order and taking the first acceptable one
gives exactly the same answer as walking the whole signature from the first chunk, while touching only
the chunks that share the weak checksum.
*/
package index

import (
	"github.com/Redundancy/go-rdiff/chunks"
)

type WeakIndex struct {
	BlockCount int
	// weak checksum -> ascending chunk indices
	weakChecksumLookup map[uint32][]int
}

// Builds an index in which chunks can be found by their weak checksum, with their corresponding indices
func MakeWeakIndex(hashes []chunks.ChunkHash) *WeakIndex {
	n := &WeakIndex{
		BlockCount:         len(hashes),
		weakChecksumLookup: make(map[uint32][]int, len(hashes)),
	}

	// appending in order keeps every list sorted
	for i, h := range hashes {
		n.weakChecksumLookup[h.Weak] = append(n.weakChecksumLookup[h.Weak], i)
	}

	return n
}

// The number of distinct weak checksums
func (index *WeakIndex) WeakCount() int {
	return len(index.weakChecksumLookup)
}

// Candidates returns the ascending indices of the chunks with the weak checksum, nil if there are none.
// The returned slice must not be modified.
func (index *WeakIndex) Candidates(weak uint32) []int {
	return index.weakChecksumLookup[weak]
}

// Contains is true if any chunk has the weak checksum
func (index *WeakIndex) Contains(weak uint32) bool {
	_, ok := index.weakChecksumLookup[weak]
	return ok
}
