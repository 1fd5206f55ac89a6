/*
Package signature describes an original file as the ordered weak and strong checksums of its chunks,
and keeps track of which chunks have already been matched during a scan of a modified file.

Each chunk may be matched at most once. When several chunks share the same content, the lowest index
that has not yet been matched wins, so duplicated content is consumed from left to right.

A Table is not safe for concurrent use. Scanning the same original concurrently needs a Clone per scan.
*/
package signature

import (
	"iter"

	"github.com/Redundancy/go-rdiff/chunks"
	"github.com/Redundancy/go-rdiff/index"
)

type Table struct {
	hashes   []chunks.ChunkHash
	weak     *index.WeakIndex
	consumed bitset
	matched  int
}

// Build hashes every chunk, in order. The chunk index is the position in the input.
func Build(chunkList [][]byte) *Table {
	hashes := make([]chunks.ChunkHash, len(chunkList))

	for i, c := range chunkList {
		hashes[i] = chunks.NewChunkHash(c)
	}

	return FromHashes(hashes)
}

// FromHashes makes a table from previously computed hashes, such as those read from a signature file.
// The table keeps the slice.
func FromHashes(hashes []chunks.ChunkHash) *Table {
	return &Table{
		hashes:   hashes,
		weak:     index.MakeWeakIndex(hashes),
		consumed: newBitset(len(hashes)),
	}
}

// Len is the number of chunks
func (t *Table) Len() int {
	return len(t.hashes)
}

// Get the hash of chunk i
func (t *Table) Get(i int) (chunks.ChunkHash, bool) {
	if i < 0 || i >= len(t.hashes) {
		return chunks.ChunkHash{}, false
	}
	return t.hashes[i], true
}

// Hashes returns the chunk hashes in order. The slice must not be modified.
func (t *Table) Hashes() []chunks.ChunkHash {
	return t.hashes
}

// WeakCount is the number of distinct weak checksums in the table
func (t *Table) WeakCount() int {
	return t.weak.WeakCount()
}

// Lookup is the outcome of looking for a window in the table
type Lookup struct {
	// Index of the matched chunk, -1 if nothing matched
	Index int
	// at least one chunk has the weak checksum
	WeakHit bool
	// at least one chunk with the weak checksum also had the strong checksum,
	// even if all such chunks were already consumed
	StrongHit bool
}

func (l Lookup) Matched() bool {
	return l.Index >= 0
}

// Find looks for the first chunk, in ascending index order, whose weak checksum is weak,
// whose strong checksum is that of window, and which has not been consumed.
// A matching chunk is marked as consumed before returning.
func (t *Table) Find(weak uint32, window []byte) Lookup {
	result := Lookup{Index: -1}
	candidates := t.weak.Candidates(weak)

	if len(candidates) == 0 {
		return result
	}

	result.WeakHit = true
	strong := chunks.StrongSum(window)

	// a consumed chunk or a strong mismatch does not stop the search
	for _, i := range candidates {
		if t.hashes[i].Strong != strong {
			continue
		}

		result.StrongHit = true

		if t.consumed.has(i) {
			continue
		}

		t.consumed.set(i)
		t.matched++
		result.Index = i
		return result
	}

	return result
}

// TryMatch is Find, returning only the matched index
func (t *Table) TryMatch(weak uint32, window []byte) (int, bool) {
	l := t.Find(weak, window)
	return l.Index, l.Matched()
}

// IsConsumed is true if chunk i has been matched
func (t *Table) IsConsumed(i int) bool {
	return t.consumed.has(i)
}

// ConsumedCount is the number of matched chunks
func (t *Table) ConsumedCount() int {
	return t.matched
}

// Unconsumed lazily yields the indices of chunks that were never matched, in ascending order
func (t *Table) Unconsumed() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range t.hashes {
			if t.consumed.has(i) {
				continue
			}

			if !yield(i) {
				return
			}
		}
	}
}

// ResetConsumed forgets all matches, so the table can be scanned against again
func (t *Table) ResetConsumed() {
	t.consumed.clear()
	t.matched = 0
}

// Clone shares the immutable hashes and index, but has its own consumed set
func (t *Table) Clone() *Table {
	return &Table{
		hashes:   t.hashes,
		weak:     t.weak,
		consumed: t.consumed.clone(),
		matched:  t.matched,
	}
}
