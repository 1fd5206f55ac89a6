/*
Package chunks provides the basic structure for a pair of the weak and strong checksums of a chunk,
and the splitting of a file into fixed size chunks.
Since this is fairly widely used, splitting this out breaks a number of possible circular dependencies
*/
package chunks

import (
	"fmt"

	"github.com/Redundancy/go-rdiff/rollsum"
	"github.com/zeebo/xxh3"
)

// StrongSum is the non-rolling 64 bit hash (XXH3, seed 0) used to confirm a weak checksum match
func StrongSum(p []byte) uint64 {
	return xxh3.Hash(p)
}

// WeakSum is the Adler-32 checksum of p, as the rolling checksum would compute it
func WeakSum(p []byte) uint32 {
	var r rollsum.Adler32Base
	r.SetBlock(p)
	return r.Sum32()
}

// For a given chunk, the Weak & Strong hashes.
// Computing the strong checksum is not done when comparing unless the weak checksum matches
type ChunkHash struct {
	Weak   uint32
	Strong uint64
}

func NewChunkHash(p []byte) ChunkHash {
	return ChunkHash{
		Weak:   WeakSum(p),
		Strong: StrongSum(p),
	}
}

// Match is true when both levels of the hash are equal.
// Only then is the content considered identical.
func (c ChunkHash) Match(other ChunkHash) bool {
	return c.Weak == other.Weak && c.Strong == other.Strong
}

func (c ChunkHash) String() string {
	return fmt.Sprintf("{weak: %#08x, strong: %#016x}", c.Weak, c.Strong)
}
