/*
Package delta holds the result of comparing a modified file against the signature of an original:
an ordered list of changes that turns the original into the modified file.

A Deletion names an original chunk that was not found in the modified file.
An Insertion carries literal bytes of the modified file, placed Before or After a chunk boundary
of the original. Positions are chunk indices; the byte offset in the original is index * chunk size.

The order of a List is significant: Before insertions in the order they were found, then deletions
in ascending chunk order, then at most one trailing After insertion.
*/
package delta

import (
	"bytes"
	"fmt"
)

type Kind uint8

const (
	Insertion Kind = iota + 1
	Deletion
)

func (k Kind) String() string {
	switch k {
	case Insertion:
		return "insertion"
	case Deletion:
		return "deletion"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Placement of an insertion relative to its anchor
type Placement uint8

const (
	// no placement, for deletions
	None Placement = iota
	Before
	After
)

func (p Placement) String() string {
	switch p {
	case None:
		return "none"
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return fmt.Sprintf("Placement(%d)", uint8(p))
	}
}

type Change struct {
	Kind Kind
	// the deleted chunk, or the anchor chunk of an insertion
	ChunkIndex int
	// only for insertions
	Placement Placement
	// literal bytes, only for insertions
	Bytes []byte
}

func NewDeletion(chunkIndex int) Change {
	return Change{
		Kind:       Deletion,
		ChunkIndex: chunkIndex,
	}
}

func NewInsertion(anchor int, placement Placement, literal []byte) Change {
	return Change{
		Kind:       Insertion,
		ChunkIndex: anchor,
		Placement:  placement,
		Bytes:      literal,
	}
}

func (c Change) IsInsertion() bool {
	return c.Kind == Insertion
}

func (c Change) IsDeletion() bool {
	return c.Kind == Deletion
}

// Offset is the byte offset of the chunk boundary in the original file
func (c Change) Offset(chunkSize int) int64 {
	return int64(c.ChunkIndex) * int64(chunkSize)
}

func (c Change) Equal(other Change) bool {
	return c.Kind == other.Kind &&
		c.ChunkIndex == other.ChunkIndex &&
		c.Placement == other.Placement &&
		bytes.Equal(c.Bytes, other.Bytes)
}

func (c Change) String() string {
	if c.Kind == Deletion {
		return fmt.Sprintf("Deletion(chunk %d)", c.ChunkIndex)
	}
	return fmt.Sprintf("Insertion(%v chunk %d, %q)", c.Placement, c.ChunkIndex, c.Bytes)
}

// Format is String, with chunk boundaries as byte offsets
func (c Change) Format(chunkSize int) string {
	if c.Kind == Deletion {
		return fmt.Sprintf("Deletion(%d)", c.Offset(chunkSize))
	}
	return fmt.Sprintf("Insertion(%v, %d, %q)", c.Placement, c.Offset(chunkSize), c.Bytes)
}

type List []Change

func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}

	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}

	return true
}

// Insertions in list order
func (l List) Insertions() List {
	return l.filter(Insertion)
}

// Deletions in list order
func (l List) Deletions() List {
	return l.filter(Deletion)
}

func (l List) filter(k Kind) (result List) {
	for _, c := range l {
		if c.Kind == k {
			result = append(result, c)
		}
	}
	return
}

// LiteralBytes is the total size of the inserted literals
func (l List) LiteralBytes() (n int64) {
	for _, c := range l {
		n += int64(len(c.Bytes))
	}
	return
}
