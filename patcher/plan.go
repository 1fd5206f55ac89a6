package patcher

import (
	"github.com/Redundancy/go-rdiff/delta"
	"github.com/petar/GoLLRB/llrb"
	"github.com/pkg/errors"
)

var (
	ErrChunkOutOfRange   = errors.New("chunk index is outside of the original")
	ErrDuplicateDeletion = errors.New("chunk is deleted more than once")
)

// an insertion, ordered by anchor, then Before ahead of After, then position in the delta
type insertion struct {
	anchor    int
	placement delta.Placement
	sequence  int
	bytes     []byte
}

func (i insertion) Less(than llrb.Item) bool {
	o := than.(insertion)

	if i.anchor != o.anchor {
		return i.anchor < o.anchor
	}

	if i.placement != o.placement {
		return i.placement < o.placement
	}

	return i.sequence < o.sequence
}

/*
Plan is a delta arranged for applying in chunk order: for each chunk boundary, the literals that go there
and whether the chunk that follows survives.
*/
type Plan struct {
	chunkCount int
	insertions *llrb.LLRB
	deleted    map[int]bool
}

// NewPlan checks that every change refers to a chunk boundary of an original of chunkCount chunks.
// Insertion anchors may be chunkCount itself: the end of the file.
func NewPlan(changes delta.List, chunkCount int) (*Plan, error) {
	p := &Plan{
		chunkCount: chunkCount,
		insertions: llrb.New(),
		deleted:    make(map[int]bool),
	}

	for sequence, c := range changes {
		switch c.Kind {
		case delta.Deletion:
			if c.ChunkIndex < 0 || c.ChunkIndex >= chunkCount {
				return nil, errors.Wrapf(ErrChunkOutOfRange, "deletion of chunk %v of %v", c.ChunkIndex, chunkCount)
			}

			if p.deleted[c.ChunkIndex] {
				return nil, errors.Wrapf(ErrDuplicateDeletion, "chunk %v", c.ChunkIndex)
			}

			p.deleted[c.ChunkIndex] = true

		case delta.Insertion:
			if c.ChunkIndex < 0 || c.ChunkIndex > chunkCount {
				return nil, errors.Wrapf(ErrChunkOutOfRange, "insertion at chunk %v of %v", c.ChunkIndex, chunkCount)
			}

			p.insertions.InsertNoReplace(insertion{
				anchor:    c.ChunkIndex,
				placement: c.Placement,
				sequence:  sequence,
				bytes:     c.Bytes,
			})

		default:
			return nil, errors.Errorf("change %v has unknown kind %v", sequence, c.Kind)
		}
	}

	return p, nil
}

func (p *Plan) ChunkCount() int {
	return p.chunkCount
}

func (p *Plan) Deleted(chunk int) bool {
	return p.deleted[chunk]
}

func (p *Plan) DeletionCount() int {
	return len(p.deleted)
}

func (p *Plan) InsertionCount() int {
	return p.insertions.Len()
}

// InsertionsAt calls fn with the literals placed at the boundary ahead of chunk,
// Before insertions first. Iteration stops if fn returns an error.
func (p *Plan) InsertionsAt(chunk int, fn func(literal []byte) error) (err error) {
	from := insertion{anchor: chunk, sequence: -1}
	to := insertion{anchor: chunk + 1, sequence: -1}

	p.insertions.AscendRange(from, to, func(item llrb.Item) bool {
		err = fn(item.(insertion).bytes)
		return err == nil
	})

	return
}
