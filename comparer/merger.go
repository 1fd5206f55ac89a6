package comparer

import (
	"sort"
)

// a span of multiple chunks, from start to end, which match the chunks
// starting at an offset of ComparisonStartOffset in the modified file
type BlockSpan struct {
	StartBlock int
	EndBlock   int

	// byte offset in the comparison for the match
	ComparisonStartOffset int64
}

// Blocks is the number of chunks in the span
func (b BlockSpan) Blocks() int {
	return b.EndBlock - b.StartBlock + 1
}

func (b BlockSpan) EndOffset(blockSize int64) int64 {
	return b.ComparisonStartOffset + blockSize*int64(b.Blocks())
}

func toBlockSpan(m Match) *BlockSpan {
	return &BlockSpan{
		StartBlock:            m.ChunkIndex,
		EndBlock:              m.ChunkIndex,
		ComparisonStartOffset: m.Offset,
	}
}

func isBordering(a, b *BlockSpan, blockSize int64) bool {
	if a.EndBlock == b.StartBlock-1 && a.EndOffset(blockSize) == b.ComparisonStartOffset {
		return true
	} else if b.EndBlock == a.StartBlock-1 && b.EndOffset(blockSize) == a.ComparisonStartOffset {
		return true
	}

	return false
}

// merges matches into spans of blocks that are contiguous in both files.
// BlockSpans are stored by both start and end block ids
// if anything shares borders of these, they should be merged
type matchMerger struct {
	startEndBlockMap map[int]*BlockSpan
	blockSize        int64
}

// if merged, the block span remaining is the one with the lower start block
func (merger *matchMerger) merge(block1, block2 *BlockSpan) *BlockSpan {
	var a, b *BlockSpan = block1, block2

	if block1.StartBlock > block2.StartBlock {
		a, b = block2, block1
	}

	if !isBordering(a, b, merger.blockSize) {
		return block1
	}

	// A ------ A B ------ B > A ---------------- A
	delete(merger.startEndBlockMap, a.EndBlock)
	delete(merger.startEndBlockMap, b.StartBlock)
	a.EndBlock = b.EndBlock

	merger.startEndBlockMap[a.StartBlock] = a
	merger.startEndBlockMap[a.EndBlock] = a

	return a
}

func (merger *matchMerger) add(m Match) {
	span := toBlockSpan(m)
	blockID := m.ChunkIndex

	preceding, foundBefore := merger.startEndBlockMap[blockID-1]
	following, foundAfter := merger.startEndBlockMap[blockID+1]

	merger.startEndBlockMap[blockID] = span

	if foundBefore {
		span = merger.merge(span, preceding)
	}

	if foundAfter {
		merger.merge(span, following)
	}
}

type BlockSpanList []BlockSpan

func (l BlockSpanList) Len() int {
	return len(l)
}

func (l BlockSpanList) Swap(i, j int) {
	l[i], l[j] = l[j], l[i]
}

func (l BlockSpanList) Less(i, j int) bool {
	return l[i].StartBlock < l[j].StartBlock
}

// Blocks is the total number of chunks covered by the spans
func (l BlockSpanList) Blocks() (n int) {
	for _, s := range l {
		n += s.Blocks()
	}
	return
}

/*
MergeSpans combines matches of consecutive chunks that are also consecutive in the modified file
into spans, sorted by StartBlock. A file that only had content inserted or removed at chunk
boundaries has one span per unchanged region.
*/
func MergeSpans(matches []Match, chunkSize int) (sorted BlockSpanList) {
	merger := &matchMerger{
		startEndBlockMap: make(map[int]*BlockSpan, len(matches)),
		blockSize:        int64(chunkSize),
	}

	for _, m := range matches {
		merger.add(m)
	}

	for key, block := range merger.startEndBlockMap {
		if key == block.StartBlock {
			sorted = append(sorted, *block)
		}
	}

	sort.Sort(sorted)
	return
}
