/*
package comparer moves a rolling checksum through a modified file, byte by byte, comparing each
window to a signature table of the original. Matching windows become chunk boundaries, everything
in between becomes literal insertions, and any chunk of the original that never matched is deleted.

The scan is sequential and never fails: the only errors come from reading input in ScanReader.
A Scanner consumes chunks of its table as it matches them, so a table serves one scan at a time.
Use signature.Table.Clone to compare several files against the same original concurrently.
*/
package comparer

import (
	"bufio"
	"io"

	"github.com/Redundancy/go-rdiff/delta"
	"github.com/Redundancy/go-rdiff/rollsum"
	"github.com/Redundancy/go-rdiff/signature"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type State int

const (
	// window shorter than a chunk, waiting for more bytes
	Accumulating State = iota
	// window is a full chunk (or the end of the input), looking it up
	Probing
	// no match, the oldest byte of the window becomes a literal
	Sliding
	// emitting deletions and the trailing insertion
	Finalizing
	Done
)

func (s State) String() string {
	switch s {
	case Accumulating:
		return "accumulating"
	case Probing:
		return "probing"
	case Sliding:
		return "sliding"
	case Finalizing:
		return "finalizing"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Match is a chunk of the original found in the modified file
type Match struct {
	ChunkIndex int
	// where the chunk starts in the modified file
	Offset int64
}

// Scanner produces the delta from an original (as a signature table) to a modified file.
// A Scanner is used for a single scan.
type Scanner struct {
	table     *signature.Table
	chunkSize int
	rollsum   *rollsum.Adler32

	// bytes that fell out of the window without being part of a match
	literals []byte

	// last matched chunk index, -1 before the first match
	last int

	// bytes of the modified file seen so far
	offset int64

	matches []Match
	changes delta.List
	state   State

	// windows looked up in the table
	Comparisons int64

	// lookups where some chunk had the weak checksum
	WeakHashHits int64

	// lookups where some chunk had both checksums, consumed or not
	StrongHashHits int64

	Logger zerolog.Logger
}

// NewScanner prepares a scan against table. The table must have been built with chunkSize.
func NewScanner(table *signature.Table, chunkSize int) *Scanner {
	return &Scanner{
		table:     table,
		chunkSize: chunkSize,
		rollsum:   rollsum.New(),
		last:      -1,
		state:     Accumulating,
		Logger:    zerolog.Nop(),
	}
}

// Scan compares modified against the table, consuming matched chunks from it
func Scan(table *signature.Table, modified []byte, chunkSize int) delta.List {
	return NewScanner(table, chunkSize).Scan(modified)
}

// Scan runs the whole comparison over modified and returns the changes
func (s *Scanner) Scan(modified []byte) delta.List {
	last := len(modified) - 1

	for i, b := range modified {
		s.next(b, i == last)
	}

	return s.finalize()
}

// ScanReader is Scan over the content of r, read to EOF
func (s *Scanner) ScanReader(r io.Reader) (delta.List, error) {
	br := bufio.NewReader(r)

	current, err := br.ReadByte()

	for err == nil {
		var following byte
		following, err = br.ReadByte()

		s.next(current, err != nil)
		current = following
	}

	if err != io.EOF {
		return nil, errors.Wrap(err, "reading modified file")
	}

	return s.finalize(), nil
}

func (s *Scanner) next(b byte, isLast bool) {
	s.rollsum.RollIn(b)
	s.offset++

	if s.rollsum.Len() < s.chunkSize && !isLast {
		s.state = Accumulating
		return
	}

	if s.rollsum.Len() > s.chunkSize {
		s.state = Sliding
		out, _ := s.rollsum.RollOut()
		s.literals = append(s.literals, out)
	}

	s.state = Probing
	s.probe()
}

func (s *Scanner) probe() {
	window := s.rollsum.Window()
	l := s.table.Find(s.rollsum.Sum32(), window)

	s.Comparisons++
	if l.WeakHit {
		s.WeakHashHits++
	}
	if l.StrongHit {
		s.StrongHashHits++
	}

	if !l.Matched() {
		return
	}

	idx := l.Index

	if len(s.literals) > 0 {
		s.changes = append(s.changes, delta.NewInsertion(idx, delta.Before, s.literals))
		s.literals = nil
	}

	s.Logger.Debug().
		Int("chunk", idx).
		Int("length", len(window)).
		Msg("matched chunk")

	s.last = idx
	s.matches = append(s.matches, Match{
		ChunkIndex: idx,
		Offset:     s.offset - int64(len(window)),
	})
	s.rollsum.Reset()
	s.state = Accumulating
}

func (s *Scanner) finalize() delta.List {
	s.state = Finalizing

	for i := range s.table.Unconsumed() {
		s.changes = append(s.changes, delta.NewDeletion(i))
	}

	if s.rollsum.Len() > 0 || len(s.literals) > 0 {
		s.literals = append(s.literals, s.rollsum.Window()...)
		s.rollsum.Reset()

		anchor := 1
		if s.last >= 0 {
			anchor = s.last + 1
		}

		s.changes = append(s.changes, delta.NewInsertion(anchor, delta.After, s.literals))
		s.literals = nil
	}

	s.Logger.Debug().
		Int("matched", len(s.matches)).
		Int("changes", len(s.changes)).
		Int64("comparisons", s.Comparisons).
		Msg("scan complete")

	s.state = Done
	return s.changes
}

// State of the scan, Done once Scan or ScanReader returned
func (s *Scanner) State() State {
	return s.state
}

// Matches in the order they were found
func (s *Scanner) Matches() []Match {
	return s.matches
}

// Matched is the chunk indices that were found, in the order they were found
func (s *Scanner) Matched() []int {
	result := make([]int, len(s.matches))
	for i, m := range s.matches {
		result[i] = m.ChunkIndex
	}
	return result
}

// LastMatched is the most recently matched chunk index
func (s *Scanner) LastMatched() (int, bool) {
	return s.last, s.last >= 0
}
