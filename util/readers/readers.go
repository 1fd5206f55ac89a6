/*
Package readers generates deterministic input for tests and benchmarks:
original files, and modified versions of them built by splicing readers together.
*/
package readers

import (
	"encoding/binary"
	"io"
)

const nonRepeatingModulo = 87178291199
const nonRepeatingIncrement = 17180131327

// *should* produce a non-repeating sequence of bytes in a deterministic fashion,
// so that no two chunks of a generated original are the same.
// use io.LimitReader to limit it to a specific length
type nonRepeatingSequenceReader struct {
	value int
}

func NewNonRepeatingSequence(seed int) io.Reader {
	return &nonRepeatingSequenceReader{seed}
}

func NewSizedNonRepeatingSequence(seed int, size int64) io.Reader {
	return io.LimitReader(NewNonRepeatingSequence(seed), size)
}

func (r *nonRepeatingSequenceReader) Read(p []byte) (n int, err error) {
	b := make([]byte, 4)

	for i := range p {
		binary.LittleEndian.PutUint32(b, uint32(r.value))
		p[i] = b[0]
		r.value = (r.value + nonRepeatingIncrement) % nonRepeatingModulo
	}

	return len(p), nil
}

// Reads a continuous stream of bytes with the same value, up to length
type uniformReader struct {
	value     byte
	remaining int
}

func UniformReader(value byte, length int) io.Reader {
	return &uniformReader{value: value, remaining: length}
}

func ZeroReader(length int) io.Reader {
	return UniformReader(0, length)
}

func OneReader(length int) io.Reader {
	return UniformReader(1, length)
}

func (r *uniformReader) Read(p []byte) (n int, err error) {
	if r.remaining == 0 {
		return 0, io.EOF
	}

	n = min(len(p), r.remaining)

	for i := 0; i < n; i++ {
		p[i] = r.value
	}

	r.remaining -= n

	if r.remaining == 0 {
		err = io.EOF
	}

	return n, err
}

// InjectedReader inserts inject into base, offsetFromStart bytes in
func InjectedReader(offsetFromStart int64, base io.Reader, inject io.Reader) io.Reader {
	return io.MultiReader(
		io.LimitReader(base, offsetFromStart),
		inject,
		base,
	)
}

// SequenceLimit reads from readers in sequence up to a limit of size bytes
func SequenceLimit(size int64, readers ...io.Reader) io.Reader {
	return io.LimitReader(io.MultiReader(readers...), size)
}
