/*
rollsum provides the weak rolling checksum used to find candidate chunks: Adler-32,
with the ability to remove the oldest byte of the window in O(1).

Adler32Base holds only the arithmetic. Adler32 adds the window of bytes that the checksum
currently covers, which is what the delta scanner slides over the modified file.
Adler32 satisfies hash.Hash32, and for any input its Sum32 equals hash/adler32.Checksum.
*/
package rollsum

// New returns the checksum of the empty sequence, with an empty window
func New() *Adler32 {
	return &Adler32{
		Adler32Base: *NewAdler32Base(),
	}
}

// Adler32 is a rolling Adler-32 checksum over a window of bytes.
// It cannot be used concurrently.
type Adler32 struct {
	Adler32Base
	window window
	count  int
}

// RollIn appends b to the window
func (r *Adler32) RollIn(b byte) {
	r.AddByte(b)
	r.window.push(b)
	r.count++
}

// RollOut evicts and returns the oldest byte of the window.
// On an empty window nothing is evicted and ok is false.
func (r *Adler32) RollOut() (b byte, ok bool) {
	length := r.window.size()

	if length == 0 {
		r.count = 0
		return 0, false
	}

	b = r.window.pop()
	r.RemoveByte(b, length)
	r.count--

	return b, true
}

// WriteBytes adds p to the checksum without keeping it in the window.
// This is for hashing a whole chunk at once, where nothing will be rolled out.
func (r *Adler32) WriteBytes(p []byte) {
	r.AddBytes(p)
	r.count += len(p)
}

// io.Writer, see WriteBytes
func (r *Adler32) Write(p []byte) (n int, err error) {
	r.WriteBytes(p)
	return len(p), nil
}

// Sum appends the big-endian checksum to b and returns the resulting slice.
// It does not change the underlying hash state.
func (r *Adler32) Sum(b []byte) []byte {
	s := r.Sum32()
	return append(b, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

// the number of bytes
func (r *Adler32) Size() int {
	return 4
}

func (r *Adler32) BlockSize() int {
	return 4
}

// Reset clears the window and returns to the checksum of the empty sequence
func (r *Adler32) Reset() {
	r.Adler32Base.Reset()
	r.window.reset()
	r.count = 0
}

// Window returns the bytes currently in the window, oldest to newest.
// The slice is only valid until the next call that changes the window.
func (r *Adler32) Window() []byte {
	return r.window.bytes()
}

// Len is the number of bytes in the window
func (r *Adler32) Len() int {
	return r.window.size()
}

// Count is the number of bytes covered by the checksum, including those
// added with WriteBytes
func (r *Adler32) Count() int {
	return r.count
}
