package rollsum

// window is an ordered byte queue, oldest to newest, which can always be viewed
// as a single contiguous slice. Unlike a circular buffer it has no fixed capacity,
// the live region is compacted to the front of the storage once the dead prefix
// is at least as large as it, so push and pop are amortized O(1).
type window struct {
	buf  []byte
	head int
}

func (w *window) push(b byte) {
	if w.head > 0 && len(w.buf) == cap(w.buf) && w.head >= len(w.buf)-w.head {
		n := copy(w.buf, w.buf[w.head:])
		w.buf = w.buf[:n]
		w.head = 0
	}

	w.buf = append(w.buf, b)
}

// pop must not be called on an empty window
func (w *window) pop() byte {
	b := w.buf[w.head]
	w.head++

	if w.head == len(w.buf) {
		w.reset()
	}

	return b
}

func (w *window) bytes() []byte {
	return w.buf[w.head:]
}

func (w *window) size() int {
	return len(w.buf) - w.head
}

func (w *window) reset() {
	w.buf = w.buf[:0]
	w.head = 0
}
