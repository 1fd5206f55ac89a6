package rollsum

const (
	// BASE is the largest prime smaller than 2^16
	BASE = 65521
	// NMAX is the largest n such that 255n(n+1)/2 + (n+1)(BASE-1) <= 2^32-1
	NMAX = 5552
)

// NewAdler32Base returns the checksum of the empty sequence
func NewAdler32Base() *Adler32Base {
	return &Adler32Base{s1: 1}
}

// Adler32Base decouples the checksum arithmetic from the storage of the rolling window.
// It is the Adler-32 algorithm with removal of the oldest byte, so the sums stay reduced
// modulo BASE at all times.
// The zero value is not the checksum of the empty sequence, use NewAdler32Base or Reset
type Adler32Base struct {
	s1, s2 uint32
}

// Add a single byte into the checksum
func (r *Adler32Base) AddByte(b byte) {
	r.s1 = (r.s1 + uint32(b)) % BASE
	r.s2 = (r.s2 + r.s1) % BASE
}

// AddBytes gives the same result as calling AddByte for every byte of bs,
// but only reduces the sums once every NMAX bytes
func (r *Adler32Base) AddBytes(bs []byte) {
	s1, s2 := r.s1, r.s2

	for len(bs) > 0 {
		n := len(bs)
		if n > NMAX {
			n = NMAX
		}

		for _, b := range bs[:n] {
			s1 += uint32(b)
			s2 += s1
		}

		s1 %= BASE
		s2 %= BASE
		bs = bs[n:]
	}

	r.s1, r.s2 = s1, s2
}

// Remove the oldest byte from the checksum.
// length is the number of bytes covered by the checksum before the removal.
func (r *Adler32Base) RemoveByte(b byte, length int) {
	l := uint32(length % BASE)
	r.s1 = (r.s1 + BASE - uint32(b)) % BASE
	r.s2 = (r.s2 + BASE - 1 + (BASE-l)*uint32(b)) % BASE
}

// Set the checksum to that of a whole block
func (r *Adler32Base) SetBlock(block []byte) {
	r.Reset()
	r.AddBytes(block)
}

// Reset the checksum to that of the empty sequence
func (r *Adler32Base) Reset() {
	r.s1, r.s2 = 1, 0
}

// Sum32 returns (s2 << 16) | s1
func (r *Adler32Base) Sum32() uint32 {
	return r.s2<<16 | r.s1
}
