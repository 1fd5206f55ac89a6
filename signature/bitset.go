package signature

// bitset marks chunk indices, one bit per chunk
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) has(i int) bool {
	return b[i/64]&(1<<(uint(i)%64)) != 0
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << (uint(i) % 64)
}

func (b bitset) clear() {
	for i := range b {
		b[i] = 0
	}
}

func (b bitset) clone() bitset {
	c := make(bitset, len(b))
	copy(c, b)
	return c
}
