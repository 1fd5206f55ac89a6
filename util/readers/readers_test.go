package readers

import (
	"bytes"
	"io"
	"testing"
)

func TestNonRepeatingSequenceReader(t *testing.T) {
	i := NewNonRepeatingSequence(0)
	a := []byte{0}
	b := []byte{0}

	i.Read(a)
	i.Read(b)

	if a[0] == b[0] {
		t.Fatalf("Bytes should not be the same! %v vs %v", a, b)
	}
}

func TestNonRepeatingSequenceIsDifferent(t *testing.T) {
	a, _ := io.ReadAll(NewSizedNonRepeatingSequence(0, 100))
	b, _ := io.ReadAll(NewSizedNonRepeatingSequence(5, 100))

	commonalities := 0
	for x := range a {
		if a[x] == b[x] {
			commonalities++
		}
	}

	if commonalities > 5 {
		t.Fatal("Sequences are too similar")
	}
}

func TestNonRepeatingSequenceIsDeterministic(t *testing.T) {
	a, _ := io.ReadAll(NewSizedNonRepeatingSequence(3, 1000))
	b, _ := io.ReadAll(NewSizedNonRepeatingSequence(3, 1000))

	if !bytes.Equal(a, b) {
		t.Error("Same seed gave different bytes")
	}
}

func TestUniformReaderLength(t *testing.T) {
	r, err := io.ReadAll(OneReader(100))

	if err != nil {
		t.Fatal(err)
	}

	if len(r) != 100 {
		t.Errorf("Unexpected length: %v", len(r))
	}

	for i, b := range r {
		if b != 1 {
			t.Errorf("Byte at position %v is not 1: %v", i, b)
		}
	}
}

func TestReadIntoLargerBuffer(t *testing.T) {
	b := make([]byte, 100)
	r := ZeroReader(10)

	n, err := r.Read(b)

	if n != 10 {
		t.Errorf("Wrong read length: %v", n)
	}

	if err != io.EOF {
		t.Errorf("Did not raise EOF after reading: %v", err)
	}
}

func TestEmptyUniformReader(t *testing.T) {
	if n, err := UniformReader(7, 0).Read(make([]byte, 4)); n != 0 || err != io.EOF {
		t.Errorf("Expected EOF, got %v %v", n, err)
	}
}

func TestInjectedReader(t *testing.T) {
	r, err := io.ReadAll(InjectedReader(
		4,
		bytes.NewBufferString("abcdefgh"),
		UniformReader('-', 2),
	))

	if err != nil {
		t.Fatal(err)
	}

	if string(r) != "abcd--efgh" {
		t.Errorf("Unexpected result %q", r)
	}
}

func TestSequenceLimit(t *testing.T) {
	r, err := io.ReadAll(SequenceLimit(
		100,
		OneReader(12),
		NewNonRepeatingSequence(0),
	))

	if err != nil {
		t.Fatal(err)
	}

	if len(r) != 100 {
		t.Errorf("Unexpected length %v", len(r))
	}

	if !bytes.Equal(r[:12], bytes.Repeat([]byte{1}, 12)) {
		t.Errorf("Unexpected start %v", r[:12])
	}
}

func BenchmarkNonRepeatingSequence(b *testing.B) {
	b.SetBytes(1)

	s := NewSizedNonRepeatingSequence(0, int64(b.N))

	b.ResetTimer()
	if _, err := io.Copy(io.Discard, s); err != nil {
		b.Fatal(err)
	}
}
