package filechecksum

import (
	"bytes"
	"encoding/hex"
	"hash"
	"io"

	"github.com/pkg/errors"
)

var ErrChecksumMismatch = errors.New("file checksum does not match")

// Verify that p has the whole-file checksum expected
func Verify(p []byte, expected []byte) error {
	return check(Sum(p), expected)
}

func check(actual, expected []byte) error {
	if !bytes.Equal(actual, expected) {
		return errors.Wrapf(
			ErrChecksumMismatch,
			"expected %v, got %v",
			hex.EncodeToString(expected),
			hex.EncodeToString(actual),
		)
	}
	return nil
}

// HashVerifier checksums everything written through it, for checking a file while it is streamed out
type HashVerifier struct {
	w    io.Writer
	hash hash.Hash
	n    int64
}

func NewHashVerifier(w io.Writer) *HashVerifier {
	return &HashVerifier{
		w:    w,
		hash: DefaultFileHashGenerator(),
	}
}

func (v *HashVerifier) Write(p []byte) (int, error) {
	n, err := v.w.Write(p)
	v.hash.Write(p[:n])
	v.n += int64(n)
	return n, err
}

// Written is the number of bytes written so far
func (v *HashVerifier) Written() int64 {
	return v.n
}

// Sum is the checksum of everything written so far
func (v *HashVerifier) Sum() []byte {
	return v.hash.Sum(nil)
}

// Check compares the checksum of everything written to expected
func (v *HashVerifier) Check(expected []byte) error {
	return check(v.Sum(), expected)
}
