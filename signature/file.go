package signature

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/Redundancy/go-rdiff/chunks"
	"github.com/pkg/errors"
)

const (
	MagicString = "rdiff-sig"

	MajorVersion = 1
	MinorVersion = 0
	PatchVersion = 0

	// size of the whole-file checksum
	FileChecksumSize = 32

	// weak (uint32) followed by strong (uint64)
	entrySize = 4 + 8

	// entries reserved up front, the count in the header is not trusted beyond this
	maxPreallocated = 1 << 16
)

var (
	ErrBadMagic          = errors.New("file header does not match magic string, not a valid signature file")
	ErrVersionMismatch   = errors.New("signature file major version does not match")
	ErrPartialChecksum   = errors.New("reader length was not a multiple of the checksums")
	ErrInconsistentCount = errors.New("chunk count does not match the file size and chunk size")
	ErrInvalidChunkSize  = errors.New("chunk size must be non zero")
)

// Header describes the original file a signature was built from
type Header struct {
	ChunkSize uint32
	FileSize  int64
	// whole-file checksum of the original
	FileChecksum [FileChecksumSize]byte
}

// ChunkCount is the number of chunks the header implies
func (h Header) ChunkCount() int {
	if h.ChunkSize == 0 {
		return 0
	}
	return chunks.Count(h.FileSize, int(h.ChunkSize))
}

/*
Write stores the header and the table to w:

	magic string, major, minor, patch (uint16), chunk size (uint32), file size (int64),
	chunk count (uint32), whole-file checksum (32 bytes),
	then for every chunk: weak (uint32), strong (uint64)

All integers are little endian.
*/
func Write(w io.Writer, h Header, t *Table) (err error) {
	if h.ChunkSize == 0 {
		return ErrInvalidChunkSize
	}

	if h.ChunkCount() != t.Len() {
		return errors.Wrapf(
			ErrInconsistentCount,
			"%v chunks for %v bytes in chunks of %v",
			t.Len(), h.FileSize, h.ChunkSize,
		)
	}

	b := bufio.NewWriter(w)

	if err = writeHeaders(b, h, uint32(t.Len())); err != nil {
		return errors.Wrap(err, "writing signature header")
	}

	entry := make([]byte, entrySize)

	for _, c := range t.hashes {
		binary.LittleEndian.PutUint32(entry[0:4], c.Weak)
		binary.LittleEndian.PutUint64(entry[4:12], c.Strong)

		if _, err = b.Write(entry); err != nil {
			return errors.Wrap(err, "writing signature entries")
		}
	}

	return errors.Wrap(b.Flush(), "writing signature entries")
}

func writeHeaders(w io.Writer, h Header, count uint32) (err error) {
	if _, err = io.WriteString(w, MagicString); err != nil {
		return
	}

	for _, v := range []uint16{MajorVersion, MinorVersion, PatchVersion} {
		if err = binary.Write(w, binary.LittleEndian, v); err != nil {
			return
		}
	}

	for _, v := range []interface{}{h.ChunkSize, h.FileSize, count} {
		if err = binary.Write(w, binary.LittleEndian, v); err != nil {
			return
		}
	}

	_, err = w.Write(h.FileChecksum[:])
	return
}

// Read loads a signature file written by Write. The returned table has nothing consumed.
func Read(r io.Reader) (h Header, t *Table, err error) {
	br := bufio.NewReader(r)

	count, err := readHeadersAndCheck(br, &h)
	if err != nil {
		return h, nil, err
	}

	hashes := make([]chunks.ChunkHash, 0, min(count, maxPreallocated))
	entry := make([]byte, entrySize)

	for i := uint32(0); i < count; i++ {
		if _, err = io.ReadFull(br, entry); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				err = ErrPartialChecksum
			}
			return h, nil, errors.Wrapf(err, "reading chunk %v of %v", i, count)
		}

		hashes = append(hashes, chunks.ChunkHash{
			Weak:   binary.LittleEndian.Uint32(entry[0:4]),
			Strong: binary.LittleEndian.Uint64(entry[4:12]),
		})
	}

	return h, FromHashes(hashes), nil
}

// reads the file headers and checks the magic string, then the semantic versioning
func readHeadersAndCheck(r io.Reader, h *Header) (count uint32, err error) {
	b := make([]byte, len(MagicString))

	if _, err = io.ReadFull(r, b); err != nil {
		return 0, errors.Wrap(err, "reading signature header")
	} else if string(b) != MagicString {
		return 0, ErrBadMagic
	}

	var major, minor, patch uint16
	for _, v := range []*uint16{&major, &minor, &patch} {
		if err = binary.Read(r, binary.LittleEndian, v); err != nil {
			return 0, errors.Wrap(err, "reading signature version")
		}
	}

	if major != MajorVersion {
		return 0, errors.Wrapf(
			ErrVersionMismatch,
			"file is %v.%v.%v, tool is %v.%v.%v",
			major, minor, patch,
			MajorVersion, MinorVersion, PatchVersion,
		)
	}

	for _, v := range []interface{}{&h.ChunkSize, &h.FileSize, &count} {
		if err = binary.Read(r, binary.LittleEndian, v); err != nil {
			return 0, errors.Wrap(err, "reading signature header")
		}
	}

	if _, err = io.ReadFull(r, h.FileChecksum[:]); err != nil {
		return 0, errors.Wrap(err, "reading signature file checksum")
	}

	if h.ChunkSize == 0 {
		return 0, ErrInvalidChunkSize
	}

	if int64(count) != int64(h.ChunkCount()) {
		return 0, errors.Wrapf(
			ErrInconsistentCount,
			"header has %v chunks for %v bytes in chunks of %v",
			count, h.FileSize, h.ChunkSize,
		)
	}

	return count, nil
}
