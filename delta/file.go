package delta

import (
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// FileVersion is the version of the delta file layout
const FileVersion = 1

var (
	ErrVersionMismatch = errors.New("delta file version does not match")
	ErrMalformedChange = errors.New("malformed change in delta file")
)

// File is a delta as stored on disk, with enough about both sides
// to check that it is applied to the right original and produced the right result
type File struct {
	ChunkSize      uint32
	SourceSize     int64
	SourceChecksum []byte
	TargetSize     int64
	TargetChecksum []byte
	Changes        List
}

type wireFile struct {
	Version        uint16       `cbor:"version"`
	ChunkSize      uint32       `cbor:"chunk_size"`
	SourceSize     int64        `cbor:"source_size"`
	SourceChecksum []byte       `cbor:"source_checksum,omitempty"`
	TargetSize     int64        `cbor:"target_size"`
	TargetChecksum []byte       `cbor:"target_checksum,omitempty"`
	Changes        []wireChange `cbor:"changes"`
}

// a Change as a CBOR array: kind, chunk index, placement, bytes
type wireChange struct {
	_          struct{} `cbor:",toarray"`
	Kind       Kind
	ChunkIndex int
	Placement  Placement
	Bytes      []byte
}

// Core Deterministic Encoding: the same delta always produces identical bytes
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("delta: CBOR encoder initialization failed: " + err.Error())
	}

	// a delta has one array element per change, so allow as many as the format can hold
	decMode, err = cbor.DecOptions{MaxArrayElements: 2147483647}.DecMode()
	if err != nil {
		panic("delta: CBOR decoder initialization failed: " + err.Error())
	}
}

func toWire(f *File) *wireFile {
	w := &wireFile{
		Version:        FileVersion,
		ChunkSize:      f.ChunkSize,
		SourceSize:     f.SourceSize,
		SourceChecksum: f.SourceChecksum,
		TargetSize:     f.TargetSize,
		TargetChecksum: f.TargetChecksum,
		Changes:        make([]wireChange, len(f.Changes)),
	}

	for i, c := range f.Changes {
		w.Changes[i] = wireChange{
			Kind:       c.Kind,
			ChunkIndex: c.ChunkIndex,
			Placement:  c.Placement,
			Bytes:      c.Bytes,
		}
	}

	return w
}

func fromWire(w *wireFile) (*File, error) {
	if w.Version != FileVersion {
		return nil, errors.Wrapf(ErrVersionMismatch, "file is %v, tool is %v", w.Version, FileVersion)
	}

	f := &File{
		ChunkSize:      w.ChunkSize,
		SourceSize:     w.SourceSize,
		SourceChecksum: w.SourceChecksum,
		TargetSize:     w.TargetSize,
		TargetChecksum: w.TargetChecksum,
		Changes:        make(List, len(w.Changes)),
	}

	for i, wc := range w.Changes {
		c := Change{
			Kind:       wc.Kind,
			ChunkIndex: wc.ChunkIndex,
			Placement:  wc.Placement,
			Bytes:      wc.Bytes,
		}

		if err := validate(c); err != nil {
			return nil, errors.Wrapf(err, "change %v", i)
		}

		f.Changes[i] = c
	}

	return f, nil
}

func validate(c Change) error {
	if c.ChunkIndex < 0 {
		return errors.Wrapf(ErrMalformedChange, "negative chunk index %v", c.ChunkIndex)
	}

	switch c.Kind {
	case Deletion:
		if c.Placement != None || len(c.Bytes) != 0 {
			return errors.Wrap(ErrMalformedChange, "deletion with placement or content")
		}
	case Insertion:
		if c.Placement != Before && c.Placement != After {
			return errors.Wrapf(ErrMalformedChange, "insertion with placement %v", c.Placement)
		}
	default:
		return errors.Wrapf(ErrMalformedChange, "unknown kind %v", c.Kind)
	}

	return nil
}

// Encode the file as CBOR
func Encode(f *File) ([]byte, error) {
	b, err := encMode.Marshal(toWire(f))
	return b, errors.Wrap(err, "encoding delta")
}

// Decode a file produced by Encode
func Decode(b []byte) (*File, error) {
	w := &wireFile{}

	if err := decMode.Unmarshal(b, w); err != nil {
		return nil, errors.Wrap(err, "decoding delta")
	}

	return fromWire(w)
}

// WriteTo writes the encoded file to w
func (f *File) WriteTo(w io.Writer) (int64, error) {
	b, err := Encode(f)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(b)
	return int64(n), errors.Wrap(err, "writing delta")
}

// ReadFile reads one encoded file from r
func ReadFile(r io.Reader) (*File, error) {
	w := &wireFile{}

	if err := decMode.NewDecoder(r).Decode(w); err != nil {
		return nil, errors.Wrap(err, "reading delta")
	}

	return fromWire(w)
}
