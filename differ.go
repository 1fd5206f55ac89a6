package rdiff

import (
	"bytes"
	"io"

	"github.com/Redundancy/go-rdiff/chunks"
	"github.com/Redundancy/go-rdiff/comparer"
	"github.com/Redundancy/go-rdiff/config"
	"github.com/Redundancy/go-rdiff/delta"
	"github.com/Redundancy/go-rdiff/filechecksum"
	"github.com/Redundancy/go-rdiff/fileio"
	"github.com/Redundancy/go-rdiff/indexbuilder"
	"github.com/Redundancy/go-rdiff/patcher"
	"github.com/Redundancy/go-rdiff/patcher/sequential"
	"github.com/Redundancy/go-rdiff/signature"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var ErrSourceMismatch = errors.New("original does not match the one the delta was made from")

// Differ runs diffs with a configuration, logging what it does
type Differ struct {
	Config *config.Config
	Logger zerolog.Logger
}

func NewDiffer(cfg *config.Config, logger zerolog.Logger) *Differ {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Differ{
		Config: cfg,
		Logger: logger,
	}
}

// DiffFiles compares the file at modifiedPath to the file at originalPath
func (d *Differ) DiffFiles(originalPath, modifiedPath string) (*Result, error) {
	original, err := fileio.ReadAll(originalPath)
	if err != nil {
		return nil, err
	}

	modified, err := fileio.ReadAll(modifiedPath)
	if err != nil {
		return nil, err
	}

	log := d.Logger.With().
		Str("original", originalPath).
		Str("modified", modifiedPath).
		Logger()

	return d.diff(original, modified, log)
}

// DiffBytes is DiffFiles for content already in memory
func (d *Differ) DiffBytes(original, modified []byte) (*Result, error) {
	return d.diff(original, modified, d.Logger)
}

func (d *Differ) diff(original, modified []byte, log zerolog.Logger) (*Result, error) {
	if err := d.Config.ValidateFor(int64(len(original))); err != nil {
		return nil, err
	}

	chunkSize := d.Config.ChunkSize
	table := signature.Build(chunks.Split(original, chunkSize))

	scanner := comparer.NewScanner(table, chunkSize)
	scanner.Logger = log
	changes := scanner.Scan(modified)

	result := &Result{
		Changes:   changes,
		ChunkSize: chunkSize,
		Stats:     newStats(scanner, table, changes, chunkSize),
	}

	log.Info().
		Int("chunk_size", chunkSize).
		Int("chunks", result.Stats.ChunkCount).
		Int("matched", result.Stats.Matched).
		Int("deleted", result.Stats.Deleted).
		Int64("literal_bytes", result.Stats.LiteralBytes).
		Msg("diff complete")

	return result, nil
}

// Signature writes the signature of the file at originalPath to out, reading the file once
func (d *Differ) Signature(originalPath string, out io.Writer) (signature.Header, error) {
	f, size, err := fileio.Open(originalPath)
	if err != nil {
		return signature.Header{}, err
	}
	defer f.Close()

	if err := d.Config.ValidateFor(size); err != nil {
		return signature.Header{}, err
	}

	table, fileChecksum, err := indexbuilder.BuildTable(f, d.Config.ChunkSize)
	if err != nil {
		return signature.Header{}, &fileio.IOError{Op: "read", Path: originalPath, Err: err}
	}

	header := indexbuilder.Header(size, d.Config.ChunkSize, fileChecksum)

	if err := signature.Write(out, header, table); err != nil {
		return header, err
	}

	d.Logger.Info().
		Str("original", originalPath).
		Int("chunks", table.Len()).
		Uint32("chunk_size", header.ChunkSize).
		Msg("signature written")

	return header, nil
}

// Delta compares the file at modifiedPath to a signature, streaming the file
func (d *Differ) Delta(sig io.Reader, modifiedPath string) (*delta.File, error) {
	header, table, err := signature.Read(sig)
	if err != nil {
		return nil, err
	}

	f, _, err := fileio.Open(modifiedPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	chunkSize := int(header.ChunkSize)
	target := filechecksum.NewHashVerifier(io.Discard)

	scanner := comparer.NewScanner(table, chunkSize)
	scanner.Logger = d.Logger

	changes, err := scanner.ScanReader(io.TeeReader(f, target))
	if err != nil {
		return nil, &fileio.IOError{Op: "read", Path: modifiedPath, Err: err}
	}

	d.Logger.Info().
		Str("modified", modifiedPath).
		Int("changes", len(changes)).
		Int64("literal_bytes", changes.LiteralBytes()).
		Msg("delta complete")

	return &delta.File{
		ChunkSize:      header.ChunkSize,
		SourceSize:     header.FileSize,
		SourceChecksum: header.FileChecksum[:],
		TargetSize:     target.Written(),
		TargetChecksum: target.Sum(),
		Changes:        changes,
	}, nil
}

// Patch rebuilds modified from original and the changes found by Diff
func Patch(original []byte, changes delta.List, chunkSize int) ([]byte, error) {
	if chunkSize <= 0 {
		return nil, &config.ConfigError{Field: "chunk_size", Err: config.ErrChunkSizeZero}
	}

	out := bytes.NewBuffer(make([]byte, 0, len(original)+int(changes.LiteralBytes())))
	err := sequential.Patch(patcher.NewBytesSource(original, chunkSize), changes, out)

	if err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// PatchFile applies a delta file to the file at originalPath, writing the result to outPath.
// The original is checked before patching and the result after, when the delta has their checksums.
// outPath may be the original itself.
func (d *Differ) PatchFile(originalPath string, f *delta.File, outPath string) error {
	if f.ChunkSize == 0 {
		return &config.ConfigError{Field: "chunk_size", Err: config.ErrChunkSizeZero}
	}

	original, size, err := fileio.Open(originalPath)
	if err != nil {
		return err
	}
	defer original.Close()

	if err := checkSource(original, size, f); err != nil {
		return errors.Wrap(err, originalPath)
	}

	source := patcher.NewReaderAtSource(original, size, int(f.ChunkSize))

	out, err := openOutput(originalPath, outPath)
	if err != nil {
		return err
	}

	verifier := filechecksum.NewHashVerifier(out)

	if err := sequential.Patch(source, f.Changes, verifier); err != nil {
		out.Abort()
		return err
	}

	if len(f.TargetChecksum) > 0 {
		if err := verifier.Check(f.TargetChecksum); err != nil {
			out.Abort()
			return errors.Wrap(err, "patched result")
		}
	}

	if err := out.Close(); err != nil {
		return err
	}

	d.Logger.Info().
		Str("original", originalPath).
		Str("output", outPath).
		Int64("size", verifier.Written()).
		Msg("patch complete")

	return nil
}

func checkSource(original io.ReadSeeker, size int64, f *delta.File) error {
	if size != f.SourceSize {
		return errors.Wrapf(ErrSourceMismatch, "size is %v, expected %v", size, f.SourceSize)
	}

	if len(f.SourceChecksum) == 0 {
		return nil
	}

	v := filechecksum.NewHashVerifier(io.Discard)
	if _, err := io.Copy(v, original); err != nil {
		return errors.Wrap(err, "reading original")
	}

	if _, err := original.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "reading original")
	}

	if err := v.Check(f.SourceChecksum); err != nil {
		return errors.Wrap(ErrSourceMismatch, err.Error())
	}

	return nil
}
