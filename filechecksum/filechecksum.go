/*
package filechecksum provides the Generator, whose main responsibility is to read a file,
split it into chunks and hash every chunk, while building a checksum of the whole file.

Chunk hashes are the weak Adler-32 and strong xxh3 pair from the chunks package.
The whole-file checksum is BLAKE3-256, and is used to check that a delta is applied
to the right original, and that patching produced the right result.
*/
package filechecksum

import (
	"hash"
	"io"

	"github.com/Redundancy/go-rdiff/chunks"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

// Size of the whole-file checksum
const Size = 32

// this is a factory function, because we don't actually want to share hash state
var DefaultFileHashGenerator = func() hash.Hash {
	return blake3.New()
}

// Sum is the whole-file checksum of p
func Sum(p []byte) []byte {
	s := blake3.Sum256(p)
	return s[:]
}

func NewGenerator(chunkSize int) *Generator {
	return &Generator{
		ChunkSize:        chunkSize,
		FileChecksumHash: DefaultFileHashGenerator(),
	}
}

/*
Generator describes how to chunk and hash a file.
Since the hash stores state, it is NOT safe to use a generator concurrently
for different things.
*/
type Generator struct {
	ChunkSize        int
	FileChecksumHash hash.Hash
}

type ChecksumResults struct {
	// Return multiple chunks at once for performance
	Hashes []chunks.ChunkHash
	// only used for the last item
	FileChecksum []byte
	// signals that this is the last item
	Err error
}

/*
Generate reads r to the end, and returns its chunks (ChunkSize bytes each, the last one possibly shorter)
along with the checksum of the whole file.
*/
func (g *Generator) Generate(r io.Reader) (parts [][]byte, fileChecksum []byte, err error) {
	err = g.readChunks(r, func(chunk []byte) error {
		parts = append(parts, append([]byte(nil), chunk...))
		return nil
	})

	if err != nil {
		return nil, nil, err
	}

	return parts, g.FileChecksumHash.Sum(nil), nil
}

// GenerateHashes is Generate without keeping the chunks
func (g *Generator) GenerateHashes(r io.Reader) (hashes []chunks.ChunkHash, fileChecksum []byte, err error) {
	for result := range g.StartChecksumGeneration(r, 64) {
		if result.Err != nil {
			return nil, nil, result.Err
		} else if result.FileChecksum != nil {
			return hashes, result.FileChecksum, nil
		}

		hashes = append(hashes, result.Hashes...)
	}

	return nil, nil, errors.New("checksum generation ended without a file checksum")
}

// StartChecksumGeneration hashes r in the background, sending chunksPerResult hashes at a time.
// The last result holds either the file checksum or an error.
func (g *Generator) StartChecksumGeneration(r io.Reader, chunksPerResult int) <-chan ChecksumResults {
	resultChan := make(chan ChecksumResults)
	go g.generate(resultChan, chunksPerResult, r)
	return resultChan
}

func (g *Generator) generate(resultChan chan ChecksumResults, chunksPerResult int, r io.Reader) {
	defer close(resultChan)

	results := make([]chunks.ChunkHash, 0, chunksPerResult)

	err := g.readChunks(r, func(chunk []byte) error {
		results = append(results, chunks.NewChunkHash(chunk))

		if len(results) == cap(results) {
			resultChan <- ChecksumResults{
				Hashes: results,
			}
			results = make([]chunks.ChunkHash, 0, chunksPerResult)
		}

		return nil
	})

	if err != nil {
		resultChan <- ChecksumResults{Err: err}
		return
	}

	if len(results) > 0 {
		resultChan <- ChecksumResults{
			Hashes: results,
		}
	}

	resultChan <- ChecksumResults{
		FileChecksum: g.FileChecksumHash.Sum(nil),
	}
}

// calls fn with every chunk of r, in a buffer that is reused
func (g *Generator) readChunks(r io.Reader, fn func(chunk []byte) error) error {
	if g.ChunkSize <= 0 {
		return errors.Errorf("invalid chunk size %v", g.ChunkSize)
	}

	// ensure that the hash is clean
	g.FileChecksumHash.Reset()

	buffer := make([]byte, g.ChunkSize)

	for {
		n, err := io.ReadFull(r, buffer)
		section := buffer[:n]

		if n > 0 {
			// As hashes, the assumption is that they never error
			g.FileChecksumHash.Write(section)

			if ferr := fn(section); ferr != nil {
				return ferr
			}
		}

		// the only reason not to read a full chunk is reaching the end of the file
		switch err {
		case nil:
			continue
		case io.EOF, io.ErrUnexpectedEOF:
			return nil
		default:
			return errors.Wrap(err, "reading chunks")
		}
	}
}
