/*
Sequential Patcher will stream the patched version of the file to output,
since it works strictly in order, it cannot patch the original file directly
(since it might overwrite a chunk needed later),
so there would have to be a final copy once the patching was done.
*/
package sequential

import (
	"io"

	"github.com/Redundancy/go-rdiff/delta"
	"github.com/Redundancy/go-rdiff/patcher"
	"github.com/pkg/errors"
)

/*
Patch writes the modified file to output. For each chunk boundary of the original, in order,
it writes the Before insertions anchored there, then the After insertions, then the chunk itself
unless it was deleted. The boundary after the last chunk only has insertions.

The result is exact when the modified file kept the surviving chunks in their original order
and the original has no repeated chunks.
*/
func Patch(source patcher.ChunkSource, changes delta.List, output io.Writer) error {
	if source == nil {
		return errors.New("no ChunkSource set for obtaining original chunks")
	}

	plan, err := patcher.NewPlan(changes, source.ChunkCount())
	if err != nil {
		return err
	}

	write := func(p []byte) error {
		_, err := output.Write(p)
		return errors.Wrap(err, "writing patched output")
	}

	for currentChunk := 0; currentChunk <= plan.ChunkCount(); currentChunk++ {
		if err := plan.InsertionsAt(currentChunk, write); err != nil {
			return err
		}

		if currentChunk == plan.ChunkCount() || plan.Deleted(currentChunk) {
			continue
		}

		chunk, err := source.ReadChunk(currentChunk)
		if err != nil {
			return err
		}

		if err := write(chunk); err != nil {
			return err
		}
	}

	return nil
}
