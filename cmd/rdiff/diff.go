package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

const diffUsage = "rdiff diff <original> <modified> [<chunk size>]"

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:        "diff",
			Aliases:     []string{"d"},
			Usage:       diffUsage,
			Description: `Compare a modified file with the original, and print the changes and statistics on the comparison.`,
			Action:      Diff,
			Flags:       []cli.Flag{chunkSizeFlag},
		},
	)
}

func Diff(c *cli.Context) error {
	if err := checkArgs(c, diffUsage, 2, 3); err != nil {
		return err
	}

	d := differFrom(c)

	if c.Args().Len() == 3 {
		chunkSize, err := parseChunkSize(c.Args().Get(2))
		if err != nil {
			return exitOnError(err)
		}

		copied := *d.Config
		copied.ChunkSize = chunkSize
		d.Config = &copied
	}

	start := time.Now()

	result, err := d.DiffFiles(c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return exitOnError(err)
	}

	w := c.App.Writer

	for _, change := range result.Changes {
		fmt.Fprintln(w, change.Format(result.ChunkSize))
	}

	s := result.Stats

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Chunk size:", result.ChunkSize)
	fmt.Fprintf(w, "Chunks matched: %v of %v, in %v spans\n", s.Matched, s.ChunkCount, len(s.Spans))
	fmt.Fprintln(w, "Chunks deleted:", s.Deleted)
	fmt.Fprintf(w, "Insertions: %v (%v bytes)\n", s.Insertions, s.LiteralBytes)
	fmt.Fprintf(
		w,
		"Comparisons: %v, weak hash hits: %v, strong hash hits: %v\n",
		s.Comparisons, s.WeakHashHits, s.StrongHashHits,
	)
	fmt.Fprintln(w, "Time taken:", time.Since(start))

	return nil
}
