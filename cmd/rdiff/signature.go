package main

import (
	"fmt"
	"io"
	"path/filepath"

	rdiff "github.com/Redundancy/go-rdiff"
	"github.com/Redundancy/go-rdiff/fileio"
	"github.com/urfave/cli/v2"
)

const signatureUsage = "rdiff signature <original> [<out.rsig>]"

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:    "signature",
			Aliases: []string{"s"},
			Usage:   signatureUsage,
			Description: `Build a signature of the original: the hashes of its chunks.
If no output is given, it is written next to the original with the extension .rsig`,
			Action: Signature,
			Flags:  []cli.Flag{chunkSizeFlag},
		},
	)
}

func Signature(c *cli.Context) error {
	if err := checkArgs(c, signatureUsage, 1, 2); err != nil {
		return err
	}

	filename := c.Args().Get(0)

	ext := filepath.Ext(filename)
	outfilePath := filename[:len(filename)-len(ext)] + ".rsig"
	if c.Args().Len() == 2 {
		outfilePath = c.Args().Get(1)
	}

	d := differFrom(c)

	// the output is only created once the original is known to be usable
	if same, err := rdiff.IsSameFile(filename, outfilePath); err != nil {
		return exitOnError(err)
	} else if same {
		return cli.Exit(fmt.Sprintf("signature output %v would overwrite the original", outfilePath), 1)
	}

	size, err := fileio.FileSize(filename)
	if err != nil {
		return exitOnError(err)
	}

	if err := d.Config.ValidateFor(size); err != nil {
		return exitOnError(err)
	}

	err = fileio.WriteFile(outfilePath, func(w io.Writer) error {
		_, err := d.Signature(filename, w)
		return err
	})

	return exitOnError(err)
}
