package main

import (
	"github.com/Redundancy/go-rdiff/delta"
	"github.com/Redundancy/go-rdiff/fileio"
	"github.com/urfave/cli/v2"
)

const patchUsage = "rdiff patch <original> <delta.rdelta> [<output>]"

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:    "patch",
			Aliases: []string{"p"},
			Usage:   patchUsage,
			Description: `Recreate the modified file, using the original and a delta.
The delta should be produced by "rdiff delta".
<output> is optional. If not specified, the original will be overwritten when done.`,
			Action: Patch,
		},
	)
}

func Patch(c *cli.Context) error {
	if err := checkArgs(c, patchUsage, 2, 3); err != nil {
		return err
	}

	originalPath := c.Args().Get(0)
	deltaPath := c.Args().Get(1)

	outFilename := originalPath
	if c.Args().Len() == 3 {
		outFilename = c.Args().Get(2)
	}

	deltaFile, _, err := fileio.Open(deltaPath)
	if err != nil {
		return exitOnError(err)
	}
	defer deltaFile.Close()

	f, err := delta.ReadFile(deltaFile)
	if err != nil {
		return exitOnError(err)
	}

	return exitOnError(differFrom(c).PatchFile(originalPath, f, outFilename))
}
