package main

import (
	"io"

	"github.com/Redundancy/go-rdiff/fileio"
	"github.com/urfave/cli/v2"
)

const deltaUsage = "rdiff delta <signature.rsig> <modified> <out.rdelta>"

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:    "delta",
			Aliases: []string{"dl"},
			Usage:   deltaUsage,
			Description: `Compare a modified file with the signature of the original, and write the changes as a delta file.
The signature should be produced by "rdiff signature".`,
			Action: Delta,
		},
	)
}

func Delta(c *cli.Context) error {
	if err := checkArgs(c, deltaUsage, 3, 3); err != nil {
		return err
	}

	signaturePath := c.Args().Get(0)

	sig, _, err := fileio.Open(signaturePath)
	if err != nil {
		return exitOnError(err)
	}
	defer sig.Close()

	f, err := differFrom(c).Delta(sig, c.Args().Get(1))
	if err != nil {
		return exitOnError(err)
	}

	err = fileio.WriteFile(c.Args().Get(2), func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})

	return exitOnError(err)
}
