package cli

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/wcgcyx/tracegen/version"
)

// NewCLI creates a CLI app.
func NewCLI() *cli.App {
	app := &cli.App{
		Name:      "tracegen",
		HelpName:  "tracegen",
		Usage:     "A zkEVM execution trace generation state",
		UsageText: "tracegen [global options] command [arguments...]",
		Version:   version.Version,
		Description: "\n\t This prepares the generation state of a zkEVM trace generator.\n\n" +
			"\t It derives the trie and transaction witnesses of a batch, caches\n" +
			"\t them on disk and checks them against a kernel label table\n",
		Authors: []*cli.Author{
			{
				Name:  "wcgcyx",
				Email: "wcgcyx@gmail.com",
			},
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:        "witness",
			Usage:       "derive the witness of a batch",
			Description: "Load the kernel and the batch inputs, derive or reuse the witness and build the generation state",
			ArgsUsage:   "<inputs.json>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "config",
					Value: "",
					Usage: "specify config file",
				},
				&cli.PathFlag{
					Name:  "path",
					Value: "",
					Usage: "specify datastore path",
				},
				&cli.PathFlag{
					Name:  "kernel",
					Value: "",
					Usage: "specify kernel json file",
				},
				&cli.StringFlag{
					Name:  "field",
					Value: "goldilocks",
					Usage: "specify the trace field [goldilocks,bn254]",
				},
				&cli.BoolFlag{
					Name:  "no-cache",
					Value: false,
					Usage: "derive the witness without the witness store",
				},
			},
			Action: func(ctx *cli.Context) error {
				return runWitness(ctx)
			},
		},
		{
			Name:        "labels",
			Usage:       "list kernel labels",
			Description: "List the global labels of a kernel",
			ArgsUsage:   " ",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "config",
					Value: "",
					Usage: "specify config file",
				},
				&cli.PathFlag{
					Name:  "kernel",
					Value: "",
					Usage: "specify kernel json file",
				},
			},
			Action: func(ctx *cli.Context) error {
				return runLabels(ctx)
			},
		},
		{
			Name:        "version",
			Usage:       "get version",
			Description: "Get the version",
			ArgsUsage:   " ",
			Action: func(c *cli.Context) error {
				fmt.Println("Version: ", version.Version)
				return nil
			},
		},
	}
	return app
}
