// The bnkfix CLI applies the Wildfire corrective-edit catalog to an
// installed game: repaired archive entries, the misspelled menu label, and
// the taskbar window-style patch. Pristine copies of every touched file
// land in a backup directory inside the game directory, and `bnkfix
// restore` puts them back.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/wildfiretools/bnk"
	"github.com/wildfiretools/bnk/catalog"
)

func main() {
	app := &cli.App{
		Name:  "bnkfix",
		Usage: "apply the Wildfire data fixes to an installed game",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Value:   ".",
				Usage:   "game installation directory",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			applyCommand(),
			restoreCommand(),
			listCommand(),
			extractCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "bnkfix:", err)
		os.Exit(1)
	}
}

func logger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runner(c *cli.Context) *catalog.Runner {
	return catalog.NewRunner(afero.NewOsFs(), c.String("dir"), catalog.WithLogger(logger(c)))
}

func applyCommand() *cli.Command {
	return &cli.Command{
		Name:  "apply",
		Usage: "apply all fixes to the game directory",
		Action: func(c *cli.Context) error {
			return runner(c).Run(catalog.WildfireFixes())
		},
	}
}

func restoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "restore",
		Usage: "move all backed-up files over the patched ones",
		Action: func(c *cli.Context) error {
			return runner(c).Restore()
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "list the entries of a BNK archive",
		ArgsUsage: "<archive.bnk>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("usage: bnkfix list <archive.bnk>")
			}

			a, err := bnk.Load(afero.NewOsFs(), c.Args().First())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tUNCOMPRESSED\tFLAG")
			for _, e := range a.Entries() {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", e.Name, e.PayloadSize, e.UncompressedSize, e.CompressionFlag)
			}
			return w.Flush()
		},
	}
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "write one entry's raw payload to a file",
		ArgsUsage: "<archive.bnk> <entry>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output path (defaults to the entry name)",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("usage: bnkfix extract <archive.bnk> <entry>")
			}

			fsys := afero.NewOsFs()
			a, err := bnk.Load(fsys, c.Args().First())
			if err != nil {
				return err
			}
			e, err := a.CloneEntry(c.Args().Get(1))
			if err != nil {
				return err
			}

			out := c.String("out")
			if out == "" {
				out = filepath.Base(e.Name())
			}

			// Payload bytes are written as stored; a set compression
			// flag means the engine decodes them, not this tool.
			return afero.WriteFile(fsys, out, e.Payload(), 0o644)
		},
	}
}
