package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	ktio "github.com/matzehuels/ktile/pkg/io"
	"github.com/matzehuels/ktile/pkg/pipeline"
)

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	var (
		workers int
		solver  string
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "verify <k> <w> <h> <file>",
		Short: "Re-verify the tiles stored in a file",
		Long: `Check every tile in file against k, w and h and print its verdict.

Each output line holds the tile, accepted or rejected, and the reason. The
command fails when a tile lies outside the w×h rectangle or breaks the
separation rule; rejected tiles are reported but are not an error.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := c.runOptions(args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			if cmd.Flags().Changed("solver") {
				opts.Solver = solver
			}

			tiles, err := ktio.ImportTiles(args[3])
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(nil, nil, c.Logger)
			prog := newProgress(loggerFromContext(ctx))
			verdicts, err := runner.VerifyTiles(ctx, opts, tiles)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Verified %d tiles", len(tiles)))

			accepted := 0
			for i, v := range verdicts {
				status := StyleSuccess.Render("accepted")
				if v.Accepted {
					accepted++
				} else {
					status = styleRejected.Render("rejected")
				}
				if !quiet || !v.Accepted {
					fmt.Printf("%s  %s  %s\n", tiles[i], status, StyleDim.Render(string(v.Reason)))
				}
			}
			if accepted == len(tiles) {
				printSuccess("All %s tiles accepted", StyleNumber.Render(fmt.Sprint(len(tiles))))
			} else {
				printWarning("%d of %d tiles rejected", len(tiles)-accepted, len(tiles))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "verification workers (default GOMAXPROCS)")
	cmd.Flags().StringVar(&solver, "solver", pipeline.DefaultSolver, "SAT backend (gini, gophersat)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print rejected tiles")

	return cmd
}
