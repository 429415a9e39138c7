package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	ktio "github.com/matzehuels/ktile/pkg/io"
	"github.com/matzehuels/ktile/pkg/pipeline"
	"github.com/matzehuels/ktile/pkg/sat"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		workers int
		solver  string
		noCache bool
		refresh bool
		dimacs  string
	)

	cmd := &cobra.Command{
		Use:   "generate <k> <w> <h> [output]",
		Short: "Enumerate and verify the completable tiles",
		Long: `Enumerate every w×h tile of anchors more than k apart whose interior is
dominated, then keep the tiles a SAT solver can complete with outside anchors.

Tiles are written one per line to output, or to stdout when no output is
given. An output path ending in .json selects JSON.`,
		Example: `  ktile generate 2 5 5
  ktile generate 2 5 6 vertical.txt --workers 8
  ktile generate 1 3 3 tiles.json --solver gophersat --dimacs cnf/`,
		Args: cobra.RangeArgs(3, 4),
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
			opts.Refresh = refresh
			if dimacs != "" {
				// Instances are only produced by a fresh run.
				opts.DIMACSDir = dimacs
				opts.Refresh = true
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			toStdout := len(args) < 4
			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating k=%d w=%d h=%d...", opts.K, opts.W, opts.H))
			if !toStdout {
				spinner.Start()
			}
			prog := newProgress(loggerFromContext(ctx))
			result, err := runner.Execute(ctx, opts)
			if !toStdout {
				spinner.Stop()
			}
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Generated %d tiles", len(result.Tiles)))

			if toStdout {
				return ktio.WriteTiles(os.Stdout, ktio.FormatText, result.Tiles)
			}
			output := args[3]
			if err := ktio.ExportTiles(output, result.Tiles); err != nil {
				return err
			}
			printSuccess("Accepted %s tiles", StyleNumber.Render(fmt.Sprint(len(result.Tiles))))
			printStats(result.Stats.Candidates, result.Stats.Accepted, result.CacheInfo.Hit)
			if !result.CacheInfo.Hit {
				printDetail("search %s · verify %s",
					result.Stats.SearchTime.Round(time.Millisecond),
					result.Stats.VerifyTime.Round(time.Millisecond))
			}
			printFile(output)
			if dimacs != "" {
				printFile(dimacs)
			}
			if opts.H > 1 {
				// A w×h set serves as the vertical tiles of a w×(h-1) graph.
				printNextStep("Build the tile graph", fmt.Sprintf("ktile graph %d %d %s", opts.W, opts.H-1, output))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "verification workers (default GOMAXPROCS)")
	cmd.Flags().StringVar(&solver, "solver", pipeline.DefaultSolver, fmt.Sprintf("SAT backend (%s, %s)", sat.BackendGini, sat.BackendGophersat))
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results and regenerate")
	cmd.Flags().StringVar(&dimacs, "dimacs", "", "write the CNF instance of every solved candidate to this directory")

	return cmd
}
