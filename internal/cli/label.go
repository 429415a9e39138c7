package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ktile/pkg/errors"
	ktio "github.com/matzehuels/ktile/pkg/io"
	"github.com/matzehuels/ktile/pkg/labeling"
	"github.com/matzehuels/ktile/pkg/sat"
)

// labelCommand creates the label command.
func (c *CLI) labelCommand() *cobra.Command {
	var (
		forbidden bool
		decide    bool
		solver    string
	)

	cmd := &cobra.Command{
		Use:   "label <graph> <constraints> <bitcount> [output]",
		Short: "Label tile graph nodes under adjacency constraints",
		Long: `Assign each node of a tile graph a label below 2^bitcount so that every
edge respects the constraints of its direction.

Constraint lines have the form ('N', (a, b)) and list the label pairs
allowed along an edge, or the forbidden pairs with --forbidden. Allowed
pairs are given for the N and E directions.`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bits, err := strconv.Atoi(args[2])
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "bitcount must be an integer, got %q", args[2])
			}
			if !cmd.Flags().Changed("solver") {
				solver = c.Config.Solver
			}
			s, err := sat.New(solver)
			if err != nil {
				return err
			}

			edges, err := ktio.ImportEdges(args[0])
			if err != nil {
				return err
			}
			constraints, err := ktio.ImportConstraints(args[1])
			if err != nil {
				return err
			}
			problem, err := labeling.NewProblem(edges, constraints, bits, forbidden)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			l, ok, err := problem.Solve(ctx, s)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Solved labeling of %d nodes", len(problem.Nodes())))

			if decide {
				if ok {
					fmt.Println("SAT")
				} else {
					fmt.Println("UNSAT")
				}
				return nil
			}
			if !ok {
				printWarning("No labeling satisfies the constraints")
				return nil
			}
			if len(args) < 4 {
				return ktio.WriteLabeling(os.Stdout, ktio.FormatText, l)
			}
			if err := ktio.ExportLabeling(args[3], l); err != nil {
				return err
			}
			printSuccess("Labeled %d nodes", len(l.Nodes))
			printFile(args[3])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&forbidden, "forbidden", "i", false, "constraints list forbidden pairs")
	cmd.Flags().BoolVarP(&decide, "decide", "p", false, "only print SAT or UNSAT")
	cmd.Flags().StringVar(&solver, "solver", sat.DefaultBackend, "SAT backend (gini, gophersat)")

	return cmd
}
