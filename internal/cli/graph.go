package cli

import (
	"os"

	"github.com/spf13/cobra"

	ktio "github.com/matzehuels/ktile/pkg/io"
	"github.com/matzehuels/ktile/pkg/tile"
	"github.com/matzehuels/ktile/pkg/tilegraph"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "graph <w> <h> <vertical> [horizontal]",
		Short: "Build the tile graph of vertical and horizontal tiles",
		Long: `Turn tile sets into the directed graph whose nodes are w×h tiles.

The vertical file holds w×(h+1) tiles; each yields an S edge from its top
w×h part to its bottom part and the matching N edge back. The horizontal
file holds (w+1)×h tiles yielding E and W edges. Without a horizontal file
the transposed vertical tiles are used, which assumes w = h.

Nodes are packed tile codes. Edges are written one per line as
(from, ('S', to)).`,
		Example: `  ktile graph 5 5 vertical.txt horizontal.txt -o graph.txt`,
		Args:    cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			dims, err := parseDims(args, "w", "h")
			if err != nil {
				return err
			}
			vertical, err := ktio.ImportTiles(args[2])
			if err != nil {
				return err
			}
			var horizontal []tile.Tile
			if len(args) == 4 {
				if horizontal, err = ktio.ImportTiles(args[3]); err != nil {
					return err
				}
			}

			edges, err := tilegraph.Build(dims[0], dims[1], vertical, horizontal)
			if err != nil {
				return err
			}
			c.Logger.Info("built tile graph",
				"nodes", len(tilegraph.Nodes(edges)),
				"edges", len(edges))

			if output == "" {
				return tilegraph.WriteEdges(os.Stdout, edges)
			}
			if err := ktio.ExportEdges(output, edges); err != nil {
				return err
			}
			printSuccess("Built graph with %d edges", len(edges))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
