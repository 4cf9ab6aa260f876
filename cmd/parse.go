package cmd

import (
	"fmt"

	"github.com/jparise/semtime/internal/semantic"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <expression>...",
	Short: "Parse semantic expressions without evaluating them",
	Long: `Parse each semantic expression and print its canonical form followed
by one line per adjustment. Stops at the first expression that fails to parse.

Examples:
  semtime parse "now -1d <d"
  semtime parse "jt, +1d, 9h" "(2023-02-20) >M"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := newOutput(cmd)
		for _, expr := range args {
			x, err := semantic.Parse(expr)
			if err != nil {
				return fmt.Errorf("%q: %w", expr, err)
			}
			out.Debugf("%q has %d adjustments", expr, len(x.Ops))
			if err := out.Expression(expr, x); err != nil {
				return err
			}
		}
		return nil
	},
}
