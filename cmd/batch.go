package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jparise/semtime/internal/batch"
	"github.com/spf13/cobra"
)

var jobs int

var batchCmd = &cobra.Command{
	Use:   "batch [<file>...]",
	Short: "Resolve one input per line from files or standard input",
	Long: `Resolve one input per line, concurrently, and print one line per input
in input order: the input, its kind, the local ISO-8601 time and Unix
milliseconds. Blank lines and lines starting with "#" are skipped.

<file> may be a glob pattern:
  *              Match any characters (e.g., "*.txt")
  **             Match across directories (e.g., "logs/**/*.txt")
  {...}          Match alternatives (e.g., "*.{txt,log}")

With no files, inputs are read from standard input.

Examples:
  semtime batch times.txt
  semtime batch -j 4 "data/**/*.txt"
  printf 'now\ntoday +1d\n' | semtime batch`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if jobs < 1 || jobs > 100 {
			return fmt.Errorf("--jobs must be between 1 and 100, got %d", jobs)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := newOutput(cmd)
		resolver, err := newResolver(out)
		if err != nil {
			return err
		}

		opts := &batch.Options{
			Patterns: args,
			Jobs:     jobs,
		}

		return batch.New(out, resolver).Run(ctx, cmd.InOrStdin(), opts)
	},
}

func init() {
	batchCmd.Flags().IntVarP(&jobs, "jobs", "j", 10,
		"maximum concurrent resolutions")
}
