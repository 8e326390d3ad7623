package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RodolfoSilva/planneer-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newInspectCmd(app *App) *cobra.Command {
	var showTree bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Decode and summarize an interchange file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			result, err := app.Ingest.Ingest(cmd.Context(), data, filepath.Base(args[0]))
			if err != nil {
				return fmt.Errorf("unsupported or corrupt file: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatIngest(result.Counts, result.Format, result.Document.TotalDurationDays))
			if showTree {
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.FormatSchedule(&result.Document.Schedule))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTree, "tree", false, "also print the WBS/activity tree")
	return cmd
}
