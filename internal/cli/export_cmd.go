package cli

import (
	"fmt"

	"github.com/RodolfoSilva/planneer-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "export <schedule-id>",
		Short: "Generate an interchange file for a stored schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatFromFlag(formatFlag)
			if err != nil {
				return err
			}
			result, err := app.Export.Export(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if result.StorageKey != "" {
				fmt.Fprintf(out, "exported to %s\n", result.StorageKey)
				return nil
			}
			if result.StoreErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s\n",
					formatter.Dim(fmt.Sprintf("storage failed (%v); printing content", result.StoreErr)))
			}
			fmt.Fprint(out, result.Content)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "xer", "output format: xer or xml")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Schedules.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScheduleList(items))
			return nil
		},
	}
}
