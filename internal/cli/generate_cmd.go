package cli

import (
	"fmt"
	"time"

	"github.com/RodolfoSilva/planneer-sub000/internal/cli/formatter"
	"github.com/RodolfoSilva/planneer-sub000/internal/service"
	"github.com/RodolfoSilva/planneer-sub000/internal/skeleton"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var startStr string
	var strict bool

	cmd := &cobra.Command{
		Use:   "generate <skeleton.json>",
		Short: "Compute a dated schedule from a requirements skeleton",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sk, err := skeleton.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading skeleton: %w", err)
			}

			if strict {
				if issues := skeleton.Validate(sk); len(issues) > 0 {
					msg := fmt.Sprintf("skeleton validation failed (%d issues):", len(issues))
					for _, e := range issues {
						msg += "\n  - " + e.Error()
					}
					return fmt.Errorf("%s", msg)
				}
			}

			start, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return fmt.Errorf("invalid --start date %q (expected YYYY-MM-DD)", startStr)
			}

			sched, err := app.Generate.Generate(cmd.Context(), service.GenerateRequest{
				StartDate: start,
				Skeleton:  sk,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatSchedule(sched))
			fmt.Fprintf(out, "\n%s %s\n", formatter.Dim("stored as"), sched.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", time.Now().Format("2006-01-02"), "project start date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on skeleton ordering/reference issues instead of degrading")
	return cmd
}
