package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/RodolfoSilva/planneer-sub000/internal/interchange/tabular"
	"github.com/RodolfoSilva/planneer-sub000/internal/interchange/treexml"
	"github.com/spf13/cobra"
)

func newConvertCmd(app *App) *cobra.Command {
	var to string
	var outPath string

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Re-encode an interchange file in the other format",
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

			var content string
			switch to {
			case "xer":
				content, err = tabular.Generate(&result.Document.Schedule)
			case "xml":
				content, err = treexml.Generate(&result.Document.Schedule)
			default:
				return fmt.Errorf("unknown target format %q (use xer or xml)", to)
			}
			if err != nil {
				return fmt.Errorf("generating %s output: %w", to, err)
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
					return fmt.Errorf("writing %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "xer", "target format: xer or xml")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write to file instead of stdout")
	return cmd
}

// formatFromFlag maps a --format flag value to a source format.
func formatFromFlag(s string) (domain.SourceFormat, error) {
	switch s {
	case "xer", "tabular":
		return domain.FormatTabular, nil
	case "xml", "tree-xml":
		return domain.FormatTreeXML, nil
	}
	return domain.FormatUnknown, fmt.Errorf("unknown format %q (use xer or xml)", s)
}
