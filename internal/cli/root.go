package cli

import (
	"github.com/RodolfoSilva/planneer-sub000/internal/repository"
	"github.com/RodolfoSilva/planneer-sub000/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Ingest    service.IngestService
	Export    service.ExportService
	Generate  service.GenerateService
	Schedules repository.ScheduleRepo
}

// NewRootCmd creates the top-level "planneer" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "planneer",
		Short:         "Schedule interchange and generation engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newInspectCmd(app),
		newConvertCmd(app),
		newGenerateCmd(app),
		newExportCmd(app),
		newListCmd(app),
	)

	return root
}
