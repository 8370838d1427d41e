package cli

import (
	"context"

	"github.com/alexanderramin/waypoint/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to the services used by CLI commands.
type App struct {
	Qna    service.QnaService
	Plans  service.PlanService
	Import service.ImportService

	// Setup, when set, runs before any subcommand with the parsed global
	// flags. It is expected to fill in the service fields above.
	Setup func(ctx context.Context, opts GlobalOptions) error

	// LLMAvailable probes the configured provider. Nil when LLM is disabled.
	LLMAvailable func(ctx context.Context) bool

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
}

// GlobalOptions are the persistent flags shared by every subcommand.
type GlobalOptions struct {
	ConfigPath string
	DBPath     string
}

func addGlobalFlags(fs *pflag.FlagSet, opts *GlobalOptions) {
	fs.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.waypoint/config.yaml)")
	fs.StringVar(&opts.DBPath, "db", "", "SQLite database path (overrides config and WAYPOINT_DB)")
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "waypoint" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var opts GlobalOptions

	root := &cobra.Command{
		Use:           "waypoint",
		Short:         "Ask questions about the subgoals of your plans",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup == nil {
				return nil
			}
			return app.Setup(cmd.Context(), opts)
		},
	}
	addGlobalFlags(root.PersistentFlags(), &opts)

	root.AddCommand(
		newPlanCmd(app),
		newQnaCmd(app),
	)

	return root
}
