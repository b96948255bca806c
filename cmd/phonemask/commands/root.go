package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/phonemask/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// globals holds the persistent flags and the application they build.
type globals struct {
	configPath string
	envFile    string
	logLevel   string

	getenv func(string) (string, bool)
	app    *app.Application
}

// Execute runs the root command.
func Execute() error {
	return newRoot(nil).Execute()
}

func newRoot(getenv func(string) (string, bool)) *cobra.Command {
	g := &globals{getenv: getenv}

	root := &cobra.Command{
		Use:          "phonemask",
		Short:        "Phone number input masks",
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch strings.ToLower(g.logLevel) {
			case "", "debug", "info", "warn", "error":
			default:
				return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", g.logLevel)
			}

			a, err := app.New(app.Options{
				ConfigPath: g.configPath,
				EnvFile:    g.envFile,
				LogLevel:   g.logLevel,
				LogOutput:  cmd.ErrOrStderr(),
				Getenv:     g.getenv,
			})
			if err != nil {
				return err
			}
			g.app = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if g.app != nil {
				g.app.Shutdown()
			}
		},
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file (default ./"+app.DefaultConfigPath+")")
	root.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "dotenv file read before the environment")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(formatCmd(g), countriesCmd(g), editCmd(g))
	return root
}
