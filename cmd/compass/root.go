// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// updateChecksumEnv switches any invocation into checksum maintenance: the
// feature file checksum is rewritten and the command itself is skipped.
const updateChecksumEnv = "COMPASS_UPDATE_CHECKSUM"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "compass",
		Short: "Babelfish feature compatibility lookups",
		Long: TitleStyle.Render("compass") + SubtitleStyle.Render(" - Babelfish feature compatibility lookups") + `

compass reads the checksum-protected feature file that describes which T-SQL
features each Babelfish version supports, merges the user override file on
top of it, and answers compatibility queries.

` + SubtitleStyle.Render("Examples:") + `
  compass check                          Validate the feature file and user file
  compass supported Functions SOUNDEX    Is SOUNDEX supported in the target version?
  compass status "SET ANSI_NULLS"        Show the classification of a section
  compass minver Functions DATEADD       First version supporting DATEADD
  compass export --format toml           Dump the feature matrix as TOML`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if os.Getenv(updateChecksumEnv) != "1" {
				return nil
			}
			if err := runChecksum(cmd, app, ""); err != nil {
				return err
			}
			cmd.RunE = func(*cobra.Command, []string) error { return nil }
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&app.flags.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/compass/config.cue)")
	flags.StringVarP(&app.flags.featureFile, "feature-file", "f", "", "feature file (overrides feature_file)")
	flags.StringVarP(&app.flags.userFile, "user-file", "u", "", "user override file (overrides user_file)")

	rootCmd.AddCommand(
		newCheckCommand(app),
		newStatusCommand(app),
		newGroupCommand(app),
		newSupportedCommand(app),
		newMinVersionCommand(app),
		newListCommand(app),
		newVersionsCommand(app),
		newChecksumCommand(app),
		newExportCommand(app),
		newUserCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithErrorHandler(app.errorHandler()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
