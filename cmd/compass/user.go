// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/overrides"

	"github.com/spf13/cobra"
)

func newUserCommand(app *App) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the user override file",
		Long: `Manage the user override file.

The user file mirrors the sections of the feature file. Classification and
report group keys placed under a section replace the shipped values. Every
other command creates the file, or appends missing section headers, as
needed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var dryRun bool
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Create the user file or append missing section headers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUserSync(cmd, app, dryRun)
		},
	}
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing the file")

	userCmd.AddCommand(syncCmd, &cobra.Command{
		Use:   "path",
		Short: "Show the user file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			path, err := cfg.UserFilePath()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})
	return userCmd
}

func runUserSync(cmd *cobra.Command, app *App, dryRun bool) error {
	s, err := app.openRegistry(cmd.Context())
	if err != nil {
		return err
	}
	path, err := s.cfg.UserFilePath()
	if err != nil {
		return err
	}

	res, err := overrides.Sync(path, s.registry, overrides.SyncOptions{Logger: s.logger, DryRun: dryRun})
	if err != nil {
		return userFileError(path, err)
	}

	verb := "Added"
	if dryRun {
		verb = "Would add"
	}
	switch {
	case res.Created && dryRun:
		fmt.Fprintf(app.stdout, "%s Would create %s with %d section(s)\n", successIcon, KeyStyle.Render(path), len(res.Added))
	case res.Created:
		fmt.Fprintf(app.stdout, "%s Created %s with %d section(s)\n", successIcon, KeyStyle.Render(path), len(res.Added))
	case len(res.Added) > 0:
		fmt.Fprintf(app.stdout, "%s %s %d section(s) to %s\n", successIcon, verb, len(res.Added), KeyStyle.Render(path))
		for _, name := range res.Added {
			fmt.Fprintf(app.stdout, "  [%s]\n", name)
		}
	default:
		fmt.Fprintf(app.stdout, "%s %s is up to date\n", successIcon, KeyStyle.Render(path))
	}

	if !res.Valid() {
		renderDiagnostics(app.stderr, res.Diagnostics)
		return &ExitError{Code: 1}
	}
	return nil
}
