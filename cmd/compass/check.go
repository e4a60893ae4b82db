// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/overrides"

	"github.com/spf13/cobra"
)

func newCheckCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the feature file and the user file",
		Long: `Validate the feature file and the user file.

Every problem in both files is reported, not just the first one. The user
file is read but never modified. The exit code is 1 when any problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, app)
		},
	}
}

func runCheck(cmd *cobra.Command, app *App) error {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	logger := app.newLogger(cfg)
	stdout, stderr := app.stdout, app.stderr

	featurePath := string(cfg.FeatureFile)
	fmt.Fprintln(stdout, TitleStyle.Render("Feature File Check"))
	fmt.Fprintf(stdout, "%s %s\n\n", SubtitleStyle.Render("Feature file:"), KeyStyle.Render(featurePath))

	built, err := loadFeatures(featurePath, logger)
	if err != nil {
		renderDiagnostics(stderr, built.Diagnostics)
		return err
	}
	reg := built.Registry
	fmt.Fprintf(stdout, "%s %s (file format %d, %s)\n", successIcon, reg.Product(), reg.FileFormat(), reg.Timestamp())
	fmt.Fprintf(stdout, "%s %d version(s), latest %s\n", successIcon, reg.Catalog().Len(), reg.Catalog().Latest())
	fmt.Fprintf(stdout, "%s %d feature section(s)\n", successIcon, len(reg.SectionNames()))
	renderDiagnostics(stderr, built.Diagnostics)
	problems := len(built.Diagnostics)

	userPath, err := cfg.UserFilePath()
	if err != nil {
		return err
	}
	user, err := overrides.Load(userPath, reg)
	if err != nil {
		return userFileError(userPath, err)
	}
	fmt.Fprintf(stdout, "%s User file %s: %d override(s)\n", successIcon, KeyStyle.Render(userPath), user.Layer.Len())
	renderDiagnostics(stderr, user.Diagnostics)
	problems += len(user.Diagnostics)

	if problems > 0 {
		fmt.Fprintf(stderr, "%s Check failed with %d problem(s)\n", errorIcon, problems)
		return &ExitError{Code: 1}
	}
	fmt.Fprintf(stdout, "\n%s Feature file and user file are valid\n", successIcon)
	return nil
}
