// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/internal/issue"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/cfgdoc"

	"github.com/spf13/cobra"
)

func newChecksumCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "checksum [file]",
		Short: "Recompute the checksum line of a feature file",
		Long: `Recompute the checksum line of a feature file.

Use this after editing the feature file by hand. The file defaults to the
configured feature file and must still be syntactically valid. Setting
` + updateChecksumEnv + `=1 runs the same update before any other command and
then skips that command.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecksum(cmd, app, argAt(args, 0))
		},
	}
}

func runChecksum(cmd *cobra.Command, app *App, path string) error {
	if path == "" {
		cfg, err := app.loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		path = string(cfg.FeatureFile)
	}

	update, err := cfgdoc.UpdateChecksum(path)
	if err != nil {
		ctx := issue.NewErrorContext().
			WithOperation("update checksum").
			WithResource(path).
			Wrap(err)
		var parseErr *cfgdoc.ParseError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			ctx.WithIssue(issue.FeatureFileNotFoundId)
		case errors.Is(err, fs.ErrPermission):
			ctx.WithIssue(issue.PermissionDeniedId)
		case errors.As(err, &parseErr):
			ctx.WithIssue(issue.FeatureFileParseErrorId).
				WithSuggestion(fmt.Sprintf("Fix line %d before updating the checksum", parseErr.Line))
		}
		return ctx.BuildError()
	}

	switch {
	case update.Inserted:
		fmt.Fprintf(app.stdout, "%s Added checksum %s to %s\n", successIcon, update.Current, KeyStyle.Render(path))
	case update.Changed():
		fmt.Fprintf(app.stdout, "%s Updated checksum of %s: %s -> %s\n", successIcon, KeyStyle.Render(path), update.Previous, update.Current)
	default:
		fmt.Fprintf(app.stdout, "%s Checksum of %s is up to date\n", successIcon, KeyStyle.Render(path))
	}
	return nil
}
