// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/compat"

	"github.com/spf13/cobra"
)

// argAt returns args[i], or "" when it was not given.
func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <section> [name]",
		Short: "Show the classification of a section or one of its items",
		Long: `Show the classification of a section or one of its items.

The classification is what an unsupported feature is reported as. User file
overrides take precedence over the feature file; without any classification
key the result is NotSupported.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			status, err := s.resolver.Status(args[0], argAt(args, 1))
			if err != nil {
				return queryError("look up classification", err)
			}
			fmt.Fprintln(app.stdout, statusStyle(status).Render(status.String()))
			return nil
		},
	}
}

func newGroupCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "group <section> [name]",
		Short: "Show the report group of a section or one of its items",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			group, err := s.resolver.Group(args[0], argAt(args, 1))
			if err != nil {
				return queryError("look up report group", err)
			}
			if group == "" {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("(no report group)"))
				return nil
			}
			fmt.Fprintln(app.stdout, group)
			return nil
		},
	}
}

func newSupportedCommand(app *App) *cobra.Command {
	var target, arg string

	cmd := &cobra.Command{
		Use:   "supported <section> [name]",
		Short: "Check whether a feature is supported in a version",
		Long: `Check whether a feature is supported in a version.

Prints Supported, or the classification the feature is reported as. With
--arg the value of the section's argument slot is checked instead of the
name; values starting with '@' or '(' cannot be assessed and print
ReviewManually.

The version defaults to target_version from the configuration, or the newest
version in the feature file.`,
		Example: `  compass supported Functions SOUNDEX --target 2.1.0
  compass supported "SET ANSI_NULLS" --arg OFF`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			v, err := s.targetVersion(target)
			if err != nil {
				return err
			}
			status, err := s.resolver.Supported(v, compat.Query{Section: args[0], Name: argAt(args, 1), Arg: arg})
			if err != nil {
				return queryError("check support", err)
			}
			s.logger.Debug("support checked", "section", args[0], "version", v, "status", status)
			fmt.Fprintln(app.stdout, statusStyle(status).Render(status.String()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&target, "target", "t", "", "version to check against")
	cmd.Flags().StringVar(&arg, "arg", "", "argument value to check")
	return cmd
}

func newMinVersionCommand(app *App) *cobra.Command {
	var arg string

	cmd := &cobra.Command{
		Use:   "minver <section> [name]",
		Short: "Show the first version that supports a feature",
		Long: `Show the first version that supports a feature.

The exit code is 1 when no version supports it.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			v, ok, err := s.resolver.MinimumVersion(compat.Query{Section: args[0], Name: argAt(args, 1), Arg: arg})
			if err != nil {
				return queryError("look up minimum version", err)
			}
			if !ok {
				fmt.Fprintln(app.stdout, ErrorStyle.Render("not supported in any version"))
				return &ExitError{Code: 1}
			}
			fmt.Fprintln(app.stdout, v)
			return nil
		},
	}
	cmd.Flags().StringVar(&arg, "arg", "", "argument value to look up")
	return cmd
}
