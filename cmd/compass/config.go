// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `compass config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage compass configuration",
		Long: `Manage compass configuration.

Configuration is stored in:
  - Linux: ~/.config/compass/config.cue
  - macOS: ~/Library/Application Support/compass/config.cue
  - Windows: %APPDATA%\compass\config.cue

Any key can be overridden with a ` + config.EnvPrefix + `_ environment variable,
for example ` + config.EnvPrefix + `_LOG_LEVEL=debug.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return showConfig(cmd, app)
			},
		},
		&cobra.Command{
			Use:   "dump",
			Short: "Output the effective configuration as CUE",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := app.loadConfig(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show configuration file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfgDir, err := config.ConfigDir()
				if err != nil {
					return err
				}
				cfgPath, err := config.ConfigFilePath()
				if err != nil {
					return err
				}
				fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
				fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Create default configuration file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path, created, err := config.CreateDefaultConfig()
				if err != nil {
					return err
				}
				if !created {
					fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", warningIcon, path)
					return nil
				}
				fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", successIcon, path)
				return nil
			},
		},
	)
	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	out := app.stdout
	keyStyle, valueStyle := KeyStyle, SuccessStyle

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	source := app.flags.configFile
	if source == "" {
		if _, path, err := config.LoadWithSource(cmd.Context(), config.LoadOptions{}); err == nil {
			source = path
		}
	}
	if source == "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), source)
	}
	fmt.Fprintln(out)

	userPath, err := cfg.UserFilePath()
	if err != nil {
		return err
	}
	target := cfg.TargetVersion.String()
	if target == "" {
		target = "(latest in feature file)"
	}

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("feature_file"), valueStyle.Render(cfg.FeatureFile.String()))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("user_file"), valueStyle.Render(userPath))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("target_version"), valueStyle.Render(target))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("log"))
	fmt.Fprintf(out, "  level: %s\n", valueStyle.Render(cfg.Log.Level.String()))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	return nil
}
