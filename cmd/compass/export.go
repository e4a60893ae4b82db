// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"fmt"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/cfgdoc"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/features"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/overrides"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/version"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

const (
	formatTOML = "toml"
	formatCfg  = "cfg"
)

type (
	// matrix is the TOML rendering of a feature registry.
	matrix struct {
		Product    string            `toml:"product"`
		FileFormat int               `toml:"file_format"`
		Timestamp  string            `toml:"timestamp"`
		Versions   []version.Version `toml:"versions"`
		Sections   []matrixSection   `toml:"section"`
	}

	matrixSection struct {
		Name      string      `toml:"name"`
		ArgSlot   int         `toml:"arg_slot,omitempty"`
		List      []string    `toml:"list,omitempty"`
		Keys      []matrixKey `toml:"key,omitempty"`
		Overrides []matrixKey `toml:"override,omitempty"`
	}

	matrixKey struct {
		Key    string   `toml:"key"`
		Values []string `toml:"values"`
	}
)

func newExportCommand(app *App) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the feature matrix",
		Long: `Export the feature matrix.

--format toml writes every section with its keys and the user file overrides
in force. --format cfg writes the feature file in canonical form with a fresh
checksum line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				data []byte
				err  error
			)
			switch format {
			case formatTOML:
				data, err = exportTOML(cmd, app)
			case formatCfg:
				data, err = exportCfg(cmd, app)
			default:
				return fmt.Errorf("unknown format %q (valid: %s, %s)", format, formatTOML, formatCfg)
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err = app.stdout.Write(data)
				return err
			}
			if err := cfgdoc.WriteFileAtomic(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(app.stderr, "%s Wrote %s\n", successIcon, KeyStyle.Render(output))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", formatTOML, "output format (toml, cfg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func exportTOML(cmd *cobra.Command, app *App) ([]byte, error) {
	s, err := app.openRegistry(cmd.Context())
	if err != nil {
		return nil, err
	}
	userPath, err := s.cfg.UserFilePath()
	if err != nil {
		return nil, err
	}
	user, err := overrides.Load(userPath, s.registry)
	if err != nil {
		return nil, userFileError(userPath, err)
	}
	renderDiagnostics(app.stderr, user.Diagnostics)

	return toml.Marshal(buildMatrix(s.registry, user.Layer))
}

func buildMatrix(reg *features.Registry, layer *overrides.Layer) matrix {
	m := matrix{
		Product:    reg.Product(),
		FileFormat: reg.FileFormat(),
		Timestamp:  reg.Timestamp(),
		Versions:   reg.Catalog().Versions(),
	}
	for _, sec := range reg.Sections() {
		ms := matrixSection{
			Name:    sec.Name(),
			ArgSlot: sec.ArgSlot(),
			List:    sec.List(),
			Keys:    matrixKeys(sec.Entries()),
		}
		if o, ok := layer.Section(sec.Name()); ok {
			ms.Overrides = matrixKeys(o.Entries())
		}
		m.Sections = append(m.Sections, ms)
	}
	return m
}

func matrixKeys(entries []features.Entry) []matrixKey {
	var keys []matrixKey
	for _, e := range entries {
		keys = append(keys, matrixKey{Key: e.Key.Raw, Values: e.Values})
	}
	return keys
}

func exportCfg(cmd *cobra.Command, app *App) ([]byte, error) {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return nil, err
	}
	path := string(cfg.FeatureFile)
	doc, err := cfgdoc.ParseFile(path, true)
	if err != nil {
		return nil, featureFileError(path, err)
	}

	var buf bytes.Buffer
	if err := cfgdoc.Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
