// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/internal/config"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/internal/testutil"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/internal/testutil/cfgtest"
)

type (
	// stubProvider returns a fixed configuration.
	stubProvider struct {
		cfg *config.Config
		err error
	}

	fixture struct {
		dir         string
		featureFile string
		userFile    string
		cfg         *config.Config
	}

	cliResult struct {
		stdout string
		stderr string
		err    error
	}
)

func (p stubProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	cfg := *p.cfg
	return &cfg, nil
}

// testFeatureFile returns the feature file used by command tests. extra adds
// sections after the standard ones.
func testFeatureFile(extra ...cfgtest.Option) *cfgtest.File {
	opts := []cfgtest.Option{
		cfgtest.WithSection("FOO",
			"LIST=A,B",
			"DEFAULT_CLASSIFICATION=ReviewSemantics",
			"DEFAULT_CLASSIFICATION-Ignored=B",
			"REPORT_GROUP=Misc",
		),
		cfgtest.WithSection("Functions",
			"LIST=ABS,SOUNDEX,DATE%",
			"SUPPORTED-1.0.0=ABS",
			"SUPPORTED-1.1.0-1.2.0=SOUNDEX",
			"SUPPORTED-2.1.0=DATE%",
			"DEFAULT_CLASSIFICATION=NotSupported",
		),
		cfgtest.WithSection("SET ANSI_NULLS",
			"SUPPORTED-1.0.0=*",
			"SUPPORTED-1.2.0/ARG1=ON",
			"SUPPORTED-2.0.0/ARG1=OFF",
			"DEFAULT_CLASSIFICATION=ReviewSemantics",
			"RULE=session option",
		),
	}
	return cfgtest.NewFile(append(opts, extra...)...)
}

// newFixture writes the test feature file and, when user is not empty, a
// user file next to it.
func newFixture(t *testing.T, user string) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:         dir,
		featureFile: testFeatureFile().Write(t, dir, "BabelfishFeatures.cfg"),
		userFile:    filepath.Join(dir, "user.cfg"),
		cfg:         config.DefaultConfig(),
	}
	if user != "" {
		testutil.MustWriteFile(t, dir, "user.cfg", user)
	}
	return f
}

// run executes the command tree with the fixture's files.
func (f fixture) run(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: stubProvider{cfg: f.cfg},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	root := NewRootCommand(app)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--feature-file", f.featureFile, "--user-file", f.userFile}, args...))

	err := root.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
