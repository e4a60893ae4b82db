// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/internal/config"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/internal/issue"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/cfgdoc"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/compat"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/features"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/overrides"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/version"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App and reaches
	// configuration, the feature registry and the resolver through it.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer

		flags globalFlags
		// scheme is the glamour style used for issue guides; it follows the
		// loaded configuration.
		scheme config.ColorScheme
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}

	// globalFlags holds the persistent root flags.
	globalFlags struct {
		configFile  string
		featureFile string
		userFile    string
		verbose     bool
	}

	// session is everything one invocation needs to answer queries.
	session struct {
		cfg      *config.Config
		logger   *log.Logger
		registry *features.Registry
		user     overrides.SyncResult
		resolver *compat.Resolver
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		scheme: config.ColorSchemeAuto,
	}
}

// loadConfig loads the tool configuration and applies the root flags on top.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configFile})
	if err != nil {
		var ae *issue.ActionableError
		if errors.As(err, &ae) && ae.Issue == 0 {
			ae.Issue = issue.ConfigLoadFailedId
		}
		return nil, err
	}

	if a.flags.featureFile != "" {
		cfg.FeatureFile = config.FilePath(a.flags.featureFile)
	}
	if a.flags.userFile != "" {
		cfg.UserFile = config.FilePath(a.flags.userFile)
	}
	if a.flags.verbose {
		cfg.UI.Verbose = true
	}
	a.scheme = cfg.UI.ColorScheme
	return cfg, nil
}

// newLogger builds the CLI logger. Verbose mode always logs at debug level.
func (a *App) newLogger(cfg *config.Config) *log.Logger {
	level, err := log.ParseLevel(string(cfg.Log.Level))
	if err != nil {
		level = log.InfoLevel
	}
	if cfg.UI.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// loadFeatures parses and interprets the feature file. Only fatal problems
// are returned as an error; diagnostics are left to the caller.
func loadFeatures(path string, logger *log.Logger) (features.BuildResult, error) {
	doc, err := cfgdoc.ParseFile(path, true)
	if err != nil {
		return features.BuildResult{}, featureFileError(path, err)
	}
	logger.Debug("parsed feature file", "path", path, "sections", doc.Len())

	res, err := features.Build(doc, features.BuildOptions{Logger: logger})
	if err != nil {
		return res, featureFileError(path, err)
	}
	return res, nil
}

// openRegistry loads the configuration and a valid feature file without
// touching the user file.
func (a *App) openRegistry(ctx context.Context) (*session, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, logger: a.newLogger(cfg)}

	featurePath := string(cfg.FeatureFile)
	built, err := loadFeatures(featurePath, s.logger)
	if err != nil {
		return nil, err
	}
	if !built.Valid() {
		renderDiagnostics(a.stderr, built.Diagnostics)
		return nil, issue.NewErrorContext().
			WithOperation("load feature file").
			WithResource(featurePath).
			WithSuggestion("Run 'compass check' to list every problem").
			WithIssue(issue.FeatureFileInvalidId).
			Wrap(fmt.Errorf("%d problem(s) found", len(built.Diagnostics))).
			BuildError()
	}
	s.registry = built.Registry
	return s, nil
}

// open runs the full startup sequence: configuration, feature file, user
// file and resolver. The user file is created or extended as needed, and
// any diagnostic in either file aborts the invocation.
func (a *App) open(ctx context.Context) (*session, error) {
	s, err := a.openRegistry(ctx)
	if err != nil {
		return nil, err
	}

	userPath, err := s.cfg.UserFilePath()
	if err != nil {
		return nil, err
	}
	s.user, err = overrides.Sync(userPath, s.registry, overrides.SyncOptions{Logger: s.logger})
	if err != nil {
		return nil, userFileError(userPath, err)
	}
	if !s.user.Valid() {
		renderDiagnostics(a.stderr, s.user.Diagnostics)
		return nil, issue.NewErrorContext().
			WithOperation("load user file").
			WithResource(userPath).
			WithSuggestion("Fix or remove the reported keys").
			WithIssue(issue.UserFileInvalidId).
			Wrap(fmt.Errorf("%d problem(s) found", len(s.user.Diagnostics))).
			BuildError()
	}

	s.resolver, err = compat.New(s.registry, s.user.Layer, compat.Options{Logger: s.logger})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("resolver ready",
		"sections", len(s.registry.SectionNames()),
		"versions", s.registry.Catalog().Len(),
		"overrides", s.resolver.OverrideCount())
	return s, nil
}

// targetVersion resolves the version a query is evaluated against: the
// explicit value, then the configured default, then the newest catalog entry.
func (s *session) targetVersion(explicit string) (version.Version, error) {
	v := version.Version(explicit)
	if v == "" {
		v = s.cfg.TargetVersion
	}
	if v == "" {
		return s.registry.Catalog().Latest(), nil
	}
	if !s.registry.Catalog().IsValid(v, false) {
		return "", issue.NewErrorContext().
			WithOperation("select target version").
			WithResource(v.String()).
			WithSuggestion("Run 'compass versions' to list the known versions").
			WithIssue(issue.InvalidVersionId).
			Wrap(&version.InvalidVersionError{Value: v}).
			BuildError()
	}
	return v, nil
}

func featureFileError(path string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("load feature file").
		WithResource(path).
		Wrap(err)

	var (
		checksumErr *cfgdoc.ChecksumError
		parseErr    *cfgdoc.ParseError
		headerErr   *features.HeaderError
	)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		ctx.WithIssue(issue.FeatureFileNotFoundId).
			WithSuggestion("Pass --feature-file or set feature_file in the configuration")
	case errors.Is(err, fs.ErrPermission):
		ctx.WithIssue(issue.PermissionDeniedId)
	case errors.As(err, &checksumErr):
		ctx.WithIssue(issue.ChecksumMismatchId).
			WithSuggestion("Restore the file from the release archive")
	case errors.As(err, &parseErr):
		ctx.WithIssue(issue.FeatureFileParseErrorId).
			WithSuggestion(fmt.Sprintf("Check line %d of the file", parseErr.Line))
	case errors.As(err, &headerErr):
		ctx.WithIssue(issue.FeatureFileInvalidId)
	}
	return ctx.BuildError()
}

func userFileError(path string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("load user file").
		WithResource(path).
		Wrap(err)

	var parseErr *cfgdoc.ParseError
	switch {
	case errors.Is(err, fs.ErrPermission):
		ctx.WithIssue(issue.PermissionDeniedId).
			WithSuggestion("Pass --user-file to use a writable location")
	case errors.As(err, &parseErr):
		ctx.WithIssue(issue.UserFileInvalidId).
			WithSuggestion(fmt.Sprintf("Check line %d of the file", parseErr.Line))
	}
	return ctx.BuildError()
}

// queryError attaches guidance to resolver errors.
func queryError(op string, err error) error {
	if errors.Is(err, compat.ErrUnknownSection) {
		return issue.NewErrorContext().
			WithOperation(op).
			WithSuggestion("Run 'compass list' to see the feature sections").
			WithIssue(issue.SectionNotFoundId).
			Wrap(err).
			BuildError()
	}
	return err
}
