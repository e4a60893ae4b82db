// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/internal/issue"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/internal/testutil/cfgtest"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/compat"
)

func TestSupportedCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"listed item in range", []string{"Functions", "ABS", "--target", "1.0.0"}, "Supported"},
		{"item outside its range", []string{"Functions", "SOUNDEX", "--target", "2.1.0"}, "NotSupported"},
		{"item inside its range", []string{"Functions", "soundex", "-t", "1.2.0"}, "Supported"},
		{"wildcard item at latest version", []string{"Functions", "DATEADD"}, "Supported"},
		{"wildcard item too early", []string{"Functions", "DATEADD", "--target", "2.0.0"}, "NotSupported"},
		{"argument value", []string{"SET ANSI_NULLS", "--arg", "off", "--target", "2.0.0"}, "Supported"},
		{"argument value too early", []string{"SET ANSI_NULLS", "--arg", "'OFF'", "--target", "1.2.0"}, "ReviewSemantics"},
		{"variable argument", []string{"SET ANSI_NULLS", "--arg", "@flag"}, "ReviewManually"},
		{"expression argument", []string{"SET ANSI_NULLS", "--arg", "(1)"}, "ReviewManually"},
		{"section level", []string{"SET ANSI_NULLS"}, "Supported"},
		{"unsupported classification", []string{"FOO", "A"}, "ReviewSemantics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := newFixture(t, "").run(t, append([]string{"supported"}, tt.args...)...)
			if res.err != nil {
				t.Fatalf("supported %v: %v\n%s", tt.args, res.err, res.stderr)
			}
			if got := strings.TrimSpace(res.stdout); got != tt.want {
				t.Errorf("supported %v = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestSupportedCommand_ConfiguredTarget(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.cfg.TargetVersion = "1.1.0"
	if res := f.run(t, "supported", "Functions", "SOUNDEX"); strings.TrimSpace(res.stdout) != "Supported" {
		t.Errorf("configured target ignored: %q (%v)", res.stdout, res.err)
	}

	res := f.run(t, "supported", "Functions", "SOUNDEX", "--target", "9.9.9")
	var ae *issue.ActionableError
	if !errors.As(res.err, &ae) || ae.Issue != issue.InvalidVersionId {
		t.Errorf("unknown target version error = %v", res.err)
	}
}

func TestStatusCommand_UserOverride(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "[FOO]\nDEFAULT_CLASSIFICATION-ReviewPerformance=A\nREPORT_GROUP=Local\n")

	res := f.run(t, "status", "FOO", "A")
	if res.err != nil {
		t.Fatalf("status: %v\n%s", res.err, res.stderr)
	}
	if got := strings.TrimSpace(res.stdout); got != "ReviewPerformance" {
		t.Errorf("status FOO A = %q, want ReviewPerformance", got)
	}
	if !strings.Contains(res.stderr, "classification overridden") {
		t.Errorf("override was not logged:\n%s", res.stderr)
	}

	res = f.run(t, "status", "foo", "b")
	if got := strings.TrimSpace(res.stdout); got != "Ignored" {
		t.Errorf("status FOO B = %q, want Ignored", got)
	}

	res = f.run(t, "group", "FOO", "A")
	if got := strings.TrimSpace(res.stdout); got != "Local" {
		t.Errorf("group FOO A = %q, want Local", got)
	}
}

func TestGroupCommand_NoGroup(t *testing.T) {
	t.Parallel()

	res := newFixture(t, "").run(t, "group", "Functions")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if !strings.Contains(res.stdout, "(no report group)") {
		t.Errorf("group Functions = %q", res.stdout)
	}
}

func TestQuery_UnknownSection(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"status", "Nope"},
		{"group", "Nope", "X"},
		{"supported", "Nope"},
		{"minver", "Nope"},
		{"list", "Nope"},
	} {
		res := newFixture(t, "").run(t, args...)
		if !errors.Is(res.err, compat.ErrUnknownSection) {
			t.Errorf("%v: error = %v, want ErrUnknownSection", args, res.err)
			continue
		}
		var ae *issue.ActionableError
		if !errors.As(res.err, &ae) || ae.Issue != issue.SectionNotFoundId {
			t.Errorf("%v: error is not linked to the section guide", args)
		}
	}
}

func TestMinVersionCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")

	if res := f.run(t, "minver", "Functions", "SOUNDEX"); strings.TrimSpace(res.stdout) != "1.1.0" {
		t.Errorf("minver SOUNDEX = %q (%v)", res.stdout, res.err)
	}
	if res := f.run(t, "minver", "SET ANSI_NULLS", "--arg", "OFF"); strings.TrimSpace(res.stdout) != "2.0.0" {
		t.Errorf("minver --arg OFF = %q (%v)", res.stdout, res.err)
	}

	res := f.run(t, "minver", "FOO", "A")
	var exitErr *ExitError
	if !errors.As(res.err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("minver FOO A error = %v, want exit code 1", res.err)
	}
	if !strings.Contains(res.stdout, "not supported in any version") {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestOpen_CreatesUserFile(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	if res := f.run(t, "status", "FOO"); res.err != nil {
		t.Fatal(res.err)
	}

	data, err := os.ReadFile(f.userFile)
	if err != nil {
		t.Fatalf("user file was not created: %v", err)
	}
	for _, header := range []string{"[FOO]", "[Functions]", "[SET ANSI_NULLS]"} {
		if !strings.Contains(string(data), header) {
			t.Errorf("user file lacks %s", header)
		}
	}
}

func TestOpen_FeatureFileErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, "")
		f.featureFile += ".missing"
		assertIssue(t, f.run(t, "status", "FOO").err, issue.FeatureFileNotFoundId)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, "")
		sealed := testFeatureFile().Sealed(t)
		tampered := strings.Replace(sealed, "SUPPORTED-1.0.0=ABS", "SUPPORTED-1.0.0=ABS,SOUNDEX", 1)
		if err := os.WriteFile(f.featureFile, []byte(tampered), 0o644); err != nil {
			t.Fatal(err)
		}
		assertIssue(t, f.run(t, "status", "FOO").err, issue.ChecksumMismatchId)
	})

	t.Run("collected problems", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, "")
		testFeatureFile(cfgtest.WithSection("Broken", "LIST=X", "SUPPORTED-7.7.7=X")).
			Write(t, f.dir, "BabelfishFeatures.cfg")

		res := f.run(t, "status", "FOO")
		assertIssue(t, res.err, issue.FeatureFileInvalidId)
		if !strings.Contains(res.stderr, "invalid_version") {
			t.Errorf("diagnostics not rendered:\n%s", res.stderr)
		}
	})

	t.Run("invalid user file", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, "[FOO]\nSUPPORTED-1.0.0=A\n")
		res := f.run(t, "status", "FOO")
		assertIssue(t, res.err, issue.UserFileInvalidId)
		if !strings.Contains(res.stderr, "invalid_override_key") {
			t.Errorf("diagnostics not rendered:\n%s", res.stderr)
		}
	})
}

func assertIssue(t *testing.T, err error, want issue.Id) {
	t.Helper()
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want an ActionableError", err)
	}
	if ae.Issue != want {
		t.Errorf("issue = %d, want %d (%v)", ae.Issue, want, err)
	}
}
