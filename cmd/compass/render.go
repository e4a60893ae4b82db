// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/internal/issue"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/cfgdoc"

	"github.com/charmbracelet/fang"
)

// renderDiagnostics writes one numbered entry per diagnostic.
func renderDiagnostics(w io.Writer, diags []cfgdoc.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(w, "%s %d problem(s) found:\n\n", warningIcon, len(diags))
	for i, d := range diags {
		where := d.Section
		if d.Key != "" {
			where += " / " + d.Key
		}
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, diagCodeStyle.Render("["+d.Code.String()+"]"), KeyStyle.Render("["+where+"]"))
		fmt.Fprintf(w, "     %s\n", d.Message)
	}
	fmt.Fprintln(w)
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their Format method, which adds the cause chain in verbose mode.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderError writes err followed by its issue guide, if it links one.
func (a *App) renderError(w io.Writer, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.flags.verbose))

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	guide := ae.Guide()
	if guide == nil {
		return
	}
	rendered, renderErr := guide.Render(string(a.scheme))
	if renderErr != nil {
		fmt.Fprintln(w, VerboseStyle.Render("(failed to render guide: "+renderErr.Error()+")"))
		return
	}
	fmt.Fprint(w, rendered)
}

// errorHandler adapts renderError to fang.
func (a *App) errorHandler() fang.ErrorHandler {
	return func(w io.Writer, _ fang.Styles, err error) {
		a.renderError(w, err)
	}
}
