// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/compat"
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/features"

	"github.com/spf13/cobra"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [section]",
		Short: "List feature sections, or the keys of one section",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				listSections(app, s)
				return nil
			}
			return listSection(app, s, args[0])
		},
	}
}

func listSections(app *App, s *session) {
	for _, sec := range s.registry.Sections() {
		var details []string
		if n := len(sec.List()); n > 0 {
			details = append(details, fmt.Sprintf("%d item(s)", n))
		}
		if slot := sec.ArgSlot(); slot > 0 {
			details = append(details, fmt.Sprintf("ARG%d", slot))
		}
		if hasEntries(s, sec.Name()) {
			details = append(details, "overridden")
		}
		line := KeyStyle.Render(sec.Name())
		if len(details) > 0 {
			line += " " + SubtitleStyle.Render("("+strings.Join(details, ", ")+")")
		}
		fmt.Fprintln(app.stdout, line)
	}
}

func hasEntries(s *session, section string) bool {
	o, ok := s.user.Layer.Section(section)
	return ok && len(o.Entries()) > 0
}

func listSection(app *App, s *session, name string) error {
	sec, ok := s.registry.Section(name)
	if !ok {
		return queryError("list section", &compat.SectionError{Section: name})
	}
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("["+sec.Name()+"]"))
	if slot := sec.ArgSlot(); slot > 0 {
		fmt.Fprintf(out, "%s ARG%d\n", SubtitleStyle.Render("Argument slot:"), slot)
	}
	if items := sec.List(); len(items) > 0 {
		fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("Items:"), strings.Join(items, ", "))
	}
	for _, rule := range sec.Rules() {
		fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("Rule:"), rule)
	}

	writeEntries(app, "Feature file", sec.Entries())
	if o, ok := s.user.Layer.Section(sec.Name()); ok {
		writeEntries(app, "User file", o.Entries())
	}
	return nil
}

func writeEntries(app *App, title string, entries []features.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, SubtitleStyle.Render(title+":"))
	for _, e := range entries {
		fmt.Fprintf(app.stdout, "  %s = %s\n", KeyStyle.Render(e.Key.Raw), strings.Join(e.Values, ","))
	}
}

func newVersionsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List the product versions known to the feature file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.openRegistry(cmd.Context())
			if err != nil {
				return err
			}
			target, err := s.targetVersion("")
			if err != nil {
				return err
			}
			for _, v := range s.registry.Catalog().Versions() {
				if v == target {
					fmt.Fprintf(app.stdout, "%s %s\n", v, SuccessStyle.Render("(target)"))
					continue
				}
				fmt.Fprintln(app.stdout, v)
			}
			return nil
		},
	}
}
