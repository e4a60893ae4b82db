// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the compass command tree.
//
// Every handler receives an *App, which loads the tool configuration, the
// checksum-protected feature file and the user override file once per
// invocation and hands the resulting compat.Resolver to the command.
package cmd
