// SPDX-License-Identifier: MPL-2.0

// Package config handles tool configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the --config flag, from config.cue in the
// compass configuration directory ($XDG_CONFIG_HOME/compass on Linux,
// ~/Library/Application Support/compass on macOS, %APPDATA%\compass on
// Windows), or from ./config.cue. Values can be overridden with COMPASS_
// environment variables, e.g. COMPASS_TARGET_VERSION or COMPASS_LOG_LEVEL.
//
// Files are validated against the embedded config_schema.cue before they are
// merged into Viper.
package config
