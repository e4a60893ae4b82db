// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that fail the test
// immediately on setup errors and hand back cleanup functions.
//
// Helpers cover environment variables (MustSetenv, MustUnsetenv, SetHomeDir),
// the working directory (MustChdir) and files (MustWriteFile, MustReadFile).
// Feature-file fixtures live in the cfgtest subpackage.
package testutil
