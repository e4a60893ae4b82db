// SPDX-License-Identifier: MPL-2.0

// Package overrides interprets the user configuration file, which replaces
// base classifications and report groups for individual sections or items.
//
// The user file uses the same line dialect as the feature file but carries no
// checksum, and only DEFAULT_CLASSIFICATION and REPORT_GROUP keys are allowed.
// Sync keeps the file in step with the feature registry by appending an empty
// header for every section it does not mention yet.
package overrides
