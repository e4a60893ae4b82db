// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the file involved and
// suggestions for fixing it. Errors may point at an Issue, a Markdown guide
// that the CLI renders with glamour when the failure needs more explanation
// than a few suggestions.
package issue
