// SPDX-License-Identifier: MPL-2.0

// Package compat answers compatibility queries against a feature registry
// and an optional user override layer.
//
// Classification and report-group queries resolve the base registry first
// and then let a matching override replace the result. Supported-status
// queries scan SUPPORTED keys in declaration order and fall back to the
// classification when no key covers the requested version.
package compat
