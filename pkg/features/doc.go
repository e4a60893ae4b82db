// SPDX-License-Identifier: MPL-2.0

// Package features interprets the trusted feature file.
//
// The first section, named after the product, declares the valid product
// versions, the file format and a timestamp. Every following section
// describes one feature: the items it covers (LIST), the versions in which
// those items are supported (SUPPORTED-<range>[/ARG<n>]), their default
// classification (DEFAULT_CLASSIFICATION[-<status>]) and report group
// (REPORT_GROUP[-<group>]).
//
// Keys are parsed once into a tagged Key value; lookups switch on its Kind
// rather than re-reading the key text. Build returns the Registry together
// with every non-fatal Diagnostic found, so one run reports all problems.
package features
