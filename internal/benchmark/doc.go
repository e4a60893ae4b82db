// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// These benchmarks cover the hot paths of a compass invocation:
//   - feature file parsing and checksum verification
//   - registry construction
//   - compatibility queries, including wildcard items and overrides
//   - CUE configuration loading
//
// To generate a profile, run:
//
//	go test -run='^$' -bench=. -cpuprofile=default.pgo ./internal/benchmark
package benchmark
