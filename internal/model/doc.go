// Package model defines the data structures shared across protravel.
//
// This package contains the following main types:
//   - Path rules: what counts as a fetchable filesystem path
//   - Outcome: the result of a single fetch attempt
//   - Notice: a human-readable advisory raised while inspecting loot
//   - RunReport: the summary of one crawl run
//
// Design decision: We keep these types in their own package so that the
// crawler, handler, loot, database and report packages can share them
// without import cycles.
package model
