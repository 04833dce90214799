// Package scan mines candidate filesystem paths out of fetched content.
//
// It provides two pieces:
//   - Accept: the filter deciding whether a discovered path is worth fetching
//   - Scanner: a byte-pattern extractor that finds absolute and relative
//     path references in arbitrary content and resolves them against the
//     path the content came from
//
// Design decision: Content of unknown type (logs, binaries, configs) is
// mined with a single generic pattern instead of format-aware parsers.
// False positives only cost a cheap failed request, while missed paths
// would cut the crawl short.
package scan
