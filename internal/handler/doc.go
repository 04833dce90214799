// Package handler provides specialized extractors for well-known files.
//
// A Registry maps exact filesystem paths (no globbing) to a Func. Handlers
// run in addition to the generic scanner on every successful fetch; they
// may emit new candidate paths (e.g. sensitive files under every home
// directory listed in /etc/passwd) and human-readable notices.
//
// Design decision: The table is built once by Default() and never mutated
// afterwards. The crawl engine receives it explicitly instead of reading a
// process-wide registry, which keeps tests isolated.
package handler
