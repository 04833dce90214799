// Package main provides the entry point for the protravel CLI.
//
// protravel mirrors the filesystem of a host exposing a path traversal
// vulnerability. Starting from seed paths it fetches each file, stores it
// locally, and follows the paths referenced inside it.
//
// Usage:
//
//	protravel crawl "http://host/download?file=../../.."
//	protravel history --targets
//
// See --help for all available options.
package main

func main() {
	Execute()
}
