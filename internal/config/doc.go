// Package config provides configuration structures and utilities for protravel.
// It holds the crawl settings gathered from CLI flags and the optional
// .protravel file, and the XDG directories used for persistent data.
package config
