// Package database provides SQLite-based loot history for protravel.
//
// The LootDB stores:
//   - One fetch record per target and path, overwritten on every attempt
//   - Every notice raised while inspecting fetched content
//   - A JSON copy of each finished run report
//
// SQLite (via modernc.org/sqlite) keeps the history in a single CGO-free
// file under the XDG data directory.
package database
