// Package frontier holds the crawl frontier and its durable snapshot.
//
// The frontier is two disjoint sets of absolute paths: pending (to be
// fetched) and done (attempted, whatever the outcome). Pending paths are
// kept in FIFO order in a deque with a parallel membership set, so
// duplicate checks stay O(1).
//
// FileStore persists both sets as newline-delimited text files in the run
// directory. Saving is idempotent and loading merges every source, so a run
// interrupted at any point can simply be started again.
package frontier
