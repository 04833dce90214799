// Package sink stores exfiltrated file contents on the local filesystem.
//
// Every remote path is mirrored below a root directory, so fetching
// /etc/passwd with root "out" produces out/etc/passwd.
package sink
