// Package loot inspects exfiltrated files for secrets worth reporting.
//
// The analyzer never derives new paths. It only reports what a human
// operator would want to look at first: private keys, cloud and API
// credentials, database URLs with embedded passwords, bearer tokens,
// crackable password hashes and cleartext .netrc passwords.
package loot
