package handler

import (
	"bytes"
	"path"
	"strings"

	"github.com/nao1215/protravel/internal/model"
)

// passwdHomeField is the zero-based index of the home directory column.
const passwdHomeField = 5

// homeFiles are the sensitive files tried under every home directory.
var homeFiles = []string{
	".netrc",
	".ssh/id_rsa",
	".ssh/id_ecdsa",
	".ssh/id_ed25519",
	".ssh/config",
	".ssh/authorized_keys",
	".ssh/known_hosts",
	".bash_history",
	".bash_logout",
	".bash_profile",
	".bashrc",
	".profile",
	".git-credentials",
}

// Passwd parses an account database and emits the sensitive files of every
// listed home directory. Lines with too few fields or a relative home are
// skipped one by one.
func Passwd(_ string, content []byte) Result {
	seen := make(map[string]struct{})
	var paths []string

	for _, line := range bytes.Split(content, []byte("\n")) {
		home, ok := homeDir(string(line))
		if !ok {
			continue
		}
		for _, f := range homeFiles {
			p := path.Join(home, f)
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			paths = append(paths, p)
		}
	}

	return Result{Paths: paths}
}

// homeDir extracts the home directory column from one passwd record.
func homeDir(line string) (string, bool) {
	fields := strings.Split(strings.TrimRight(line, "\r"), ":")
	if len(fields) <= passwdHomeField {
		return "", false
	}
	home := fields[passwdHomeField]
	if !model.IsAbsolute(home) {
		return "", false
	}
	return home, true
}
