package sink

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
)

const (
	// dirPerm is the permission for mirrored directories.
	dirPerm = 0o750
	// filePerm is the permission for stored files. Loot may contain secrets.
	filePerm = 0o600
)

var (
	// ErrEscapesRoot is returned when a remote path would resolve outside the root.
	ErrEscapesRoot = errors.New("path escapes output directory")

	// ErrConflict is returned when a path collides with the mirrored layout,
	// such as a stored file where a directory is needed or the reverse.
	ErrConflict = errors.New("path conflicts with mirrored layout")
)

// IsUnstorable reports whether err comes from the shape of the path rather
// than the local environment. Storing the same path again fails the same way.
func IsUnstorable(err error) bool {
	return errors.Is(err, ErrEscapesRoot) || errors.Is(err, ErrConflict)
}

// Dir writes file contents beneath Root, mirroring the remote path layout.
type Dir struct {
	Root string
}

// NewDir returns a Dir rooted at root.
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

// Location returns the local file that mirrors the remote path p.
func (d *Dir) Location(p string) (string, error) {
	cleaned := path.Clean("/" + p)
	if cleaned == "/" {
		return "", fmt.Errorf("%w: %q", ErrEscapesRoot, p)
	}
	local := filepath.Join(d.Root, filepath.FromSlash(strings.TrimPrefix(cleaned, "/")))

	rel, err := filepath.Rel(d.Root, local)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrEscapesRoot, p)
	}
	return local, nil
}

// Store writes content to the mirrored location of p, creating parent
// directories as needed. An existing file is overwritten.
func (d *Dir) Store(p string, content []byte) error {
	local, err := d.Location(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(local), dirPerm); err != nil {
		return storeError("failed to create directory for", p, err)
	}
	if err := os.WriteFile(local, content, filePerm); err != nil {
		return storeError("failed to store", p, err)
	}
	return nil
}

func storeError(msg, p string, err error) error {
	if errors.Is(err, syscall.ENOTDIR) || errors.Is(err, syscall.EISDIR) {
		return fmt.Errorf("%w: %s: %w", ErrConflict, p, err)
	}
	return fmt.Errorf("%s %s: %w", msg, p, err)
}
