package frontier

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Snapshot file names inside the run directory.
const (
	QueueFile = ".queue.txt"
	DoneFile  = ".done.txt"
)

// FileStore loads and saves a Frontier as two text files in Dir.
type FileStore struct {
	// Dir is the run directory holding QueueFile and DoneFile.
	Dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// QueuePath returns the location of the pending snapshot.
func (s *FileStore) QueuePath() string {
	return filepath.Join(s.Dir, QueueFile)
}

// DonePath returns the location of the done snapshot.
func (s *FileStore) DonePath() string {
	return filepath.Join(s.Dir, DoneFile)
}

// Load builds the initial Frontier: the pending snapshot, the optional file
// list and the explicit seeds, minus everything recorded as done.
// Missing files are treated as empty sets. An empty fileList is skipped.
func (s *FileStore) Load(fileList string, seeds []string) (*Frontier, error) {
	done, err := ReadPathFile(s.DonePath())
	if err != nil {
		return nil, err
	}
	queued, err := ReadPathFile(s.QueuePath())
	if err != nil {
		return nil, err
	}
	var listed []string
	if fileList != "" {
		listed, err = ReadPathFile(fileList)
		if err != nil {
			return nil, err
		}
	}

	f := New()
	f.MarkDone(done...)
	f.Add(queued...)
	f.Add(listed...)
	f.Add(seeds...)
	return f, nil
}

// Save overwrites both snapshot files. Each file is written to a temporary
// name and renamed into place, so a crash leaves at most one file stale.
func (s *FileStore) Save(f *Frontier) error {
	if err := os.MkdirAll(s.Dir, 0750); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}
	if err := writePathFile(s.QueuePath(), f.Pending()); err != nil {
		return err
	}
	return writePathFile(s.DonePath(), f.Done())
}

// ReadPathFile reads one path per line, trimming surrounding whitespace and
// skipping blank lines. A missing file yields an empty slice.
func ReadPathFile(name string) ([]string, error) {
	file, err := os.Open(name) //nolint:gosec // Paths come from the operator
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer file.Close()

	paths := make([]string, 0)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return paths, nil
}

// writePathFile atomically replaces name with one path per line.
func writePathFile(name string, paths []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary snapshot: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, p := range paths {
		if _, err := w.WriteString(p + "\n"); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, name); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
