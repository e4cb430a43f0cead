package transfer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore keeps every destination as one flat file directly under baseDir.
// No handle outlives a single call: each operation opens, acts and closes.
type DiskStore struct {
	baseDir string
}

func NewDiskStore(baseDir string) (*DiskStore, error) {
	if baseDir == "" {
		baseDir = "files/uploads"
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{baseDir: baseDir}, nil
}

func (s *DiskStore) path(name string) string {
	return filepath.Join(s.baseDir, name)
}

// Append writes data to the end of the named file, creating it if absent,
// and returns the file size after the write. One call is one write syscall
// against an O_APPEND descriptor, so a single append never interleaves.
func (s *DiskStore) Append(name string, data []byte) (int64, error) {
	f, err := os.OpenFile(s.path(name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, wrapIO("failed to open destination for append", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return 0, wrapIO("failed to append part", err)
	}

	info, err := f.Stat()
	if err != nil {
		return 0, wrapIO("failed to stat destination after append", err)
	}
	return info.Size(), nil
}

// Size reports the current byte length of the named file.
func (s *DiskStore) Size(name string) (int64, error) {
	info, err := os.Stat(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, newError(KindNotFound, "file not found: %s", name)
		}
		return 0, wrapIO("failed to stat file", err)
	}
	return info.Size(), nil
}

// ReadRange reads up to length bytes starting at offset. A shorter slice is
// returned for the final range of a file; reading at or past the end yields
// an empty slice, not an error.
func (s *DiskStore) ReadRange(name string, offset, length int64) ([]byte, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newError(KindNotFound, "file not found: %s", name)
		}
		return nil, wrapIO("failed to open file for reading", err)
	}
	defer f.Close()

	buf := make([]byte, length)
	n, err := f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, wrapIO("failed to read range", err)
	}
	return buf[:n], nil
}

// List returns the names of all stored files, directories excluded.
func (s *DiskStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, wrapIO("failed to list upload directory", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Stats sums up the stored files for the status endpoint.
func (s *DiskStore) Stats() (Stats, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return Stats{}, wrapIO("failed to list upload directory", err)
	}

	var stats Stats
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		stats.FileCount++
		stats.TotalBytes += info.Size()
	}
	return stats, nil
}
