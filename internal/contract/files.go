package contract

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// OSFileReader reads files from a checked-out repository on disk.
type OSFileReader struct {
	Root string
}

var _ FileReader = &OSFileReader{} // Compile-time check

// NewOSFileReader creates a reader rooted at the given repository directory.
func NewOSFileReader(root string) *OSFileReader {
	return &OSFileReader{Root: root}
}

// ReadFile implements the FileReader interface. Missing, unreadable and
// oversized files are skipped silently; paths escaping Root are rejected.
func (r *OSFileReader) ReadFile(rel string, maxBytes int64) ([]byte, bool) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return nil, false
	}
	full := filepath.Join(r.Root, clean)

	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		Logger().Debugw("Skipping oversized file", "path", rel, "size", info.Size(), "limit", maxBytes)
		return nil, false
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, false
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	if maxBytes > 0 {
		reader = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil || (maxBytes > 0 && int64(len(data)) > maxBytes) {
		return nil, false
	}
	return data, true
}

// MapFileReader serves file contents from memory. Useful for tests and for
// evaluations where contents are supplied by the caller.
type MapFileReader map[string]string

var _ FileReader = MapFileReader{} // Compile-time check

// ReadFile implements the FileReader interface.
func (m MapFileReader) ReadFile(rel string, maxBytes int64) ([]byte, bool) {
	content, ok := m[rel]
	if !ok {
		return nil, false
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		return nil, false
	}
	return []byte(content), true
}
