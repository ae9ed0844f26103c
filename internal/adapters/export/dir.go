package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/creachadair/atomicfile"

	"github.com/iandelaney/youtran/internal/ports"
)

// DirSink saves downloads into a directory
type DirSink struct {
	baseDir string
}

// NewDirSink creates a sink writing into baseDir
func NewDirSink(baseDir string) *DirSink {
	if baseDir == "" {
		baseDir = "."
	}
	return &DirSink{baseDir: baseDir}
}

// Dir returns the directory files are written to
func (s *DirSink) Dir() string {
	return s.baseDir
}

// Save writes data to name inside the sink directory, replacing any existing
// file. Only the base of name is used.
func (s *DirSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base := filepath.Base(filepath.Clean(name))
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name: %q", name)
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", s.baseDir, err)
	}

	path := filepath.Join(s.baseDir, base)
	if err := WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile replaces path with data in one step. Readers see either the old
// contents or the new ones.
func WriteFile(path string, data []byte) error {
	f, err := atomicfile.New(path, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Cancel()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

var _ ports.FileSink = (*DirSink)(nil)
