package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/trackit/internal/filex"
)

// Local stores blobs as files under a base directory. Keys are relative
// paths; path traversal outside the base directory is rejected.
type Local struct {
	baseDir string
}

func NewLocal(baseDir string) *Local {
	return &Local{baseDir: baseDir}
}

// NewKey names uploads resume_<job>_v<version>_<timestamp><ext>, keeping the
// original extension so the file opens with the right application.
func (l *Local) NewKey(jobID int64, version int, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("resume_%d_v%d_%s%s", jobID, version, time.Now().Format("20060102_150405"), ext)
}

func (l *Local) resolve(key string) (string, error) {
	path := filepath.Join(l.baseDir, filepath.FromSlash(key))
	base := filepath.Clean(l.baseDir)
	if path != base && !strings.HasPrefix(path, base+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return path, nil
}

func (l *Local) Save(_ context.Context, key string, data []byte) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}
	return filex.WriteFile(path, data)
}

func (l *Local) Open(_ context.Context, key string) ([]byte, error) {
	path, err := l.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (l *Local) Delete(_ context.Context, key string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}
	return filex.RemoveIfExists(path)
}
