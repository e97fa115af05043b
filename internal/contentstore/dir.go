package contentstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Dir writes objects as files below a root directory.
type Dir struct {
	root string
}

func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create content dir: %w", err)
	}

	return &Dir{root: root}, nil
}

func (d *Dir) PutObject(_ context.Context, key string, body []byte, _ string) error {
	if filepath.Base(key) != key {
		return fmt.Errorf("invalid object key %q", key)
	}

	return os.WriteFile(filepath.Join(d.root, key), body, 0o644)
}
