package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps the document as a JSON file next to its projection script.
type FileBackend struct {
	DataPath   string
	ScriptPath string
}

func NewFileBackend(dataPath, scriptPath string) *FileBackend {
	return &FileBackend{DataPath: dataPath, ScriptPath: scriptPath}
}

func (b *FileBackend) Read(ctx context.Context) ([]byte, error) {
	body, err := os.ReadFile(b.DataPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return body, err
}

func (b *FileBackend) Write(ctx context.Context, document, script []byte) error {
	return WriteFilesAtomic(map[string][]byte{
		b.DataPath:   document,
		b.ScriptPath: script,
	})
}

// WriteFilesAtomic stages every file in a temp file beside its target and
// renames them into place only once all of them were written.
func WriteFilesAtomic(files map[string][]byte) error {
	staged := make(map[string]string, len(files))
	defer func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}()

	for path, data := range files {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}

		tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
		if err != nil {
			return fmt.Errorf("failed to stage %s: %w", path, err)
		}
		staged[path] = tmp.Name()

		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to stage %s: %w", path, err)
		}
		if err := tmp.Sync(); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to sync %s: %w", path, err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("failed to stage %s: %w", path, err)
		}
		if err := os.Chmod(tmp.Name(), 0o644); err != nil {
			return fmt.Errorf("failed to stage %s: %w", path, err)
		}
	}

	for path, tmp := range staged {
		if err := os.Rename(tmp, path); err != nil {
			return fmt.Errorf("failed to replace %s: %w", path, err)
		}
		delete(staged, path)
	}
	return nil
}
