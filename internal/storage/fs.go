package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// FSStore пишет объекты в локальный каталог. Это бекенд по умолчанию:
// файлы лежат под baseDir, наружу отдаются под publicPrefix.
type FSStore struct {
	baseDir      string
	publicPrefix string
}

// NewFSStore создаёт файловый бекенд и каталог под него.
func NewFSStore(baseDir, publicPrefix string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{baseDir: baseDir, publicPrefix: publicPrefix}, nil
}

func (s *FSStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return s.publicPrefix + "/" + key, nil
}
