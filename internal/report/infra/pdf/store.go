package pdf

import (
	"context"
	"os"
	"path/filepath"

	"MoonColony/modules/kit/errx"
)

// FileStore 把文件写到 dir 下：先写临时文件再 rename，失败时不留半个文件。
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir}
}

func (s *FileStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errx.ErrUnavailable.WithData("dir", s.dir).WithCause(err)
	}
	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return "", errx.ErrUnavailable.WithData("dir", s.dir).WithCause(err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", errx.ErrUnavailable.WithData("file", tmpName).WithCause(err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", errx.ErrUnavailable.WithData("file", tmpName).WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", errx.ErrUnavailable.WithData("file", tmpName).WithCause(err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return "", errx.ErrUnavailable.WithData("file", path).WithCause(err)
	}
	return path, nil
}
