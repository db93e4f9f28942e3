// Package snapshot 把分区地形存成 zstd 压缩的 JSON 文件。
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"MoonColony/internal/world/domain"
	"MoonColony/modules/kit/errx"
)

const fileExt = ".json.zst"

// Repository 在 dir 下每个分区存一个文件：zone-<id>.json.zst。
type Repository struct {
	dir string
}

func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// Path 返回分区快照的文件路径。
func (r *Repository) Path(zoneID int) string {
	return filepath.Join(r.dir, fmt.Sprintf("zone-%d%s", zoneID, fileExt))
}

func (r *Repository) Save(ctx context.Context, t domain.ZoneTerrain) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return errx.ErrInternal.WithData("zone", t.ZoneID).WithCause(err)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return errx.ErrInternal.WithCause(err)
	}
	packed := enc.EncodeAll(raw, nil)
	_ = enc.Close()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return errx.ErrUnavailable.WithData("dir", r.dir).WithCause(err)
	}
	tmp, err := os.CreateTemp(r.dir, ".zone-*"+fileExt)
	if err != nil {
		return errx.ErrUnavailable.WithData("dir", r.dir).WithCause(err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(packed); err != nil {
		_ = tmp.Close()
		return errx.ErrUnavailable.WithData("file", tmp.Name()).WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return errx.ErrUnavailable.WithData("file", tmp.Name()).WithCause(err)
	}
	if err := os.Rename(tmp.Name(), r.Path(t.ZoneID)); err != nil {
		return errx.ErrUnavailable.WithData("file", r.Path(t.ZoneID)).WithCause(err)
	}
	return nil
}

func (r *Repository) Load(ctx context.Context, zoneID int) (domain.ZoneTerrain, error) {
	if err := ctx.Err(); err != nil {
		return domain.ZoneTerrain{}, err
	}
	path := r.Path(zoneID)
	packed, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.ZoneTerrain{}, domain.ErrSnapshotNotFound.WithData("zone", zoneID)
	}
	if err != nil {
		return domain.ZoneTerrain{}, errx.ErrUnavailable.WithData("file", path).WithCause(err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return domain.ZoneTerrain{}, errx.ErrInternal.WithCause(err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(packed, nil)
	if err != nil {
		return domain.ZoneTerrain{}, errx.ErrBadResponse.WithData("file", path).WithCause(err)
	}
	var out domain.ZoneTerrain
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.ZoneTerrain{}, errx.ErrBadResponse.WithData("file", path).WithCause(err)
	}
	return out, nil
}
