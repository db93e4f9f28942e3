package db

import (
	"path/filepath"
	"testing"

	"MoonColony/internal/shared/config"
)

func TestOpen_sqlite文件可读写(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "colony.db")
	gdb, err := Open(config.StorageConfig{Driver: DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("Open err=%v", err)
	}
	var one int
	if err := gdb.Raw("SELECT 1").Scan(&one).Error; err != nil {
		t.Fatalf("query err=%v", err)
	}
	if one != 1 {
		t.Fatalf("期望 1, got=%d", one)
	}
}

func TestOpen_未知驱动报错(t *testing.T) {
	if _, err := Open(config.StorageConfig{Driver: "mongo"}); err == nil {
		t.Fatalf("期望未知驱动返回错误")
	}
}
