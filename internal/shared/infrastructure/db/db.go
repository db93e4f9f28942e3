package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"MoonColony/internal/shared/config"
	"MoonColony/internal/shared/logs"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Open 按配置打开本地存储：默认 sqlite 单文件，可切到 mysql。
func Open(cfg config.StorageConfig) (*gorm.DB, error) {
	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	gcfg := &gorm.Config{
		Logger: logs.NewGormLogger(logger.Warn, slow),
	}

	switch cfg.Driver {
	case "", DriverSQLite:
		return openSQLite(cfg.Path, gcfg)
	case DriverMySQL:
		return openMySQL(cfg.MySQL, gcfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

func openSQLite(path string, gcfg *gorm.Config) (*gorm.DB, error) {
	if path == "" {
		path = "colony.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	gdb, err := gorm.Open(sqlite.Open(path), gcfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	// sqlite 单写者，连接数放大只会带来 database is locked。
	sqlDB.SetMaxOpenConns(1)

	logs.Info("open sqlite success", zap.String("path", path))
	return gdb, nil
}

func openMySQL(cfg config.MySQLConfig, gcfg *gorm.Config) (*gorm.DB, error) {
	// username:password@protocol(address)/dbname?charset=utf8mb4&parseTime=True&loc=Local
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)
	gdb, err := gorm.Open(mysql.Open(dsn), gcfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(max(1, cfg.MaxConn))
	sqlDB.SetMaxIdleConns(max(0, cfg.MaxIdle))

	logs.Info("open mysql success",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("db", cfg.DBName),
		zap.String("user", cfg.User),
	)
	return gdb, nil
}
