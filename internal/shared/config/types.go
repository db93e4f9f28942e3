package config

import "time"

type Config struct {
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Map     MapConfig     `yaml:"map" mapstructure:"map"`
	Report  ReportConfig  `yaml:"report" mapstructure:"report"`
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Stub    StubConfig    `yaml:"stub" mapstructure:"stub"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

type APIConfig struct {
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	DefaultZone int           `yaml:"default_zone" mapstructure:"default_zone"`
}

type MapConfig struct {
	GridSize int     `yaml:"grid_size" mapstructure:"grid_size"`
	CellSize float64 `yaml:"cell_size" mapstructure:"cell_size"`
	// Zones 是允许加载地形的分区 id 列表，支持 "0,1,2" 写法。
	Zones []int `yaml:"zones" mapstructure:"zones"`
	// SnapshotDir 存放 zstd 压缩的地形快照，后端不可达时从这里读。
	SnapshotDir string `yaml:"snapshot_dir" mapstructure:"snapshot_dir"`
}

type ReportConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	LogoPath  string `yaml:"logo_path" mapstructure:"logo_path"`
	// FontPath 为空时使用内置 Helvetica（仅 cp1252 字符集）。
	FontPath string `yaml:"font_path" mapstructure:"font_path"`
}

type StorageConfig struct {
	Driver        string        `yaml:"driver" mapstructure:"driver"` // sqlite | mysql
	Path          string        `yaml:"path" mapstructure:"path"`
	MySQL         MySQLConfig   `yaml:"mysql" mapstructure:"mysql"`
	SlowThreshold time.Duration `yaml:"slow_threshold" mapstructure:"slow_threshold"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type StubConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"`
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}
