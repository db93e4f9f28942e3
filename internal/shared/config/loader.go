package config

import (
	"fmt"
	"log"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const envPrefix = "MOON"

// LoadFile 读取并解码一个配置文件，不注册热更新，也不修改全局配置。
func LoadFile(path string) (Config, error) {
	v, err := newViper(path)
	if err != nil {
		return Config{}, err
	}
	return decode(v)
}

func watchFile(path string) (Config, error) {
	v, err := newViper(path)
	if err != nil {
		return Config{}, err
	}
	c, err := decode(v)
	if err != nil {
		return Config{}, err
	}
	set(c)

	v.OnConfigChange(func(e fsnotify.Event) {
		next, err := decode(v)
		if err != nil {
			// 热更新失败保留旧配置，进程继续跑。
			log.Printf("config reload failed, file=%s err=%v", e.Name, err)
			return
		}
		set(next)
		log.Printf("config reloaded, file=%s", e.Name)
	})
	v.WatchConfig()
	return c, nil
}

func newViper(path string) (*viper.Viper, error) {
	if !fileExist(path) {
		return nil, fmt.Errorf("config file not exist, configPath=%v", path)
	}
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	// MOON_API_BASE_URL 覆盖 api.base_url，以此类推。
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return v, nil
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		stringToIntSliceHookFunc(","),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&c, hook); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// stringToIntSliceHookFunc 把 "0, 2,4" 这样的逗号列表解成 []int，环境变量只能这样写。
func stringToIntSliceHookFunc(sep string) mapstructure.DecodeHookFuncType {
	intSlice := reflect.TypeOf([]int(nil))
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != intSlice {
			return data, nil
		}
		raw := strings.TrimSpace(reflect.ValueOf(data).String())
		if raw == "" {
			return []int{}, nil
		}
		parts := strings.Split(raw, sep)
		out := make([]int, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("parse int list %q: %w", raw, err)
			}
			out = append(out, n)
		}
		return out, nil
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.default_zone", 1)
	v.SetDefault("map.grid_size", 100)
	v.SetDefault("map.cell_size", 1.0)
	v.SetDefault("map.zones", []int{0, 1, 2, 3, 4, 5})
	v.SetDefault("map.snapshot_dir", "snapshots")
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "colony.db")
	v.SetDefault("storage.slow_threshold", 200*time.Millisecond)
	v.SetDefault("stub.host", "127.0.0.1")
	v.SetDefault("stub.port", 8080)
	v.SetDefault("log.level", "info")
}
