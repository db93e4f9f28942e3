package config

import (
	"os"
	"path/filepath"
	"sync"
)

const defaultConfigRelPath = "configs/conf.yml"

var (
	mu   sync.RWMutex
	conf Config
)

// Current 返回当前生效配置的副本；热更新后下一次调用即可拿到新值。
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return conf
}

func set(c Config) {
	mu.Lock()
	conf = c
	mu.Unlock()
}

// Load 加载进程配置，失败直接 panic（只在启动阶段调用）。
//
// 约定：
//  1. cfgName 非空时按该路径加载（相对路径基于当前目录）；
//  2. 否则从当前目录向上查找 configs/conf.yml。
func Load(cfgName string) Config {
	path, err := resolvePath(cfgName)
	if err != nil {
		panic(err)
	}
	c, err := watchFile(path)
	if err != nil {
		panic(err)
	}
	return c
}

func resolvePath(cfgName string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			return cfgName, nil
		}
		return filepath.Join(curDir, cfgName), nil
	}
	return findConfigUpward(curDir)
}

func findConfigUpward(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &NotFoundError{StartDir: startDir}
		}
		dir = parent
	}
}

// NotFoundError 表示向上查找没有找到配置文件。
type NotFoundError struct {
	StartDir string
}

func (e *NotFoundError) Error() string {
	return "config file not exist, searched " + defaultConfigRelPath + " from: " + e.StartDir
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
