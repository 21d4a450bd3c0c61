package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// 环境变量名
const (
	EnvVariant    = "TILTORBS_VARIANT"
	EnvConfigPath = "TILTORBS_CONFIG"
	EnvVerbose    = "TILTORBS_VERBOSE"
)

// LaunchOptions 启动参数（命令行 flag 与环境变量合并后的结果）
type LaunchOptions struct {
	Variant    string
	ConfigPath string
	Verbose    bool
}

// ReadDotEnv 读取 .env 文件，文件不存在时返回空表
func ReadDotEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	log.Printf("[Config] 加载环境文件: %s (%d entries)", path, len(env))
	return env, nil
}

// EnvLookup 进程环境变量优先，其次是 .env 文件中的值
func EnvLookup(fileEnv map[string]string) func(string) string {
	return func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileEnv[key]
	}
}

// ApplyEnv 用环境变量补齐未通过命令行指定的字段
// 命令行已经给出的值不会被覆盖
func (o *LaunchOptions) ApplyEnv(get func(string) string) {
	if o.Variant == "" {
		o.Variant = get(EnvVariant)
	}
	if o.ConfigPath == "" {
		o.ConfigPath = get(EnvConfigPath)
	}
	if !o.Verbose {
		if v, err := strconv.ParseBool(get(EnvVerbose)); err == nil {
			o.Verbose = v
		}
	}
}
