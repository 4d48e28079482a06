package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeErrorMessage(t *testing.T) {
	fallback := "操作失败"
	testErr := errors.New("internal database error")

	// nil err 返回 fallback
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// release 模式返回 fallback，不暴露错误详情
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	defer func() { GlobalConfig = nil }()
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))

	// debug 模式返回 err.Error()
	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))

	// GlobalConfig 为 nil 时返回 err.Error()（视为开发环境）
	GlobalConfig = nil
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	defer func() { GlobalConfig = nil }()

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "Europe/Istanbul", cfg.Tracker.Timezone)
	assert.Equal(t, 5, cfg.Tracker.SummaryCacheMinutes)
	// ExpireHours 推导出 ExpireTime
	assert.Equal(t, time.Duration(cfg.JWT.ExpireHours)*time.Hour, cfg.JWT.ExpireTime)
}

func TestLoadConfig_ExternalOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: ":9090"
tracker:
  timezone: "Asia/Shanghai"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	defer func() { GlobalConfig = nil }()

	// 外部文件覆盖指定键，其余沿用内置默认
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "Asia/Shanghai", cfg.Tracker.Timezone)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLocation(t *testing.T) {
	cfg := &Config{Tracker: TrackerConfig{Timezone: "Europe/Istanbul"}}
	loc := cfg.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "Europe/Istanbul", loc.String())

	// 无效时区回落到本地时区而不是 panic
	bad := &Config{Tracker: TrackerConfig{Timezone: "Mars/Olympus"}}
	assert.Equal(t, time.Local, bad.Location())
}
