package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeTestConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeTestConfigFile(t, `
is_production: true
log_level: debug
log_file: /tmp/lib.log
notifier: sms
demo:
  page_size: 3
  book_query: Go
  user_query: Al
`)
	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "/tmp/lib.log", cfg.LogFile)
	assert.Equal(t, "sms", cfg.Notifier)
	assert.Equal(t, DemoConfig{PageSize: 3, BookQuery: "Go", UserQuery: "Al"}, cfg.Demo)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoadConfigEnvs(t *testing.T) {
	cfg := &Config{Notifier: "email", Demo: DemoConfig{PageSize: 3, BookQuery: "Go"}}
	t.Setenv("LIBC_NOTIFIER", "sms")
	t.Setenv("LIBC_DEMO_PAGE_SIZE", "7")
	t.Setenv("LIBC_LOG_LEVEL", "warn")

	require.NoError(t, LoadConfigEnvs(EnvPrefix, cfg))
	assert.Equal(t, "sms", cfg.Notifier)
	assert.Equal(t, 7, cfg.Demo.PageSize)
	assert.Equal(t, "Go", cfg.Demo.BookQuery, "unset variables keep file values")
	assert.Equal(t, zapcore.WarnLevel, cfg.LogLevel)
}

func TestInitConfig(t *testing.T) {
	t.Run("should apply defaults and build values", func(t *testing.T) {
		cfg := &Config{GitTag: "v0.0.1"}
		require.NoError(t, InitConfig(cfg, "abc123", "", "2023-07-02"))
		assert.Equal(t, "abc123", cfg.GitCommit)
		assert.Equal(t, "v0.0.1", cfg.GitTag)
		assert.Equal(t, "2023-07-02", cfg.BuildTime)
		assert.Equal(t, DefaultPageSize, cfg.Demo.PageSize)
		assert.Equal(t, DefaultLogFile, cfg.LogFile)
	})

	t.Run("should reject negative page size", func(t *testing.T) {
		cfg := &Config{Demo: DemoConfig{PageSize: -1}}
		assert.Error(t, InitConfig(cfg, "", "", ""))
	})

	t.Run("should reject unknown notifier", func(t *testing.T) {
		cfg := &Config{Notifier: "fax"}
		assert.ErrorIs(t, InitConfig(cfg, "", "", ""), ErrUnknownNotifier)
	})
}

func TestLoadAndInitConfigs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("notifier: email\ndemo:\n  page_size: 4\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.env"), []byte("LIBC_DEMO_BOOK_QUERY=Action\n"), 0o600))
	t.Setenv("LIBC_DEMO_BOOK_QUERY", "")
	require.NoError(t, os.Unsetenv("LIBC_DEMO_BOOK_QUERY"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadAndInitConfigs("commit", "tag", "built")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Demo.PageSize)
	assert.Equal(t, "Action", cfg.Demo.BookQuery)
	assert.Equal(t, "commit", cfg.GitCommit)

	require.NoError(t, os.Remove(filepath.Join(dir, "config.env")))
	_, err = LoadAndInitConfigs("", "", "")
	assert.NoError(t, err, "env file is optional")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("notifier: fax\n"), 0o600))
	_, err = LoadAndInitConfigs("", "", "")
	assert.ErrorIs(t, err, ErrUnknownNotifier)

	require.NoError(t, os.Remove(filepath.Join(dir, "config.yml")))
	_, err = LoadAndInitConfigs("", "", "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
