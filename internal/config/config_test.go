package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// chdir переходит в dir на время теста: .env ищется в текущем каталоге.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadExpandsEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PILGRIM_DB_PASSWORD", "s3cret")
	path := writeFile(t, ".", "config.yaml", `
http:
  port: "9000"
  shutdown_timeout: 5s
database:
  user: app
  password: ${PILGRIM_DB_PASSWORD}
  dbname: pilgrimage
logging:
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "X-User-ID", cfg.HTTP.UserHeader)
	require.NoError(t, cfg.Verify())
	assert.Equal(t, "host=localhost port=5432 user=app password=s3cret dbname=pilgrimage sslmode=disable", cfg.Database.DSN())
}

func TestLoadFallsBackToEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	writeFile(t, ".", ".env", "DB_NAME=fromdotenv\n")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "pilgrim")
	t.Setenv("API_PORT", "8181")
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := Load("missing.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Unsetenv("DB_NAME") })

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "pilgrim", cfg.Database.User)
	assert.Equal(t, "fromdotenv", cfg.Database.DBName)
	assert.Equal(t, "8181", cfg.HTTP.Port)
	require.NoError(t, cfg.VerifyBot())
}

func TestLoadRejectsBadPort(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_PORT", "five")
	_, err := Load("")
	assert.Error(t, err)
}

func TestVerifyReportsAllProblems(t *testing.T) {
	cfg := &Config{HTTP: HTTPConfig{Port: "x"}, Logging: LoggingConfig{Format: "xml"}}
	err := cfg.Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database user")
	assert.Contains(t, err.Error(), "database name")
	assert.Contains(t, err.Error(), "invalid http port")
	assert.Contains(t, err.Error(), "unknown log format")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := LoggingConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	log.Info("hidden")
	log.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestShippedConfigTakesPortsFromEnv(t *testing.T) {
	shipped, err := filepath.Abs(filepath.Join("..", "..", "configs", "config.yaml"))
	require.NoError(t, err)
	chdir(t, t.TempDir())

	t.Setenv("API_PORT", "9090")
	t.Setenv("DB_PORT", "6543")
	cfg, err := Load(shipped)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, 6543, cfg.Database.Port)

	t.Setenv("API_PORT", "")
	t.Setenv("DB_PORT", "")
	cfg, err = Load(shipped)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
}
