package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/db"
	"github.com/go-sql-driver/mysql"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "attendance.db", filepath.Base(cfg.DBPath))
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("ATTENDANCE_ADDR", ":9090")
	t.Setenv("ATTENDANCE_DB_PATH", "/tmp/att.db")
	t.Setenv("JWT_SECRET", "shh")
	t.Setenv("ATTENDANCE_TOKEN_TTL", "12h")
	t.Setenv("ATTENDANCE_CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("ATTENDANCE_LOG_LEVEL", "DEBUG")
	t.Setenv("ATTENDANCE_LOG_FORMAT", "json")
	t.Setenv("ATTENDANCE_SHUTDOWN_TIMEOUT", "3s")

	cfg := LoadConfig()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/tmp/att.db", cfg.DBPath)
	assert.Equal(t, "/tmp/att.db", cfg.DSN())
	assert.Equal(t, "shh", cfg.JWTSecret)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.NoError(t, cfg.ValidateServe())
}

func TestLoadConfig_InvalidDurationsIgnored(t *testing.T) {
	t.Setenv("ATTENDANCE_TOKEN_TTL", "forever")
	t.Setenv("ATTENDANCE_SHUTDOWN_TIMEOUT", "-5s")

	cfg := LoadConfig()

	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_MySQLParts(t *testing.T) {
	t.Setenv("ATTENDANCE_DB_DRIVER", "mysql")
	t.Setenv("DB_USER", "att")
	t.Setenv("DB_PASS", "pw")
	t.Setenv("DB_HOST", "mysql")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "attendance")

	cfg := LoadConfig()
	d, err := cfg.Dialect()
	require.NoError(t, err)
	assert.Equal(t, db.MySQL, d)
	assert.NoError(t, cfg.Validate())

	parsed, err := mysql.ParseDSN(cfg.DSN())
	require.NoError(t, err)
	assert.Equal(t, "att", parsed.User)
	assert.Equal(t, "mysql:3306", parsed.Addr)
	assert.Equal(t, "attendance", parsed.DBName)
}

func TestLoadConfig_MySQLDSNWins(t *testing.T) {
	t.Setenv("ATTENDANCE_DB_DRIVER", "mysql")
	t.Setenv("ATTENDANCE_DB_DSN", "u:p@tcp(db:3306)/x")
	t.Setenv("DB_NAME", "ignored")

	cfg := LoadConfig()
	assert.Equal(t, "u:p@tcp(db:3306)/x", cfg.DSN())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	err := cfg.ValidateServe()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.DBDriver = "oracle"
	cfg.LogLevel = "loud"
	cfg.LogFormat = "xml"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
	assert.Contains(t, err.Error(), "loud")
	assert.Contains(t, err.Error(), "xml")

	cfg = DefaultConfig()
	cfg.DBDriver = "mysql"
	assert.Error(t, cfg.Validate(), "mysql without connection details")
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ATTENDANCE_ADDR=:7070\n"), 0o600))
	t.Chdir(dir)

	t.Setenv("ATTENDANCE_ADDR", "")
	require.NoError(t, os.Unsetenv("ATTENDANCE_ADDR"))

	cfg := Load()
	assert.Equal(t, ":7070", cfg.Addr)
}

func TestBindFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)

	require.NoError(t, fs.Parse([]string{"--db-driver", "mysql", "--db-dsn", "u@tcp(h:1)/d", "--log-format", "json"}))
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "u@tcp(h:1)/d", cfg.DSN())
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}
