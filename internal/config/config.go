package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/auth"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/db"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config holds all runtime settings of the attendance service.
type Config struct {
	Addr            string
	DBDriver        string
	DBPath          string
	DBDSN           string
	MySQL           db.MySQLConfig
	JWTSecret       string
	TokenTTL        time.Duration
	CORSOrigins     []string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults. There is no
// default JWT secret.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		DBDriver:        string(db.SQLite),
		DBPath:          defaultDBPath(),
		TokenTTL:        auth.DefaultTokenTTL,
		CORSOrigins:     []string{"*"},
		LogLevel:        "info",
		LogFormat:       "text",
		ShutdownTimeout: 10 * time.Second,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".attendance", "attendance.db")
	}
	return filepath.Join(home, ".attendance", "attendance.db")
}

// Load reads an optional .env file from the working directory, then the
// environment. Variables already set in the environment win over .env.
func Load() Config {
	_ = godotenv.Load()
	return LoadConfig()
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for any unset or unparsable values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("ATTENDANCE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("ATTENDANCE_DB_DRIVER"); v != "" {
		cfg.DBDriver = v
	}
	if v := os.Getenv("ATTENDANCE_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	cfg.DBDSN = os.Getenv("ATTENDANCE_DB_DSN")
	cfg.MySQL = db.MySQLConfig{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASS"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		Name:     os.Getenv("DB_NAME"),
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if v := os.Getenv("ATTENDANCE_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TokenTTL = d
		}
	}
	if v := os.Getenv("ATTENDANCE_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("ATTENDANCE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("ATTENDANCE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("ATTENDANCE_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ShutdownTimeout = d
		}
	}

	return cfg
}

// BindFlags registers command-line overrides for the settings operators
// change most often.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.DBDriver, "db-driver", c.DBDriver, "database driver: sqlite or mysql")
	fs.StringVar(&c.DBPath, "db-path", c.DBPath, "SQLite database file")
	fs.StringVar(&c.DBDSN, "db-dsn", c.DBDSN, "MySQL DSN (overrides DB_* parts)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text or json")
}

// Dialect parses the configured database driver.
func (c Config) Dialect() (db.Dialect, error) {
	return db.ParseDialect(c.DBDriver)
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	d, _ := c.Dialect()
	if d == db.MySQL {
		if c.DBDSN != "" {
			return c.DBDSN
		}
		return c.MySQL.DSN()
	}
	return c.DBPath
}

// Validate reports every setting that prevents the store from opening.
func (c Config) Validate() error {
	var errs []error
	d, err := c.Dialect()
	if err != nil {
		errs = append(errs, err)
	}
	switch d {
	case db.SQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("ATTENDANCE_DB_PATH is empty"))
		}
	case db.MySQL:
		if c.DBDSN == "" && (c.MySQL.User == "" || c.MySQL.Name == "") {
			errs = append(errs, errors.New("mysql needs ATTENDANCE_DB_DSN or DB_USER and DB_NAME"))
		}
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat))
	}
	return errors.Join(errs...)
}

// ValidateServe adds the settings only the HTTP server needs.
func (c Config) ValidateServe() error {
	err := c.Validate()
	if c.JWTSecret == "" {
		err = errors.Join(err, errors.New("JWT_SECRET is required"))
	}
	if c.Addr == "" {
		err = errors.Join(err, errors.New("ATTENDANCE_ADDR is empty"))
	}
	return err
}

// NewLogger builds the process logger from the configured level and format.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
