package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNoDatabaseConfig means neither DATABASE_URL nor the DB_* variables
// yield a usable connection string.
var ErrNoDatabaseConfig = errors.New("no database configuration")

// Config is the application settings.
type Config struct {
	Port     string // listen port (8000)
	LogLevel string // debug/info/warn/error

	CORSAllowOrigins []string

	DatabaseURL       string
	DBMaxIdleConns    int
	DBMaxOpenConns    int
	DBConnMaxLifetime time.Duration
}

// Load reads the process environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads settings through getenv.
func LoadFrom(getenv func(string) string) (Config, error) {
	dsn, err := ResolveDSN(getenv)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:        strings.TrimPrefix(valueOr(getenv, "PORT", "8000"), ":"),
		LogLevel:    strings.ToLower(valueOr(getenv, "LOG_LEVEL", "info")),
		DatabaseURL: dsn,
	}

	for _, o := range strings.Split(valueOr(getenv, "CORS_ALLOW_ORIGINS", "*"), ",") {
		if s := strings.TrimSpace(o); s != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, s)
		}
	}

	if cfg.DBMaxIdleConns, err = atoiOr(getenv, "DB_MAX_IDLE_CONNS", 10); err != nil {
		return Config{}, err
	}
	if cfg.DBMaxOpenConns, err = atoiOr(getenv, "DB_MAX_OPEN_CONNS", 30); err != nil {
		return Config{}, err
	}

	lifetime := valueOr(getenv, "DB_CONN_MAX_LIFETIME", "1h")
	if cfg.DBConnMaxLifetime, err = time.ParseDuration(lifetime); err != nil {
		return Config{}, fmt.Errorf("DB_CONN_MAX_LIFETIME must be a duration: %w", err)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	return cfg, nil
}

// ResolveDSN picks the database connection string. Precedence:
//  1. DATABASE_URL
//  2. DB_HOST, DB_NAME, DB_USER, DB_PASSWORD (DB_PORT defaults to 5432,
//     DB_SSLMODE to disable)
//
// Anything else is ErrNoDatabaseConfig.
func ResolveDSN(getenv func(string) string) (string, error) {
	dsn := strings.TrimSpace(getenv("DATABASE_URL"))

	if dsn == "" {
		var missing []string
		required := func(key string) string {
			v := strings.TrimSpace(getenv(key))
			if v == "" {
				missing = append(missing, key)
			}
			return v
		}

		host := required("DB_HOST")
		name := required("DB_NAME")
		user := required("DB_USER")
		pass := required("DB_PASSWORD")
		if len(missing) > 0 {
			return "", fmt.Errorf("%w: set DATABASE_URL or %s", ErrNoDatabaseConfig, strings.Join(missing, ", "))
		}

		u := url.URL{
			Scheme:   "postgresql",
			User:     url.UserPassword(user, pass),
			Host:     net.JoinHostPort(host, valueOr(getenv, "DB_PORT", "5432")),
			Path:     "/" + name,
			RawQuery: url.Values{"sslmode": {valueOr(getenv, "DB_SSLMODE", "disable")}}.Encode(),
		}
		dsn = u.String()
	}

	if _, err := pgconn.ParseConfig(dsn); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDatabaseConfig, err)
	}
	return dsn, nil
}

// RedactedDSN hides the password for logging.
func (c Config) RedactedDSN() string {
	u, err := url.Parse(c.DatabaseURL)
	if err != nil || u.Scheme == "" {
		return "<redacted>"
	}
	return u.Redacted()
}

// Addr is the listen address for echo.
func (c Config) Addr() string {
	return ":" + c.Port
}

func valueOr(getenv func(string) string, key, def string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}

func atoiOr(getenv func(string) string, key string, def int) (int, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
