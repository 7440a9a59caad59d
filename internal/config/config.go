package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	ServerPort     string
	AppEnv         string
	LogLevel       string
	StoreDriver    string
	TodosFile      string
	WriteLock      bool
	MetricsEnabled bool
	DB             DBConfig
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	switch c.StoreDriver {
	case StoreDriverFile:
		if c.TodosFile == "" {
			return fmt.Errorf("TODOS_FILE is required when STORE_DRIVER is %s", StoreDriverFile)
		}
	case StoreDriverPostgres:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: must be one of file, postgres", c.StoreDriver)
	}
	return nil
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

func Load() Config {
	return Config{
		ServerPort:     envOrDefault("SERVER_PORT", "8080"),
		AppEnv:         envOrDefault("APP_ENV", "local"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		StoreDriver:    strings.ToLower(envOrDefault("STORE_DRIVER", StoreDriverFile)),
		TodosFile:      envOrDefault("TODOS_FILE", "todos.json"),
		WriteLock:      envBool("STORE_WRITE_LOCK", true),
		MetricsEnabled: envBool("METRICS_ENABLED", true),
		DB: DBConfig{
			Host:     envOrDefault("DB_HOST", "localhost"),
			Port:     envOrDefault("DB_PORT", "5432"),
			User:     envOrDefault("DB_USER", "todo"),
			Password: envOrDefault("DB_PASSWORD", "todo"),
			Name:     envOrDefault("DB_NAME", "todo"),
			SSLMode:  envOrDefault("DB_SSLMODE", "disable"),
		},
	}
}

// LoadWithFlags loads the environment config and lets command-line flags
// override it. Flags that are not given keep the environment value.
func LoadWithFlags(args []string) (Config, error) {
	cfg := Load()

	fs := pflag.NewFlagSet("todo-api", pflag.ContinueOnError)
	fs.StringVarP(&cfg.ServerPort, "port", "p", cfg.ServerPort, "HTTP listen port")
	fs.StringVar(&cfg.AppEnv, "env", cfg.AppEnv, "deployment environment (local, alpha, beta, prod)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "todo store driver (file, postgres)")
	fs.StringVarP(&cfg.TodosFile, "data-file", "f", cfg.TodosFile, "path of the todos JSON file")
	fs.BoolVar(&cfg.WriteLock, "write-lock", cfg.WriteLock, "serialize writes to the todo store")
	fs.BoolVar(&cfg.MetricsEnabled, "metrics", cfg.MetricsEnabled, "expose Prometheus metrics on /metrics")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("failed to parse flags: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(cfg.StoreDriver)

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
