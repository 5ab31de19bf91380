package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Postgres PostgresConfig
	Lock     LockConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	AppEnv   string
	GRPCPort string
	// Locale is the language failure reasons fall back to.
	Locale string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type DatabaseConfig struct {
	Driver        string
	Path          string
	BusyTimeoutMS int
	// Isolation applies to postgres; sqlite write transactions are always serializable.
	Isolation       string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
	AutoMigrate     bool
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type LockConfig struct {
	Backend string
	Key     string
	WaitMS  int
	TTLMS   int
	RetryMS int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

const (
	LockBackendLocal = "local"
	LockBackendRedis = "redis"
)

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			GRPCPort: getEnv("GRPC_PORT", ":8090"),
			Locale:   getEnv("APP_LOCALE", "en"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Path:            getEnv("DB_PATH", "pos.db"),
			BusyTimeoutMS:   getEnvInt("DB_BUSY_TIMEOUT_MS", 5000),
			Isolation:       getEnv("DB_ISOLATION", "serializable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 4),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvInt("DB_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("DB_CONN_MAX_IDLE_TIME", 60),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5433"),
			User:     getEnv("POSTGRES_USER", "omnipos"),
			Password: getEnv("POSTGRES_PASSWORD", "omnipos"),
			DBName:   getEnv("POSTGRES_DB", "omnipos_pos"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Lock: LockConfig{
			Backend: getEnv("LOCK_BACKEND", LockBackendLocal),
			Key:     getEnv("LOCK_KEY", "lock:pos:commit"),
			WaitMS:  getEnvInt("LOCK_WAIT_MS", 5000),
			TTLMS:   getEnvInt("LOCK_TTL_MS", 30000),
			RetryMS: getEnvInt("LOCK_RETRY_MS", 50),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
	}
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		return fmt.Errorf("DB_PATH is required for the sqlite driver")
	}
	if c.Database.BusyTimeoutMS <= 0 {
		return fmt.Errorf("DB_BUSY_TIMEOUT_MS must be positive, got %d", c.Database.BusyTimeoutMS)
	}

	switch c.Lock.Backend {
	case LockBackendLocal, LockBackendRedis:
	default:
		return fmt.Errorf("LOCK_BACKEND must be local or redis, got %q", c.Lock.Backend)
	}
	if c.Lock.WaitMS <= 0 {
		return fmt.Errorf("LOCK_WAIT_MS must be positive, got %d", c.Lock.WaitMS)
	}
	if c.Lock.Backend == LockBackendRedis && c.Lock.TTLMS <= c.Lock.WaitMS {
		return fmt.Errorf("LOCK_TTL_MS (%d) must exceed LOCK_WAIT_MS (%d)", c.Lock.TTLMS, c.Lock.WaitMS)
	}
	return nil
}

func (c DatabaseConfig) BusyTimeout() time.Duration {
	return time.Duration(c.BusyTimeoutMS) * time.Millisecond
}

func (c LockConfig) Wait() time.Duration  { return time.Duration(c.WaitMS) * time.Millisecond }
func (c LockConfig) TTL() time.Duration   { return time.Duration(c.TTLMS) * time.Millisecond }
func (c LockConfig) Retry() time.Duration { return time.Duration(c.RetryMS) * time.Millisecond }

func (c PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
