// Package config resolves runtime settings from flags, an optional env file
// and ROOMBOOK_* environment variables. Flags override the environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by ROOMBOOK_STORAGE_DRIVER.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverS3       = "s3"
)

// Redis configures the redis snapshot store.
type Redis struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// S3 configures the object snapshot store.
type S3 struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
	Key       string

	// Static credentials; empty AccessKeyID uses the default AWS chain.
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// Storage selects and configures the snapshot backend.
type Storage struct {
	Driver       string
	SnapshotPath string
	SQLitePath   string
	PostgresDSN  string
	Redis        Redis
	S3           S3
}

// Log configures the process logger.
type Log struct {
	Level  string
	Format string
}

// Config is the resolved runtime configuration.
type Config struct {
	Storage     Storage
	Log         Log
	MetricsFile string
	ExportPath  string
	EnvFile     string
}

// Load parses args (without the program name) and the environment. Flag
// parse errors and usage go to output.
func Load(args []string, output io.Writer) (*Config, error) {
	set := flag.NewFlagSet("roombook", flag.ContinueOnError)
	set.SetOutput(output)
	envFile := set.String("env", ".env", "optional env file with ROOMBOOK_* settings")
	driver := set.String("driver", "", "storage driver: file|memory|sqlite|postgres|redis|s3")
	snapshotPath := set.String("snapshot", "", "snapshot CSV path for the file driver")
	logLevel := set.String("log-level", "", "log level: debug|info|warn|error")
	metricsFile := set.String("metrics-file", "", "write Prometheus metrics to this file on exit")
	exportPath := set.String("export", "", "export rooms to this .xlsx file and exit")
	if err := set.Parse(args); err != nil {
		return nil, err
	}
	if set.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", set.Args())
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", *envFile, err)
		}
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = *envFile
	set.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "driver":
			cfg.Storage.Driver = *driver
		case "snapshot":
			cfg.Storage.SnapshotPath = *snapshotPath
		case "log-level":
			cfg.Log.Level = *logLevel
		case "metrics-file":
			cfg.MetricsFile = *metricsFile
		case "export":
			cfg.ExportPath = *exportPath
		}
	})
	return cfg, nil
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() (*Config, error) {
	redisDB, err := getenvInt("ROOMBOOK_REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	pathStyle, err := getenvBool("ROOMBOOK_S3_PATH_STYLE", false)
	if err != nil {
		return nil, err
	}
	return &Config{
		Storage: Storage{
			Driver:       getenv("ROOMBOOK_STORAGE_DRIVER", DriverFile),
			SnapshotPath: getenv("ROOMBOOK_SNAPSHOT_PATH", "bookings_final_state.csv"),
			SQLitePath:   getenv("ROOMBOOK_SQLITE_PATH", "roombook.db"),
			PostgresDSN:  getenv("ROOMBOOK_POSTGRES_DSN", "postgres://localhost/roombook?sslmode=disable"),
			Redis: Redis{
				Addr:     getenv("ROOMBOOK_REDIS_ADDR", "localhost:6379"),
				Password: os.Getenv("ROOMBOOK_REDIS_PASSWORD"),
				DB:       redisDB,
				Key:      getenv("ROOMBOOK_REDIS_KEY", "roombook:snapshot"),
			},
			S3: S3{
				Bucket:    os.Getenv("ROOMBOOK_S3_BUCKET"),
				Region:    getenv("ROOMBOOK_S3_REGION", "us-east-1"),
				Endpoint:  os.Getenv("ROOMBOOK_S3_ENDPOINT"),
				PathStyle: pathStyle,
				Key:       getenv("ROOMBOOK_S3_KEY", "snapshots/bookings_final_state.csv"),

				AccessKeyID:     os.Getenv("ROOMBOOK_S3_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("ROOMBOOK_S3_SECRET_ACCESS_KEY"),
				SessionToken:    os.Getenv("ROOMBOOK_S3_SESSION_TOKEN"),
			},
		},
		Log: Log{
			Level:  getenv("ROOMBOOK_LOG_LEVEL", "warn"),
			Format: getenv("ROOMBOOK_LOG_FORMAT", "console"),
		},
		MetricsFile: os.Getenv("ROOMBOOK_METRICS_FILE"),
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}
