package config

import (
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	AppName                       string `env:"APP_NAME" env-default:"pup-exporter"`
	Port                          int    `env:"PORT" env-default:"8080"`
	LogLevel                      string `env:"LOG_LEVEL" env-default:"info"`
	HttpServerWriteTimeoutSeconds int    `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"60"`
	HttpServerReadTimeoutSeconds  int    `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int    `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`

	// Remote VPS resources
	LastUpdatedURL        string `env:"LAST_UPDATED_URL" env-default:"https://virtualpinballspreadsheet.github.io/vps-db/lastUpdated.json" validate:"required,url"`
	PuplookupURL          string `env:"PUPLOOKUP_URL" env-default:"https://virtualpinballspreadsheet.github.io/vps-db/db/puplookup.csv" validate:"required,url"`
	VpsdbURL              string `env:"VPSDB_URL" env-default:"https://virtualpinballspreadsheet.github.io/vps-db/db/vpsdb.json" validate:"required,url"`
	RequestTimeoutSeconds int    `env:"REQUEST_TIMEOUT_SECONDS" env-default:"60" validate:"min=1"`

	// Local storage
	DataDir        string `env:"DATA_DIR" env-default:"/data" validate:"required"`
	OutputDir      string `env:"OUTPUT_DIR" env-default:"/output" validate:"required"`
	BackupsDir     string `env:"BACKUPS_DIR" env-default:"/backups" validate:"required"`
	OutputFilename string `env:"OUTPUT_FILENAME" env-default:"puplookup.csv" validate:"required"`
	MaxBackups     int    `env:"MAX_BACKUPS" env-default:"10"`

	// Scheduling
	SyncIntervalSeconds int `env:"SYNC_INTERVAL_SECONDS" env-default:"3600" validate:"min=1"`

	// Run history (SQLite)
	DatabasePath                string `env:"DB_PATH" env-default:"/data/exporter.db"`
	DatabaseMigrationFolderPath string `env:"DB_MIGRATION_FOLDER_PATH" env-default:"db/sqlite"`

	// Tracing
	TracingEnabled  bool   `env:"TRACING_ENABLED" env-default:"false"`
	TracingEndpoint string `env:"TRACING_OTLP_ENDPOINT" env-default:"localhost:4318"`
	TracingInsecure bool   `env:"TRACING_OTLP_INSECURE" env-default:"true"`

	ShutdownTimeoutSeconds int `env:"SHUTDOWN_TIMEOUT_SECONDS" env-default:"10" validate:"min=1"`
}

// Load binds environment variables into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.SyncIntervalSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
