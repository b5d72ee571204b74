package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Supported values for database.driver.
const (
	DriverPGX      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLX     = "sqlx"
	DriverSQLite   = "sqlite"
)

// Supported values for log.format.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

const (
	envPrefix = "VIDEOSTORE"

	keyHTTPAddr            = "http.addr"
	keyDatabaseDriver      = "database.driver"
	keyDatabaseDSN         = "database.dsn"
	keyDatabaseTablePrefix = "database.table_prefix"
	keyDatabaseMaxConns    = "database.max_conns"
	keyRentalLoanPeriod    = "rental.loan_period"
	keyLogLevel            = "log.level"
	keyLogFormat           = "log.format"
	keyOTelEnabled         = "otel.enabled"

	defaultHTTPAddr         = ":8080"
	defaultDatabaseDriver   = DriverSQLite
	defaultDatabaseDSN      = "videostore.db"
	defaultDatabaseMaxConns = 10
	defaultLoanPeriod       = 7 * 24 * time.Hour
	defaultLogLevel         = "info"
	defaultLogFormat        = LogFormatJSON
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete runtime configuration of the video store.
type Config struct {
	HTTP     HTTP
	Database Database
	Rental   Rental
	Log      Log
	OTel     OTel
}

type HTTP struct {
	Addr string
}

type Database struct {
	Driver      string
	DSN         string
	TablePrefix string
	MaxConns    int
}

type Rental struct {
	LoanPeriod time.Duration
}

type Log struct {
	Level  string
	Format string
}

type OTel struct {
	Enabled bool
}

// Load resolves the configuration from args (without the program name), the environment and an optional config file.
func Load(args []string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	flags := pflag.NewFlagSet("videostore", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to a YAML config file")
	flags.String("http-addr", defaultHTTPAddr, "HTTP listen address")
	flags.String("db-driver", defaultDatabaseDriver, "database driver: pgx, postgres, sqlx or sqlite")
	flags.String("db-dsn", defaultDatabaseDSN, "database DSN, or the file path for sqlite")
	flags.String("db-table-prefix", "", "optional prefix for all table names")
	flags.Int("db-max-conns", defaultDatabaseMaxConns, "maximum open database connections")
	flags.Duration("loan-period", defaultLoanPeriod, "rental loan period")
	flags.String("log-level", defaultLogLevel, "log level: debug, info, warn or error")
	flags.String("log-format", defaultLogFormat, "log format: json or text")
	flags.Bool("otel", false, "export metrics and logs through OpenTelemetry")

	if err := flags.Parse(args); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	flagKeys := map[string]string{
		"http-addr":       keyHTTPAddr,
		"db-driver":       keyDatabaseDriver,
		"db-dsn":          keyDatabaseDSN,
		"db-table-prefix": keyDatabaseTablePrefix,
		"db-max-conns":    keyDatabaseMaxConns,
		"loan-period":     keyRentalLoanPeriod,
		"log-level":       keyLogLevel,
		"log-format":      keyLogFormat,
		"otel":            keyOTelEnabled,
	}

	for flagName, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(flagName)); err != nil {
			return Config{}, errors.Join(ErrInvalidConfig, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Join(ErrInvalidConfig, err)
		}
	}

	cfg := Config{
		HTTP: HTTP{
			Addr: v.GetString(keyHTTPAddr),
		},
		Database: Database{
			Driver:      v.GetString(keyDatabaseDriver),
			DSN:         v.GetString(keyDatabaseDSN),
			TablePrefix: v.GetString(keyDatabaseTablePrefix),
			MaxConns:    v.GetInt(keyDatabaseMaxConns),
		},
		Rental: Rental{
			LoanPeriod: v.GetDuration(keyRentalLoanPeriod),
		},
		Log: Log{
			Level:  v.GetString(keyLogLevel),
			Format: v.GetString(keyLogFormat),
		},
		OTel: OTel{
			Enabled: v.GetBool(keyOTelEnabled),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyHTTPAddr, defaultHTTPAddr)
	v.SetDefault(keyDatabaseDriver, defaultDatabaseDriver)
	v.SetDefault(keyDatabaseDSN, defaultDatabaseDSN)
	v.SetDefault(keyDatabaseTablePrefix, "")
	v.SetDefault(keyDatabaseMaxConns, defaultDatabaseMaxConns)
	v.SetDefault(keyRentalLoanPeriod, defaultLoanPeriod)
	v.SetDefault(keyLogLevel, defaultLogLevel)
	v.SetDefault(keyLogFormat, defaultLogFormat)
	v.SetDefault(keyOTelEnabled, false)
}

// Validate checks all values that cannot be checked by their type alone.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverPGX, DriverPostgres, DriverSQLX, DriverSQLite:
	default:
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("%w: database dsn must not be empty", ErrInvalidConfig)
	}

	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("%w: database max_conns must be positive", ErrInvalidConfig)
	}

	if c.Rental.LoanPeriod <= 0 {
		return fmt.Errorf("%w: rental loan_period must be positive", ErrInvalidConfig)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	switch c.Log.Format {
	case LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}

// SlogLevel parses the configured level name.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, l.Level)
	}

	return level, nil
}
