package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"logistics/internal/adapters/out/fee"
	"logistics/internal/adapters/out/queue"
	"logistics/internal/jobs"
	"logistics/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Tariff   TariffConfig   `mapstructure:"tariff"`
	Money    MoneyConfig    `mapstructure:"money"`
	Order    OrderConfig    `mapstructure:"order"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
}

type HTTPConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (c HTTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN builds a key/value connection string for the pgx driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type LogConfig struct {
	Mode       string `mapstructure:"mode"`
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Mode:       c.Mode,
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

type QueueConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Name     string `mapstructure:"name"`
	MaxRetry int    `mapstructure:"max_retry"`
}

func (c QueueConfig) ToQueueConfig() queue.Config {
	return queue.Config{
		Enabled:  c.Enabled,
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		Queue:    c.Name,
		MaxRetry: c.MaxRetry,
	}
}

// TariffConfig holds decimal amounts as strings so YAML and environment
// values keep their exact precision.
type TariffConfig struct {
	BaseFees             map[string]string `mapstructure:"base_fees"`
	PerKg                string            `mapstructure:"per_kg"`
	FreeKg               string            `mapstructure:"free_kg"`
	InterRegionSurcharge string            `mapstructure:"inter_region_surcharge"`
	CODRate              string            `mapstructure:"cod_rate"`
	InsuranceRate        string            `mapstructure:"insurance_rate"`
}

// ToTariff overlays the configured values on fee.DefaultTariff.
func (c TariffConfig) ToTariff(scale int32) (fee.Tariff, error) {
	t := fee.DefaultTariff()
	t.Scale = scale

	var errList []error
	parse := func(name, raw string, dst *decimal.Decimal) {
		if strings.TrimSpace(raw) == "" {
			return
		}
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			errList = append(errList, fmt.Errorf("tariff.%s: %w", name, err))
			return
		}
		*dst = d
	}

	if len(c.BaseFees) > 0 {
		t.BaseFees = make(map[string]decimal.Decimal, len(c.BaseFees))
		for service, raw := range c.BaseFees {
			var d decimal.Decimal
			parse("base_fees."+service, raw, &d)
			t.BaseFees[service] = d
		}
	}
	parse("per_kg", c.PerKg, &t.PerKg)
	parse("free_kg", c.FreeKg, &t.FreeKg)
	parse("inter_region_surcharge", c.InterRegionSurcharge, &t.InterRegionSurcharge)
	parse("cod_rate", c.CODRate, &t.CODRate)
	parse("insurance_rate", c.InsuranceRate, &t.InsuranceRate)

	return t, errors.Join(errList...)
}

type MoneyConfig struct {
	// Scale is the number of decimal places amounts are rounded to.
	Scale int32 `mapstructure:"scale"`
}

type OrderConfig struct {
	AllowDeliveryRetry bool `mapstructure:"allow_delivery_retry"`
}

type JobsConfig struct {
	PartialBatchSchedule string        `mapstructure:"partial_batch_schedule"`
	Timeout              time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "logistics")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "logistics")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("log.mode", "release")
	v.SetDefault("log.dir", "logs")
	v.SetDefault("log.filename", "logistics.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.db", 0)
	v.SetDefault("queue.name", queue.DefaultQueue)
	v.SetDefault("queue.max_retry", 5)
	v.SetDefault("money.scale", 0)
	v.SetDefault("order.allow_delivery_retry", true)
	v.SetDefault("jobs.partial_batch_schedule", jobs.DefaultPartialBatchSchedule)
	v.SetDefault("jobs.timeout", "1m")
}

// LoadConfig reads an optional .env file into the environment, then the YAML
// file at path (or config.yaml in the working directory or ./configs when
// path is empty), then environment overrides such as DATABASE_HOST for
// database.host.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
