package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Port        string   `env:"PORT" envDefault:"5250"`
		GinMode     string   `env:"GIN_MODE" envDefault:"release"`
		CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
		LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	}

	// Datasets locates the published workbooks. Values may be http(s) URLs
	// or local file paths.
	Datasets struct {
		PricesURL             string `env:"PRICES_URL" envDefault:"https://raw.githubusercontent.com/Schesch/suedtirol_statistiken/main/data/preise_df.xlsx"`
		IncomeRegionURL       string `env:"INCOME_REGION_URL" envDefault:"https://raw.githubusercontent.com/Schesch/suedtirol_statistiken/main/data/all_region.xlsx"`
		IncomeMunicipalityURL string `env:"INCOME_MUNICIPALITY_URL" envDefault:"https://raw.githubusercontent.com/Schesch/suedtirol_statistiken/main/data/all_comune.xlsx"`

		// Timeout for a single download attempt (in seconds)
		FetchTimeout int `env:"FETCH_TIMEOUT" envDefault:"30"`

		// Maximum number of retries for a failed download
		MaxRetries int `env:"FETCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"FETCH_RETRY_DELAY" envDefault:"2"`
	}

	Snapshots struct {
		Enabled bool   `env:"SNAPSHOT_ENABLED" envDefault:"true"`
		Path    string `env:"SNAPSHOT_DB" envDefault:"data/snapshots.db"`

		// Number of snapshots kept per dataset
		Keep int `env:"SNAPSHOT_KEEP" envDefault:"5"`
	}

	Charts struct {
		Width  int `env:"CHART_WIDTH" envDefault:"900"`
		Height int `env:"CHART_HEIGHT" envDefault:"500"`
	}
}

// FetchTimeout returns the per-attempt download timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Datasets.FetchTimeout) * time.Second
}

// RetryDelay returns the pause between download attempts.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Datasets.RetryDelay) * time.Second
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
