package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config carries all runtime settings for the API server and the batch
// scanner.
type Config struct {
	ListenAddr    string `mapstructure:"listen_addr"`
	DBPath        string `mapstructure:"db_path"`
	QuarantineDir string `mapstructure:"quarantine_dir"`
	MaxFileSize   int64  `mapstructure:"max_file_size"`

	OpenRouterURL   string `mapstructure:"openrouter_url"`
	OpenRouterKey   string `mapstructure:"openrouter_key"`
	OpenRouterModel string `mapstructure:"openrouter_model"`

	// Requests per minute per client IP.
	RateGlobal  float64 `mapstructure:"rate_global"`
	RateUpload  float64 `mapstructure:"rate_upload"`
	RateAnalyze float64 `mapstructure:"rate_analyze"`

	Workers int  `mapstructure:"workers"`
	Verbose bool `mapstructure:"verbose"`
}

func Default() *Config {
	return &Config{
		ListenAddr:      "0.0.0.0:8080",
		DBPath:          "cvlize.db",
		QuarantineDir:   "./quarantine",
		MaxFileSize:     5 * 1024 * 1024,
		OpenRouterURL:   "https://openrouter.ai/api/v1/chat/completions",
		OpenRouterModel: "nvidia/llama-3.1-nemotron-70b-instruct",
		RateGlobal:      100,
		RateUpload:      2, // 10 uploads per 5 minutes, effectively
		RateAnalyze:     50,
		Workers:         runtime.NumCPU() * 2,
	}
}

// Load builds the config from defaults, an optional config file and
// CVLIZE_* environment variables (highest precedence).
func Load(file string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("quarantine_dir", def.QuarantineDir)
	v.SetDefault("max_file_size", def.MaxFileSize)
	v.SetDefault("openrouter_url", def.OpenRouterURL)
	// Keys without a real default still need registering, or AutomaticEnv
	// will not surface them during Unmarshal.
	v.SetDefault("openrouter_key", "")
	v.SetDefault("openrouter_model", def.OpenRouterModel)
	v.SetDefault("rate_global", def.RateGlobal)
	v.SetDefault("rate_upload", def.RateUpload)
	v.SetDefault("rate_analyze", def.RateAnalyze)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix("CVLIZE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = def.MaxFileSize
	}
	return cfg, nil
}
