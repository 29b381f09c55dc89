package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Server ServerConfig
	Data   DataConfig
	Reco   RecoConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DataConfig struct {
	// RawDir holds users.csv, items.csv and events.csv
	RawDir string
}

type RecoConfig struct {
	// total watch seconds above which an item counts as already consumed
	ExcludeThresholdSeconds float64

	DefaultK int
	MaxK     int

	HistoryDefaultK int
	HistoryMaxK     int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	threshold, err := getEnvFloat("RECO_EXCLUDE_THRESHOLD_SECONDS", 600)
	if err != nil {
		return nil, err
	}

	defaultK, err := getEnvInt("RECO_DEFAULT_K", 10)
	if err != nil {
		return nil, err
	}

	maxK, err := getEnvInt("RECO_MAX_K", 100)
	if err != nil {
		return nil, err
	}

	historyDefaultK, err := getEnvInt("RECO_HISTORY_DEFAULT_K", 20)
	if err != nil {
		return nil, err
	}

	historyMaxK, err := getEnvInt("RECO_HISTORY_MAX_K", 200)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Stream Recommendation API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Data: DataConfig{
			RawDir: getEnv("DATA_RAW_DIR", "data/raw"),
		},
		Reco: RecoConfig{
			ExcludeThresholdSeconds: threshold,
			DefaultK:                defaultK,
			MaxK:                    maxK,
			HistoryDefaultK:         historyDefaultK,
			HistoryMaxK:             historyMaxK,
		},
	}

	if cfg.Data.RawDir == "" {
		return nil, errors.New("missing data raw directory")
	}

	if cfg.Reco.ExcludeThresholdSeconds < 0 {
		return nil, errors.New("exclude threshold must not be negative")
	}

	if cfg.Reco.DefaultK <= 0 || cfg.Reco.MaxK <= 0 || cfg.Reco.HistoryDefaultK <= 0 || cfg.Reco.HistoryMaxK <= 0 {
		return nil, errors.New("k limits must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return n, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return f, nil
}
