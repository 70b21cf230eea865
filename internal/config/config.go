package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App      *AppConfig      `yaml:"app"`
	Database *DatabaseConfig `yaml:"database"`
	Redis    *RedisConfig    `yaml:"redis"`
	Security *SecurityConfig `yaml:"security"`
	Rewards  *RewardsConfig  `yaml:"rewards"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
	Port        int    `yaml:"port"`
	Host        string `yaml:"host"`
	Debug       bool   `yaml:"debug"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
}

type SecurityConfig struct {
	JWTSecret           string  `yaml:"jwt_secret"`
	RateLimitPerMinute  int     `yaml:"rate_limit_per_minute"`
	SearchRatePerSecond float64 `yaml:"search_rate_per_second"`
	SearchRateBurst     int     `yaml:"search_rate_burst"`
}

// RewardsConfig fixes the credit economy: what an account starts with, what
// a referral pays both sides, and what one contact reveal costs.
type RewardsConfig struct {
	SignupBonus    int64 `yaml:"signup_bonus"`
	ReferralReward int64 `yaml:"referral_reward"`
	RevealCost     int64 `yaml:"reveal_cost"`
}

func Load() (*Config, error) {
	config := &Config{
		App:      loadAppConfig(),
		Database: loadDatabaseConfig(),
		Redis:    loadRedisConfig(),
		Security: loadSecurityConfig(),
		Rewards:  loadRewardsConfig(),
	}

	return config, nil
}

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:        getEnv("APP_NAME", "PlateLink"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnvAsInt("APP_PORT", 8080),
		Host:        getEnv("APP_HOST", "localhost"),
		Debug:       getEnvAsBool("APP_DEBUG", true),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}
}

func loadSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		JWTSecret:           getEnv("JWT_SECRET", "change-me-in-production"),
		RateLimitPerMinute:  getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
		SearchRatePerSecond: getEnvAsFloat("SEARCH_RATE_PER_SECOND", 0.5),
		SearchRateBurst:     getEnvAsInt("SEARCH_RATE_BURST", 5),
	}
}

func loadRewardsConfig() *RewardsConfig {
	return &RewardsConfig{
		SignupBonus:    getEnvAsInt64("SIGNUP_BONUS_CREDITS", 3),
		ReferralReward: getEnvAsInt64("REFERRAL_REWARD_CREDITS", 5),
		RevealCost:     getEnvAsInt64("REVEAL_COST_CREDITS", 1),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
