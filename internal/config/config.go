package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once
var logLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)

func setDefaults() {
	viper.SetDefault("openweathermap.api_url", "https://api.openweathermap.org/data/2.5/weather")
	viper.SetDefault("openweathermap.timeout", "10s")
	viper.SetDefault("storage.dir", ".")
	viper.SetDefault("storage.candidates_file", "city_config.json")
	viper.SetDefault("storage.active_city_file", "active_city.json")
	viper.SetDefault("storage.api_key_file", "key_config.json")
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.expiration", "10m")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.dial_timeout", "500ms")
	viper.SetDefault("rate_limiter.rate", 1.0)
	viper.SetDefault("rate_limiter.burst", 1)
	viper.SetDefault("log.level", "warn")
}

func initConfig() {
	once.Do(func() {
		_ = godotenv.Load()

		setDefaults()
		viper.SetEnvPrefix("weather")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		if root, err := getProjectRoot(); err == nil {
			viper.AddConfigPath(root)
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "weather-cli"))
		}

		if err := viper.ReadInConfig(); err != nil {
			// Running without a config file is fine, defaults cover every key.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				GetLogger().Errorw("Error reading config file", "error", err)
			}
		}

		if lvl, err := zapcore.ParseLevel(viper.GetString("log.level")); err == nil {
			logLevel.SetLevel(lvl)
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func GetOpenWeatherApiUrl() string {
	initConfig()
	return viper.GetString("openweathermap.api_url")
}

// GetHTTPTimeout returns the timeout for calls to the weather API. Defaults to 10s.
func GetHTTPTimeout() time.Duration {
	initConfig()
	return durationOr(viper.GetString("openweathermap.timeout"), 10*time.Second)
}

// GetStorageDir returns the directory holding the JSON configuration records.
func GetStorageDir() string {
	initConfig()
	return viper.GetString("storage.dir")
}

func GetCandidatesFile() string {
	initConfig()
	return viper.GetString("storage.candidates_file")
}

func GetActiveCityFile() string {
	initConfig()
	return viper.GetString("storage.active_city_file")
}

func GetAPIKeyFile() string {
	initConfig()
	return viper.GetString("storage.api_key_file")
}

func IsCacheEnabled() bool {
	initConfig()
	return viper.GetBool("cache.enabled")
}

// GetCacheExpiration returns how long a fetched snapshot stays in Redis. Defaults to 10m.
func GetCacheExpiration() time.Duration {
	initConfig()
	return durationOr(viper.GetString("cache.expiration"), 10*time.Minute)
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

func GetRedisDialTimeout() time.Duration {
	initConfig()
	return durationOr(viper.GetString("redis.dial_timeout"), 500*time.Millisecond)
}

// GetRateLimiterConfig returns the rate and burst for outbound weather API calls.
// The limiter is shared by every lookup made through one repository, so a
// process that reports several times, or embeds the service, is held to rate.
func GetRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("rate_limiter.rate")
	if rate == 0 {
		rate = 1
	}
	burst = viper.GetInt("rate_limiter.burst")
	if burst == 0 {
		burst = 1
	}
	return
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = logLevel
		cfg.OutputPaths = []string{"stderr"}
		l, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

// SetLogLevel changes the level of the shared logger, e.g. "debug" for --verbose.
// It loads the config first so a later initConfig cannot reset the level to log.level.
func SetLogLevel(level string) error {
	initConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	logLevel.SetLevel(lvl)
	return nil
}

func durationOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
