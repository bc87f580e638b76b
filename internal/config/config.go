package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SetDefaults seeds every setting the application reads.
func SetDefaults() {
	viper.SetDefault("api.base_url", "https://canvas.instructure.com")
	viper.SetDefault("api.token", "")
	viper.SetDefault("cache.dir", "")
	viper.SetDefault("cache.max_age", 24*time.Hour)
	viper.SetDefault("fetch.chunk_size", 5)
}

// Init wires the config file lookup and environment overrides
// (COURSENEST_API_TOKEN etc.). A missing config file is fine.
func Init() {
	viper.SetConfigName("coursenest")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.coursenest")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("coursenest")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// CacheDir resolves the cache directory: the configured path if set,
// otherwise the user cache dir, the home dir, or a local fallback.
func CacheDir() string {
	if dir := viper.GetString("cache.dir"); dir != "" {
		return dir
	}

	if cacheDir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cacheDir, "coursenest")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".coursenest", "cache")
	}

	return "cache"
}
