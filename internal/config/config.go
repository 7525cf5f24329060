package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/skillforge-labs/skillforge/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
	envFile  = ".env"
)

// Known configuration keys.
const (
	KeyGlobalDir   = "materials.global_dir"
	KeyCloneDepth  = "clone.depth"
	KeyHTTPTimeout = "http.timeout"
)

// DefaultHTTPTimeout bounds each remote index probe.
const DefaultHTTPTimeout = 5 * time.Second

// Dir returns the path to the config directory (~/.skillforge/).
func Dir() string {
	if v := os.Getenv(branding.EnvVar("CONFIG_DIR")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.skillforge/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnvFilePath returns the path to the optional env file (~/.skillforge/.env).
func EnvFilePath() string {
	return filepath.Join(Dir(), envFile)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load seeds the environment from the env file, then initializes Viper to
// read from the config file and environment. Variables already set in the
// process environment are never overwritten by the env file.
func Load() {
	// Ignore error if the env file doesn't exist.
	_ = godotenv.Load(EnvFilePath())

	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyCloneDepth, 0)
	viper.SetDefault(KeyHTTPTimeout, DefaultHTTPTimeout)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// CloneDepth returns the default clone depth; zero means full history.
func CloneDepth() int {
	return viper.GetInt(KeyCloneDepth)
}

// HTTPTimeout returns the timeout for remote index probes.
func HTTPTimeout() time.Duration {
	if d := viper.GetDuration(KeyHTTPTimeout); d > 0 {
		return d
	}
	return DefaultHTTPTimeout
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
