package config

// Viper configuration loader: reads config.yaml from the project, user and working directories

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from config.yaml
type Config struct {
	// Logging configuration
	Logging struct {
		Level string `mapstructure:"level"` // "debug", "info", "warn", "error"
	} `mapstructure:"logging"`

	// Search input configuration
	Search struct {
		DefaultQueryKey  string        `mapstructure:"defaultQueryKey"`
		ClearAfterSearch bool          `mapstructure:"clearAfterSearch"`
		TypeaheadDelay   time.Duration `mapstructure:"typeaheadDelay"`
		Output           string        `mapstructure:"output"` // "yaml" or "json"
	} `mapstructure:"search"`

	// Option store configuration
	Store struct {
		Latency    time.Duration `mapstructure:"latency"` // simulated lookup delay
		MaxResults int           `mapstructure:"maxResults"`
	} `mapstructure:"store"`

	// Filter catalog configuration
	Filters struct {
		File string `mapstructure:"file"`
	} `mapstructure:"filters"`

	// Appearance configuration
	Appearance struct {
		Theme string `mapstructure:"theme"` // "dark", "light", "auto"
	} `mapstructure:"appearance"`
}

var appConfig *Config

// LoadConfig loads configuration from config.yaml
// Priority order (first found wins): project config → user config → current directory (dev)
// If config.yaml doesn't exist, it uses default values
func LoadConfig() (*Config, error) {
	// Reset viper to clear any previous configuration
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// first added = highest priority
	viper.AddConfigPath(GetProjectConfigDir())
	viper.AddConfigPath(GetConfigDir())
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("no config.yaml found, using defaults")
		} else {
			slog.Error("error reading config file", "error", err)
			return nil, err
		}
	} else {
		slog.Debug("loaded configuration", "file", viper.ConfigFileUsed())
	}

	// Allow environment variables to override config file
	viper.SetEnvPrefix("STRUCTSEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := bindFlags(); err != nil {
		slog.Warn("failed to bind command line flags", "error", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		slog.Error("failed to unmarshal config", "error", err)
		return nil, err
	}

	appConfig = cfg
	return cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("logging.level", "error")

	viper.SetDefault("search.defaultQueryKey", "keywords")
	viper.SetDefault("search.clearAfterSearch", false)
	viper.SetDefault("search.typeaheadDelay", 400*time.Millisecond)
	viper.SetDefault("search.output", "yaml")

	viper.SetDefault("store.latency", 300*time.Millisecond)
	viper.SetDefault("store.maxResults", 50)

	viper.SetDefault("filters.file", "")

	viper.SetDefault("appearance.theme", "auto")
}

// bindFlags binds supported command line flags to viper so they can override config values.
func bindFlags() error {
	flagSet := pflag.NewFlagSet("structsearch", pflag.ContinueOnError)
	flagSet.ParseErrorsWhitelist.UnknownFlags = true
	flagSet.SetOutput(io.Discard)

	flagSet.String("log-level", "", "Log level (debug, info, warn, error)")
	flagSet.String("filters", "", "Path to a filters.yaml catalog")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}

	if err := viper.BindPFlag("logging.level", flagSet.Lookup("log-level")); err != nil {
		return err
	}
	return viper.BindPFlag("filters.file", flagSet.Lookup("filters"))
}

// BindFlagSet binds an already parsed flag set (the CLI's persistent flags)
// so explicit flags override config values.
func BindFlagSet(fs *pflag.FlagSet) {
	bindings := map[string]string{
		"log-level": "logging.level",
		"filters":   "filters.file",
	}
	for name, key := range bindings {
		if f := fs.Lookup(name); f != nil && f.Changed {
			viper.Set(key, f.Value.String())
		}
	}
}

// GetConfig returns the loaded configuration
// If config hasn't been loaded yet, it loads it first
func GetConfig() *Config {
	if appConfig == nil {
		cfg, err := LoadConfig()
		if err != nil {
			slog.Warn("failed to load config, using defaults", "error", err)
			setDefaults()
			cfg = &Config{}
			_ = viper.Unmarshal(cfg)
		}
		appConfig = cfg
	}
	return appConfig
}

// GetString is a convenience method to get a string value from config
func GetString(key string) string {
	return viper.GetString(key)
}

// GetBool is a convenience method to get a boolean value from config
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetInt is a convenience method to get an integer value from config
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetDefaultQueryKey returns the filter key free text is collected under
func GetDefaultQueryKey() string {
	key := viper.GetString("search.defaultQueryKey")
	if key == "" {
		return "keywords"
	}
	return key
}

// GetClearAfterSearch reports whether submitting empties the input
func GetClearAfterSearch() bool {
	return viper.GetBool("search.clearAfterSearch")
}

// GetTypeaheadDelay returns the quiet interval before a typeahead lookup
func GetTypeaheadDelay() time.Duration {
	d := viper.GetDuration("search.typeaheadDelay")
	if d < 0 {
		return 0
	}
	return d
}

// GetOutputFormat returns "json" or "yaml"
func GetOutputFormat() string {
	if strings.EqualFold(viper.GetString("search.output"), "json") {
		return "json"
	}
	return "yaml"
}

// GetStoreLatency returns the simulated option store delay
func GetStoreLatency() time.Duration {
	d := viper.GetDuration("store.latency")
	if d < 0 {
		return 0
	}
	return d
}

// GetStoreMaxResults returns the cap on options per lookup
func GetStoreMaxResults() int {
	return viper.GetInt("store.maxResults")
}

// GetTheme returns the appearance theme setting
func GetTheme() string {
	theme := viper.GetString("appearance.theme")
	if theme == "" {
		return "auto"
	}
	return theme
}

// GetEffectiveTheme resolves "auto" to actual theme based on terminal detection
func GetEffectiveTheme() string {
	theme := GetTheme()
	if theme != "auto" {
		return theme
	}
	// Detect via COLORFGBG env var (format: "fg;bg")
	if colorfgbg := os.Getenv("COLORFGBG"); colorfgbg != "" {
		parts := strings.Split(colorfgbg, ";")
		if len(parts) >= 2 {
			// 0-7 = dark colors, 8+ = light colors
			if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil && bg >= 8 {
				return "light"
			}
		}
	}
	return "dark"
}

// GetContentBackgroundColor returns the background color for markdown content areas
func GetContentBackgroundColor() tcell.Color {
	if GetEffectiveTheme() == "dark" {
		return tcell.ColorBlack
	}
	return tcell.ColorDefault
}

// GetContentTextColor returns the appropriate text color for content areas
func GetContentTextColor() tcell.Color {
	if GetEffectiveTheme() == "dark" {
		return tcell.ColorWhite
	}
	return tcell.ColorBlack
}
