package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/util/sysinfo"
)

// LoadConfig loads the application configuration.
// Returns an error if configuration loading fails.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// InitLogging installs the default slog logger writing to the log file in
// the cache directory. Logging falls back to stderr when the file cannot be
// opened, since stdout belongs to the TUI.
func InitLogging(cfg *config.Config) slog.Level {
	level := ParseLogLevel(cfg.Logging.Level)

	var out io.Writer = os.Stderr
	if err := config.EnsureDirs(); err == nil {
		//nolint:gosec // G302: log file is user-owned
		f, ferr := os.OpenFile(config.GetLogFile(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if ferr == nil {
			out = f
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	slog.Debug("logging initialized", "level", level.String())
	return level
}

// InitTerminal turns color ramps off on terminals with fewer than 256
// colors and records the environment in the log.
func InitTerminal(info *sysinfo.SystemInfo) {
	config.UseGradients = info.SupportsGradients()
	slog.Debug("system info", info.LogAttrs()...)
}

// ParseLogLevel maps a config level name to a slog level; unknown names
// mean error.
func ParseLogLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
