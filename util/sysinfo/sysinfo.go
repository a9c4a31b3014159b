package sysinfo

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/boolean-maybe/structsearch/config"
	"github.com/gdamore/tcell/v2"
)

// gradientMinColors is the smallest palette on which color ramps render
// without visible banding.
const gradientMinColors = 256

// SystemInfo describes the client environment: terminal capabilities and
// the paths the application reads and writes.
type SystemInfo struct {
	OS           string // runtime.GOOS
	Architecture string // runtime.GOARCH
	GoVersion    string

	TermType      string // $TERM
	ColorTerm     string // $COLORTERM (truecolor indicator)
	ColorFGBG     string // $COLORFGBG
	DetectedTheme string // "dark", "light", "unknown"

	ColorSupport string // "monochrome", "16-color", "256-color", "truecolor"
	ColorCount   int

	ConfigDir   string
	CacheDir    string
	LogFile     string
	FiltersFile string // empty when the embedded catalog is used
}

// NewSystemInfo collects system information using terminfo lookup, so no
// screen is needed. Paths are empty when config paths are not initialized.
func NewSystemInfo() *SystemInfo {
	info := &SystemInfo{
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		GoVersion:    runtime.Version(),

		TermType:  os.Getenv("TERM"),
		ColorTerm: os.Getenv("COLORTERM"),
		ColorFGBG: os.Getenv("COLORFGBG"),
	}

	info.DetectedTheme = detectTheme(info.ColorFGBG)
	info.ColorSupport, info.ColorCount = getColorSupportFromTerminfo()

	info.ConfigDir = safePath(config.GetConfigDir)
	info.CacheDir = safePath(config.GetCacheDir)
	info.LogFile = safePath(config.GetLogFile)
	info.FiltersFile = safePath(config.FindFiltersFile)

	return info
}

// SupportsGradients reports whether the terminal has enough colors for ramps
func (s *SystemInfo) SupportsGradients() bool {
	return s.ColorCount >= gradientMinColors
}

// LogAttrs returns the information as slog key-value pairs
func (s *SystemInfo) LogAttrs() []any {
	return []any{
		"os", s.OS,
		"arch", s.Architecture,
		"go", s.GoVersion,
		"term", s.TermType,
		"colorterm", s.ColorTerm,
		"theme", s.DetectedTheme,
		"colors", s.ColorCount,
		"configDir", s.ConfigDir,
		"filtersFile", s.FiltersFile,
	}
}

// String returns a human-readable report
func (s *SystemInfo) String() string {
	var b strings.Builder

	b.WriteString("System\n")
	b.WriteString("------\n")
	fmt.Fprintf(&b, "OS:            %s/%s\n", s.OS, s.Architecture)
	fmt.Fprintf(&b, "Go:            %s\n", s.GoVersion)
	b.WriteString("\n")

	b.WriteString("Terminal\n")
	b.WriteString("--------\n")
	fmt.Fprintf(&b, "Type:          %s\n", s.TermType)
	fmt.Fprintf(&b, "COLORTERM:     %s\n", s.ColorTerm)
	fmt.Fprintf(&b, "COLORFGBG:     %s\n", s.ColorFGBG)
	fmt.Fprintf(&b, "Theme:         %s\n", s.DetectedTheme)
	fmt.Fprintf(&b, "Color Support: %s (%d colors)\n", s.ColorSupport, s.ColorCount)
	b.WriteString("\n")

	filters := s.FiltersFile
	if filters == "" {
		filters = "(embedded)"
	}
	b.WriteString("Paths\n")
	b.WriteString("-----\n")
	fmt.Fprintf(&b, "Config Dir:    %s\n", s.ConfigDir)
	fmt.Fprintf(&b, "Cache Dir:     %s\n", s.CacheDir)
	fmt.Fprintf(&b, "Log File:      %s\n", s.LogFile)
	fmt.Fprintf(&b, "Filters:       %s\n", filters)

	return b.String()
}

// detectTheme parses $COLORFGBG to determine if terminal has dark or light background.
// Format: "fg;bg" where bg >= 8 indicates light background.
// Returns "dark", "light", or "unknown".
func detectTheme(colorFGBG string) string {
	if colorFGBG == "" {
		return "unknown"
	}

	parts := strings.Split(colorFGBG, ";")
	if len(parts) < 2 {
		return "unknown"
	}

	var bg int
	if _, err := fmt.Sscanf(parts[len(parts)-1], "%d", &bg); err != nil {
		return "unknown"
	}
	// 0-7 = dark colors, 8+ = light colors
	if bg >= 8 {
		return "light"
	}
	return "dark"
}

// getColorSupportFromTerminfo checks $COLORTERM first (modern terminals
// advertise truecolor there even when $TERM is xterm-256color), then falls
// back to the terminfo entry for $TERM.
func getColorSupportFromTerminfo() (string, int) {
	if colorterm := os.Getenv("COLORTERM"); colorterm == "truecolor" || colorterm == "24bit" {
		return "truecolor", 1 << 24
	}

	term := os.Getenv("TERM")
	if term == "" {
		return "unknown", 0
	}

	ti, err := tcell.LookupTerminfo(term)
	if err != nil || ti == nil {
		return "unknown", 0
	}
	return colorSupportName(ti.Colors), ti.Colors
}

// colorSupportName buckets a color count
func colorSupportName(colors int) string {
	switch {
	case colors >= 1<<24:
		return "truecolor"
	case colors >= 256:
		return "256-color"
	case colors >= 16:
		return "16-color"
	case colors >= 2:
		return "monochrome"
	default:
		return "unknown"
	}
}

// safePath reads a config path, returning empty string if the path
// manager cannot be initialized.
func safePath(get func() string) (path string) {
	defer func() {
		if recover() != nil {
			path = ""
		}
	}()
	return get()
}
