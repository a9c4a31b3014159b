package config

// Color and style definitions for the UI: tcell colors and tview color tags.

import (
	"github.com/gdamore/tcell/v2"
)

// ColorConfig holds all color and style definitions per view
type ColorConfig struct {
	// Search input colors
	SearchPromptColor     tcell.Color
	SearchBackgroundColor tcell.Color
	SearchTextColor       tcell.Color
	SearchPlaceholder     tcell.Color

	// Tag (chip) colors
	TagForeground         tcell.Color
	TagBackground         tcell.Color
	TagDisabledForeground tcell.Color
	TagEditingBorder      string // tview color string like "[yellow]"

	// Option dropdown colors
	OptionTextColor     tcell.Color
	OptionSubTextColor  string // tview color string like "[#808080]"
	OptionSelectedBack  tcell.Color
	OptionSelectedText  tcell.Color
	OptionDisabledColor string // tview color string like "[#5f5f5f]"
	OptionActiveMarker  string // tview color string like "[green]"
	OptionGroupMarker   string // tview color string like "[#5fafff]"
	OptionLoadingColor  string // tview color string like "[yellow]"
	OptionNotFoundColor string // tview color string like "[#808080]"
	OptionBorderColor   tcell.Color

	// Completion prompt colors
	CompletionHintColor tcell.Color

	// Header view colors
	HeaderInfoLabel  string // tview color string like "[orange]"
	HeaderInfoValue  string // tview color string like "[white]"
	HeaderKeyBinding string // tview color string like "[yellow]"
	HeaderKeyText    string // tview color string like "[white]"

	// Result pane colors
	ResultBorderColor tcell.Color
	ResultTitleColor  tcell.Color

	// Caption row colors (help page title)
	CaptionColor    tcell.Color
	CaptionFallback Gradient
	CaptionText     tcell.Color
}

// Gradient is a pair of RGB endpoints for a horizontal color ramp
type Gradient struct {
	Start [3]int
	End   [3]int
}

// UseGradients enables color ramps; set at startup when the terminal shows
// at least 256 colors. Otherwise ramps collapse to their start color.
var UseGradients = true

// DefaultColors returns the default color configuration
func DefaultColors() *ColorConfig {
	return &ColorConfig{
		// Search input
		SearchPromptColor:     tcell.PaletteColor(153), // Sky Blue (ANSI 153)
		SearchBackgroundColor: tcell.ColorDefault,      // Transparent
		SearchTextColor:       tcell.ColorWhite,
		SearchPlaceholder:     tcell.NewRGBColor(128, 128, 128),

		// Tags
		TagForeground:         tcell.NewRGBColor(180, 200, 220), // Light blue-gray text
		TagBackground:         tcell.NewRGBColor(40, 60, 100),   // Dark blue background
		TagDisabledForeground: tcell.NewRGBColor(110, 110, 110),
		TagEditingBorder:      "[yellow]",

		// Option dropdown
		OptionTextColor:     tcell.NewRGBColor(200, 200, 200),
		OptionSubTextColor:  "[#808080]",
		OptionSelectedBack:  tcell.PaletteColor(33),  // Blue (ANSI 33)
		OptionSelectedText:  tcell.PaletteColor(117), // Light Blue (ANSI 117)
		OptionDisabledColor: "[#5f5f5f]",
		OptionActiveMarker:  "[green]",
		OptionGroupMarker:   "[#5fafff]",
		OptionLoadingColor:  "[yellow]",
		OptionNotFoundColor: "[#808080]",
		OptionBorderColor:   tcell.ColorGray,

		// Completion prompt
		CompletionHintColor: tcell.NewRGBColor(128, 128, 128), // Medium gray for hint text

		// Header
		HeaderInfoLabel:  "[orange]",
		HeaderInfoValue:  "[#cccccc]",
		HeaderKeyBinding: "[yellow]",
		HeaderKeyText:    "[white]",

		// Result pane
		ResultBorderColor: tcell.ColorGray,
		ResultTitleColor:  tcell.PaletteColor(153),

		// Caption row
		CaptionColor:    tcell.NewRGBColor(30, 60, 110),
		CaptionFallback: Gradient{Start: [3]int{30, 60, 110}, End: [3]int{90, 120, 170}},
		CaptionText:     tcell.NewRGBColor(230, 235, 245),
	}
}

// Global color config instance
var globalColors *ColorConfig
var colorsInitialized bool

// GetColors returns the global color configuration with theme-aware overrides
func GetColors() *ColorConfig {
	if !colorsInitialized {
		globalColors = DefaultColors()
		// Apply theme-aware overrides for critical text colors
		if GetEffectiveTheme() == "light" {
			globalColors.SearchTextColor = tcell.ColorBlack
			globalColors.OptionTextColor = tcell.ColorBlack
			globalColors.HeaderKeyText = "[black]"
		}
		colorsInitialized = true
	}
	return globalColors
}

// SetColors sets a custom color configuration
func SetColors(colors *ColorConfig) {
	globalColors = colors
	colorsInitialized = colors != nil
}

// ParseTagColor resolves a catalog tag color (a name or #rrggbb) and
// falls back when the value is empty or unknown.
func ParseTagColor(value string, fallback tcell.Color) tcell.Color {
	if value == "" {
		return fallback
	}
	c := tcell.GetColor(value)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
