package header

import "github.com/boolean-maybe/structsearch/config"

// section identifies which group of key bindings a header cell belongs to
type section int

const (
	sectionGlobal section = iota
	sectionView
)

// ColorScheme is the tview color tag pair used for a key and its label
type ColorScheme struct {
	KeyColor   string
	LabelColor string
}

// getColorScheme returns the colors for a section of the key binding grid.
// Global bindings use the key-binding colors, view bindings the info colors.
func getColorScheme(s section) ColorScheme {
	colors := config.GetColors()

	if s == sectionView {
		return ColorScheme{
			KeyColor:   colors.HeaderInfoLabel,
			LabelColor: colors.HeaderKeyText,
		}
	}
	return ColorScheme{
		KeyColor:   colors.HeaderKeyBinding,
		LabelColor: colors.HeaderKeyText,
	}
}
