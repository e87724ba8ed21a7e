package preference

import "strings"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	ThemeKey      = "mw_theme"
	HideCTAKey    = "mw_hide_cta"
	hideCTAMarker = "1"
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Preferences is the visitor's cosmetic state.
type Preferences struct {
	Theme     Theme `json:"theme"`
	Stored    bool  `json:"stored"`
	CTAHidden bool  `json:"ctaHidden"`
}
