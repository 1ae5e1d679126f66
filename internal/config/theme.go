package config

// Theme identifies one of the built-in syntax highlighting themes.
type Theme int

const (
	ThemeAyu Theme = iota
	ThemeBase16Ocean
	ThemeColdark
	ThemeGruvbox
	ThemeMonokai
	ThemeOnehalf
	ThemeSolarized
)

// themeNames is the closed table of recognised theme names. Matching is exact
// and case-sensitive.
var themeNames = map[string]Theme{
	"ayu":         ThemeAyu,
	"base16ocean": ThemeBase16Ocean,
	"coldark":     ThemeColdark,
	"gruvbox":     ThemeGruvbox,
	"monokai":     ThemeMonokai,
	"onehalf":     ThemeOnehalf,
	"solarized":   ThemeSolarized,
}

// String returns the configured name of the theme.
func (t Theme) String() string {
	for name, theme := range themeNames {
		if theme == t {
			return name
		}
	}
	return "unknown"
}
