package tasklist

import "fmt"

const (
	ThemeKey   = "theme"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

func validTheme(name string) bool {
	return name == ThemeDark || name == ThemeLight
}

// Theme returns the stored theme, or the configured one when nothing valid
// is stored.
func (l *List) Theme() string {
	v, err := l.store.Get(ThemeKey)
	if err != nil || !validTheme(v) {
		return l.theme
	}
	return v
}

func (l *List) SetTheme(name string) error {
	if !validTheme(name) {
		return fmt.Errorf("unknown theme %q", name)
	}
	if err := l.store.Set(ThemeKey, name); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}

// ToggleTheme flips between dark and light and returns the new theme.
func (l *List) ToggleTheme() (string, error) {
	next := ThemeLight
	if l.Theme() == ThemeLight {
		next = ThemeDark
	}
	return next, l.SetTheme(next)
}
