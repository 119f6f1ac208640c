package store

import "fmt"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Themes persists the theme preference. It is stored as a plain string, not
// JSON, under ThemeKey.
type Themes struct {
	backend Backend
}

func NewThemes(backend Backend) *Themes {
	return &Themes{backend: backend}
}

// Get returns the saved theme. ok is false when nothing valid is saved and
// the caller should fall back to the environment's preference.
func (t *Themes) Get() (theme Theme, ok bool, err error) {
	data, err := t.backend.Get(ThemeKey)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", ThemeKey, err)
	}
	theme, perr := ParseTheme(string(data))
	if perr != nil {
		return "", false, nil
	}
	return theme, true, nil
}

func (t *Themes) Set(theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := t.backend.Put(ThemeKey, []byte(theme)); err != nil {
		return fmt.Errorf("write %s: %w", ThemeKey, err)
	}
	return nil
}
