package config

import (
	"fmt"
	"strings"
)

// FrontendKind selects the rendering strategy.
type FrontendKind int

const (
	// FrontendTree is the full-screen component tree.
	FrontendTree FrontendKind = iota
	// FrontendInline draws a fixed number of rows below the prompt.
	FrontendInline
)

func (k FrontendKind) String() string {
	switch k {
	case FrontendTree:
		return "tree"
	case FrontendInline:
		return "inline"
	default:
		return fmt.Sprintf("frontend(%d)", int(k))
	}
}

// ParseFrontendKind parses "tree" or "inline".
func ParseFrontendKind(s string) (FrontendKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tree":
		return FrontendTree, nil
	case "inline":
		return FrontendInline, nil
	}
	return 0, fmt.Errorf("unknown frontend %q (want tree or inline)", s)
}

func (k FrontendKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *FrontendKind) UnmarshalText(b []byte) error {
	v, err := ParseFrontendKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ThemeKind selects the color palette.
type ThemeKind int

const (
	// ThemeAuto picks dark or light from the terminal background.
	ThemeAuto ThemeKind = iota
	ThemeDark
	ThemeLight
)

func (k ThemeKind) String() string {
	switch k {
	case ThemeAuto:
		return "auto"
	case ThemeDark:
		return "dark"
	case ThemeLight:
		return "light"
	default:
		return fmt.Sprintf("theme(%d)", int(k))
	}
}

// ParseThemeKind parses "auto", "dark" or "light".
func ParseThemeKind(s string) (ThemeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return ThemeAuto, nil
	case "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	}
	return 0, fmt.Errorf("unknown theme %q (want auto, dark or light)", s)
}

func (k ThemeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *ThemeKind) UnmarshalText(b []byte) error {
	v, err := ParseThemeKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
