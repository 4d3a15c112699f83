package ui

import (
	"image/color"
	"soundboard/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Colour roles used by the slot grid in addition to fyne's own
const (
	colorNameSlotActive   fyne.ThemeColorName = "soundboardSlotActive"
	colorNameSlotInactive fyne.ThemeColorName = "soundboardSlotInactive"
)

// palette assigns a colour to every role the window uses
type palette struct {
	background     color.Color
	foreground     color.Color
	button         color.Color
	buttonInactive color.Color
	buttonActive   color.Color
	buttonHover    color.Color
	frame          color.Color
	dropdown       color.Color
}

var palettes = map[string]palette{
	models.ThemeDark: {
		background:     rgb(0x2b, 0x2b, 0x2b),
		foreground:     rgb(0xff, 0xff, 0xff),
		button:         rgb(0x40, 0x40, 0x40),
		buttonInactive: rgb(0x50, 0x50, 0x50),
		buttonActive:   rgb(0x4c, 0xaf, 0x50),
		buttonHover:    rgb(0x55, 0x55, 0x55),
		frame:          rgb(0x33, 0x33, 0x33),
		dropdown:       rgb(0x40, 0x40, 0x40),
	},
	models.ThemeLight: {
		background:     rgb(0xff, 0xff, 0xff),
		foreground:     rgb(0x00, 0x00, 0x00),
		button:         rgb(0xf0, 0xf0, 0xf0),
		buttonInactive: rgb(0xe0, 0xe0, 0xe0),
		buttonActive:   rgb(0x4c, 0xaf, 0x50),
		buttonHover:    rgb(0xe8, 0xe8, 0xe8),
		frame:          rgb(0xf5, 0xf5, 0xf5),
		dropdown:       rgb(0xff, 0xff, 0xff),
	},
}

func rgb(r, g, b uint8) color.Color {
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// boardTheme maps colour roles to the palette of one named theme and leaves
// everything else to fyne's default theme
type boardTheme struct {
	name    string
	colors  palette
	variant fyne.ThemeVariant
}

var _ fyne.Theme = (*boardTheme)(nil)

// newBoardTheme returns the theme for name, falling back to dark
func newBoardTheme(name string) *boardTheme {
	colors, ok := palettes[name]
	if !ok {
		name = models.ThemeDark
		colors = palettes[name]
	}
	variant := theme.VariantDark
	if name == models.ThemeLight {
		variant = theme.VariantLight
	}
	return &boardTheme{name: name, colors: colors, variant: variant}
}

func (t *boardTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return t.colors.background
	case theme.ColorNameForeground:
		return t.colors.foreground
	case theme.ColorNameButton:
		return t.colors.button
	case theme.ColorNameHover:
		return t.colors.buttonHover
	case theme.ColorNameDisabled:
		return t.colors.buttonInactive
	case theme.ColorNameInputBackground:
		return t.colors.dropdown
	case theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return t.colors.frame
	case colorNameSlotActive:
		return t.colors.buttonActive
	case colorNameSlotInactive:
		return t.colors.buttonInactive
	}
	return theme.DefaultTheme().Color(name, t.variant)
}

func (t *boardTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *boardTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *boardTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

// toggleLabel is the caption of the theme button: it shows the theme a click
// switches to
func toggleLabel(current string) string {
	if current == models.ThemeLight {
		return "🌙"
	}
	return "☀️"
}
