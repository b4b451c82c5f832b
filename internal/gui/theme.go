package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Light clinical palette
var (
	ColorBackground  = color.NRGBA{R: 0xF6, G: 0xF8, B: 0xFA, A: 0xFF}
	ColorSurface     = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	ColorAccent      = color.NRGBA{R: 0x1F, G: 0x6F, B: 0xB5, A: 0xFF}
	ColorAccentHover = color.NRGBA{R: 0x2A, G: 0x82, B: 0xCF, A: 0xFF}
	ColorTextPrimary = color.NRGBA{R: 0x1B, G: 0x25, B: 0x33, A: 0xFF}
	ColorTextMuted   = color.NRGBA{R: 0x6B, G: 0x77, B: 0x85, A: 0xFF}
	ColorBorder      = color.NRGBA{R: 0xD0, G: 0xD7, B: 0xDE, A: 0xFF}
	ColorDisabled    = color.NRGBA{R: 0xB8, G: 0xC0, B: 0xC8, A: 0xFF}
	ColorSuccess     = color.NRGBA{R: 0x2D, G: 0x9A, B: 0x4B, A: 0xFF}
	ColorError       = color.NRGBA{R: 0xC9, G: 0x2A, B: 0x2A, A: 0xFF}
)

// clinicalTheme is a light theme; anything not overridden comes from the
// default light variant.
type clinicalTheme struct{}

var _ fyne.Theme = (*clinicalTheme)(nil)

func (c *clinicalTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return ColorBackground
	case theme.ColorNameInputBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return ColorSurface
	case theme.ColorNamePrimary, theme.ColorNameFocus, theme.ColorNameHyperlink:
		return ColorAccent
	case theme.ColorNameHover:
		return ColorAccentHover
	case theme.ColorNameForeground:
		return ColorTextPrimary
	case theme.ColorNamePlaceHolder:
		return ColorTextMuted
	case theme.ColorNameInputBorder, theme.ColorNameSeparator:
		return ColorBorder
	case theme.ColorNameDisabled, theme.ColorNameDisabledButton:
		return ColorDisabled
	case theme.ColorNameSuccess:
		return ColorSuccess
	case theme.ColorNameError:
		return ColorError
	default:
		return theme.DefaultTheme().Color(name, theme.VariantLight)
	}
}

func (c *clinicalTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (c *clinicalTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (c *clinicalTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameText:
		return 13
	case theme.SizeNameInputBorder:
		return 1
	default:
		return theme.DefaultTheme().Size(name)
	}
}
