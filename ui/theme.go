package ui

import (
	"fmt"

	"github.com/fivemoreminix/textstore/ui/buffer"
	"github.com/gdamore/tcell/v2"
)

// A Theme is a map of string names to styles. Themes can be passed by reference to components
// to set their styles. Some components will depend upon the basic keys, but most components
// may use keys specific to their component. If a theme value cannot be found, then the
// `DefaultTheme` value will be used, instead. An updated list of theme keys can be found on
// the default theme.
type Theme map[string]tcell.Style

func (theme *Theme) GetOrDefault(key string) tcell.Style {
	if theme != nil {
		if val, ok := (*theme)[key]; ok {
			return val
		}
	}

	if val, ok := DefaultTheme[key]; ok {
		return val
	} else {
		panic(fmt.Sprintf("key \"%v\" not present in default theme", key))
	}
}

// DefaultTheme uses only the first 16 colors present in most colored terminals.
var DefaultTheme = Theme{
	"Normal":           tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"InputField":       tcell.Style{}.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	"StatusBar":        tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"TextEdit":         tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"TextEditColumn":   tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorGray),
	"TextEditSelected": tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
}

// DefaultColorscheme colors syntax in a TextEdit.
var DefaultColorscheme = &buffer.Colorscheme{
	buffer.Default:    tcell.Style{}.Foreground(tcell.ColorLightGray).Background(tcell.ColorBlack),
	buffer.Column:     tcell.Style{}.Foreground(tcell.ColorDarkGray).Background(tcell.ColorBlack),
	buffer.Comment:    tcell.Style{}.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
	buffer.DocComment: tcell.Style{}.Foreground(tcell.ColorTeal).Background(tcell.ColorBlack),
	buffer.String:     tcell.Style{}.Foreground(tcell.ColorOlive).Background(tcell.ColorBlack),
	buffer.Keyword:    tcell.Style{}.Foreground(tcell.ColorNavy).Background(tcell.ColorBlack),
	buffer.Type:       tcell.Style{}.Foreground(tcell.ColorPurple).Background(tcell.ColorBlack),
	buffer.Number:     tcell.Style{}.Foreground(tcell.ColorFuchsia).Background(tcell.ColorBlack),
	buffer.Builtin:    tcell.Style{}.Foreground(tcell.ColorBlue).Background(tcell.ColorBlack),
	buffer.Special:    tcell.Style{}.Foreground(tcell.ColorFuchsia).Background(tcell.ColorBlack),
}
