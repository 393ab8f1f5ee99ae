package monitor

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/netuse/internal/config"
	"github.com/rileyhilliard/netuse/internal/ui"
)

// classColors maps each class to its ANSI color.
var classColors = map[ColorClass]lipgloss.Color{
	ClassGood:     ui.ColorSuccess,
	ClassNotice:   ui.ColorSecondary,
	ClassWarning:  ui.ColorWarning,
	ClassCritical: ui.ColorError,
	ClassUnknown:  ui.ColorMuted,
}

// Palette renders text in the style of a ColorClass.
type Palette struct {
	styles map[ColorClass]lipgloss.Style
}

// NewPalette builds a palette rendering for w. mode is one of the
// config.Color* values; "auto" detects the profile from w and the environment.
func NewPalette(w io.Writer, mode string) *Palette {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case config.ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	styles := make(map[ColorClass]lipgloss.Style, len(classColors))
	for class, color := range classColors {
		style := r.NewStyle().Foreground(color)
		if class != ClassUnknown {
			style = style.Bold(true)
		}
		styles[class] = style
	}
	return &Palette{styles: styles}
}

// Paint wraps text in the escape sequence for class.
func (p *Palette) Paint(class ColorClass, text string) string {
	style, ok := p.styles[class]
	if !ok {
		style = p.styles[ClassUnknown]
	}
	return style.Render(text)
}
