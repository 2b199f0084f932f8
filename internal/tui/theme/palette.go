package theme

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	GridLine    lipgloss.Color
	Focus       lipgloss.Color
	Warning     lipgloss.Color

	TextOnAccent lipgloss.Color
	TextOnFocus  lipgloss.Color

	Overlay OverlayColors

	light    bool
	darkText string
	lightTxt string
}

// OverlayColors holds the detail overlay colors.
type OverlayColors struct {
	Bg     lipgloss.Color
	Border lipgloss.AdaptiveColor
	Text   lipgloss.AdaptiveColor
	Muted  lipgloss.AdaptiveColor
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	light := isLightTheme(t.Bg)
	darkText, lightText := t.Bg, t.Fg
	if light {
		darkText, lightText = t.Fg, t.Bg
	}

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		GridLine:    lipgloss.Color(t.GridLine),
		Focus:       lipgloss.Color(t.Focus),
		Warning:     lipgloss.Color(t.Warning),

		TextOnAccent: lipgloss.Color(chooseTextColor(t.Accent, lightText, darkText)),
		TextOnFocus:  lipgloss.Color(chooseTextColor(t.Focus, lightText, darkText)),

		Overlay: OverlayColors{
			Bg:     lipgloss.Color(t.OverlayBg),
			Border: adaptiveColor(t.OverlayBorder),
			Text:   adaptiveColor(t.TextPrimary),
			Muted:  adaptiveColor(t.TextMuted),
		},

		light:    light,
		darkText: darkText,
		lightTxt: lightText,
	}
}

// Light reports whether the theme has a light background.
func (p *Palette) Light() bool {
	return p.light
}

// TextOn returns the theme text color that reads best on an event block of
// the given hex color.
func (p *Palette) TextOn(hex string) lipgloss.Color {
	return lipgloss.Color(chooseTextColor(hex, p.lightTxt, p.darkText))
}

// FocusShade returns a slightly stronger shade of an event color, used for
// the focused block.
func (p *Palette) FocusShade(hex string) lipgloss.Color {
	return lipgloss.Color(blendColors(hex, "#000000", 0.18))
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// parseHex parses a 2-character hex string into an integer.
func parseHex(s string) int {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return int(v)
}

func rgb(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	return parseHex(hex[1:3]), parseHex(hex[3:5]), parseHex(hex[5:7]), true
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	result := make([]byte, 7)
	result[0] = '#'
	result[1] = hex[r>>4]
	result[2] = hex[r&0xf]
	result[3] = hex[g>>4]
	result[4] = hex[g&0xf]
	result[5] = hex[b>>4]
	result[6] = hex[b&0xf]
	return string(result)
}

func adaptiveColor(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Dark:  hex,
		Light: hex,
	}
}

func chooseTextColor(bg, lightText, darkText string) string {
	lightContrast := contrastRatio(bg, lightText)
	darkContrast := contrastRatio(bg, darkText)
	if lightContrast >= darkContrast {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	r, g, b, ok := rgb(hex)
	if !ok {
		return 0
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func blendColors(a, b string, ratio float64) string {
	ar, ag, ab, okA := rgb(a)
	br, bg, bb, okB := rgb(b)
	if !okA || !okB {
		return a
	}
	ratio = min(max(ratio, 0), 1)

	r := int(float64(ar)*(1-ratio) + float64(br)*ratio)
	g := int(float64(ag)*(1-ratio) + float64(bg)*ratio)
	bv := int(float64(ab)*(1-ratio) + float64(bb)*ratio)

	return formatHexColor(r, g, bv)
}
