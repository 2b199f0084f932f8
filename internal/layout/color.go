package layout

import (
	"maps"
	"strconv"

	"github.com/javiermolinar/coursegrid/internal/schedule"
)

// Color is a palette entry.
type Color struct {
	Name string
	Hex  string // "#RRGGBB"
}

// RGB returns the channels as fractions in [0, 1].
func (c Color) RGB() [3]float64 {
	var out [3]float64
	if len(c.Hex) != 7 || c.Hex[0] != '#' {
		return out
	}
	for i := range out {
		v, err := strconv.ParseUint(c.Hex[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return [3]float64{}
		}
		out[i] = float64(v) / 255
	}
	return out
}

var palette = [...]Color{
	{Name: "red", Hex: "#FECACA"},
	{Name: "blue", Hex: "#BFDBFE"},
	{Name: "green", Hex: "#BBF7D0"},
	{Name: "yellow", Hex: "#FEF08A"},
	{Name: "purple", Hex: "#E9D5FF"},
	{Name: "pink", Hex: "#FBCFE8"},
	{Name: "indigo", Hex: "#C7D2FE"},
	{Name: "teal", Hex: "#99F6E4"},
	{Name: "orange", Hex: "#FED7AA"},
	{Name: "cyan", Hex: "#A5F3FC"},
	{Name: "lime", Hex: "#D9F99D"},
	{Name: "amber", Hex: "#FDE68A"},
	{Name: "emerald", Hex: "#A7F3D0"},
	{Name: "violet", Hex: "#DDD6FE"},
	{Name: "fuchsia", Hex: "#F5D0FE"},
}

// PaletteSize is the number of distinct course colors.
const PaletteSize = len(palette)

// Palette returns a copy of the course palette.
func Palette() []Color {
	out := make([]Color, PaletteSize)
	copy(out, palette[:])
	return out
}

// ColorMap assigns a palette color to each CRN.
type ColorMap map[string]Color

// Clone returns an independent copy.
func (m ColorMap) Clone() ColorMap {
	return maps.Clone(m)
}

// AssignColors gives every distinct CRN the next palette color in
// first-seen order. More than PaletteSize CRNs wrap around.
func AssignColors(records []schedule.MeetingRecord) ColorMap {
	colors := make(ColorMap)
	seen := 0
	for _, r := range records {
		if _, ok := colors[r.CRN]; ok {
			continue
		}
		colors[r.CRN] = palette[seen%PaletteSize]
		seen++
	}
	return colors
}
