package platform

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Colour is an sRGB colour with alpha.
type Colour struct {
	R, G, B, A uint8
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Colour {
	return Colour{R: r, G: g, B: b, A: 255}
}

// IsSolid reports whether the colour is fully opaque.
func (c Colour) IsSolid() bool {
	return c.A == 255
}

// CSS formats the colour in CSS syntax: rgb(r, g, b) or rgba(r, g, b, a).
func (c Colour) CSS() string {
	if c.IsSolid() {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	alpha := strconv.FormatFloat(math.Round(float64(c.A)/255*1000)/1000, 'f', -1, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, alpha)
}

// Hex formats the colour as #rrggbb, ignoring alpha.
func (c Colour) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColour accepts #rgb, #rrggbb, #rrggbbaa and the X11 rgb:r/g/b form
// with 1 to 4 hex digits per channel.
func ParseColour(s string) (Colour, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColour(s[1:])
	case strings.HasPrefix(strings.ToLower(s), "rgb:"):
		parts := strings.Split(s[4:], "/")
		if len(parts) != 3 {
			return Colour{}, fmt.Errorf("invalid colour %q", s)
		}
		var ch [3]uint8
		for i, p := range parts {
			v, err := scaleHexChannel(p)
			if err != nil {
				return Colour{}, fmt.Errorf("invalid colour %q: %w", s, err)
			}
			ch[i] = v
		}
		return RGB(ch[0], ch[1], ch[2]), nil
	}
	return Colour{}, fmt.Errorf("invalid colour %q", s)
}

func parseHexColour(h string) (Colour, error) {
	switch len(h) {
	case 3:
		v, err := strconv.ParseUint(h, 16, 16)
		if err != nil {
			return Colour{}, fmt.Errorf("invalid colour #%s: %w", h, err)
		}
		r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		return RGB(r*17, g*17, b*17), nil
	case 6, 8:
		v, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return Colour{}, fmt.Errorf("invalid colour #%s: %w", h, err)
		}
		if len(h) == 6 {
			return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
		}
		return Colour{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	}
	return Colour{}, fmt.Errorf("invalid colour #%s", h)
}

func scaleHexChannel(p string) (uint8, error) {
	if len(p) == 0 || len(p) > 4 {
		return 0, fmt.Errorf("bad channel %q", p)
	}
	v, err := strconv.ParseUint(p, 16, 16)
	if err != nil {
		return 0, err
	}
	maxV := uint64(1)<<(4*len(p)) - 1
	return uint8((v*255 + maxV/2) / maxV), nil
}

// Font describes a font by its Pango-style components.
type Font struct {
	Family string
	Weight string
	Style  string
	Size   float64
}

var fontWeights = map[string]bool{
	"thin": true, "ultra-light": true, "extra-light": true, "light": true,
	"semi-light": true, "book": true, "regular": true, "medium": true,
	"semi-bold": true, "demi-bold": true, "bold": true, "ultra-bold": true,
	"extra-bold": true, "heavy": true, "ultra-heavy": true,
}

var fontStyles = map[string]bool{"italic": true, "oblique": true}

// ParseFontDescription parses a Pango font description such as
// "Ubuntu Mono Bold Italic 13".
func ParseFontDescription(desc string) (Font, error) {
	fields := strings.Fields(desc)
	if len(fields) == 0 {
		return Font{}, fmt.Errorf("empty font description")
	}

	var f Font
	last := strings.TrimSuffix(fields[len(fields)-1], "px")
	if size, err := strconv.ParseFloat(last, 64); err == nil {
		f.Size = size
		fields = fields[:len(fields)-1]
	}

	for len(fields) > 1 {
		word := strings.ToLower(fields[len(fields)-1])
		switch {
		case fontStyles[word] && f.Style == "":
			f.Style = fields[len(fields)-1]
		case fontWeights[word] && f.Weight == "":
			f.Weight = fields[len(fields)-1]
		default:
			f.Family = strings.Join(fields, " ")
			return f, nil
		}
		fields = fields[:len(fields)-1]
	}
	f.Family = strings.Join(fields, " ")
	if f.Family == "" {
		return Font{}, fmt.Errorf("font description %q has no family", desc)
	}
	return f, nil
}

// Description renders the font back into Pango description form.
func (f Font) Description() string {
	parts := []string{f.Family}
	if f.Weight != "" {
		parts = append(parts, f.Weight)
	}
	if f.Style != "" {
		parts = append(parts, f.Style)
	}
	if f.Size > 0 {
		parts = append(parts, strconv.FormatFloat(f.Size, 'f', -1, 64))
	}
	return strings.Join(parts, " ")
}

// Rect is an integer rectangle in pixels.
type Rect struct {
	X, Y, Width, Height int
}

// Right returns the x coordinate of the last column inside the rectangle.
func (r Rect) Right() int { return r.X + r.Width - 1 }

// Bottom returns the y coordinate of the last row inside the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height - 1 }

// Intersect returns the overlap of two rectangles, or a zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Display describes one connected output.
type Display struct {
	Name       string
	Primary    bool
	Depth      int
	RefreshHz  int
	Geometry   Rect
	ClientArea Rect
	WidthMM    int
	HeightMM   int
}

// PPI returns the horizontal and vertical pixel density. ok is false when the
// physical size is unknown.
func (d Display) PPI() (x, y int, ok bool) {
	if d.WidthMM <= 0 || d.HeightMM <= 0 {
		return 0, 0, false
	}
	x = int(math.Round(float64(d.Geometry.Width) * 25.4 / float64(d.WidthMM)))
	y = int(math.Round(float64(d.Geometry.Height) * 25.4 / float64(d.HeightMM)))
	return x, y, true
}

// YesNo formats a boolean for display.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// FormatSize formats a width and height as "W x H".
func FormatSize(w, h int) string {
	return fmt.Sprintf("%d x %d", w, h)
}

// FormatRect formats a rectangle as "left, top; right, bottom".
func FormatRect(r Rect) string {
	return fmt.Sprintf("%d, %d; %d, %d", r.X, r.Y, r.Right(), r.Bottom())
}
