// Package color converts between RGB, HSL, and hex color representations.
// Pure arithmetic, no external inputs.
package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/gophertrace/flameprof/pkg/errors"
)

// RGB holds 8-bit channel values.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HSL holds hue in degrees and saturation/lightness as percentages.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Conversion is every representation of one color.
type Conversion struct {
	Hex string `json:"hex"`
	RGB RGB    `json:"rgb"`
	HSL HSL    `json:"hsl"`
}

var (
	hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{6})$`)
	rgbPattern = regexp.MustCompile(`^rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)$`)
	hslPattern = regexp.MustCompile(`^hsl\(\s*(\d+(?:\.\d+)?)\s*,\s*(\d+(?:\.\d+)?)%\s*,\s*(\d+(?:\.\d+)?)%\s*\)$`)
)

// Convert parses a color in "#rrggbb", "rgb(r,g,b)", or "hsl(h,s%,l%)" form
// and returns all representations.
func Convert(input string) (*Conversion, error) {
	input = strings.TrimSpace(strings.ToLower(input))

	if m := hexPattern.FindStringSubmatch(input); m != nil {
		v, err := strconv.ParseUint(m[1], 16, 32)
		if err != nil {
			return nil, errors.NewErrorInvalid(fmt.Sprintf("invalid hex color %q", input))
		}
		return fromRGB(RGB{R: int(v >> 16), G: int(v >> 8 & 0xff), B: int(v & 0xff)}), nil
	}

	if m := rgbPattern.FindStringSubmatch(input); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			return nil, errors.NewErrorInvalid(fmt.Sprintf("rgb channel out of range in %q", input))
		}
		return fromRGB(RGB{R: r, G: g, B: b}), nil
	}

	if m := hslPattern.FindStringSubmatch(input); m != nil {
		h, _ := strconv.ParseFloat(m[1], 64)
		s, _ := strconv.ParseFloat(m[2], 64)
		l, _ := strconv.ParseFloat(m[3], 64)
		if h >= 360 || s > 100 || l > 100 {
			return nil, errors.NewErrorInvalid(fmt.Sprintf("hsl value out of range in %q", input))
		}
		return fromRGB(hslToRGB(HSL{H: h, S: s, L: l})), nil
	}

	return nil, errors.NewErrorInvalid(fmt.Sprintf("unrecognized color %q, want #rrggbb, rgb(r,g,b) or hsl(h,s%%,l%%)", input))
}

func fromRGB(c RGB) *Conversion {
	return &Conversion{
		Hex: fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B),
		RGB: c,
		HSL: rgbToHSL(c),
	}
}

func rgbToHSL(c RGB) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	if max == min {
		return HSL{H: 0, S: 0, L: round1(l * 100)}
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60

	return HSL{H: round1(h), S: round1(s * 100), L: round1(l * 100)}
}

func hslToRGB(c HSL) RGB {
	h := c.H / 360
	s := c.S / 100
	l := c.L / 100

	if s == 0 {
		v := int(math.Round(l * 255))
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: int(math.Round(hueToChannel(p, q, h+1.0/3) * 255)),
		G: int(math.Round(hueToChannel(p, q, h) * 255)),
		B: int(math.Round(hueToChannel(p, q, h-1.0/3) * 255)),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
