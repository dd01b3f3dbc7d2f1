package qrcode

import (
	"fmt"
	"image/color"
	"maps"
	"slices"
	"strconv"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// Pixel size bounds accepted by Validate.
const (
	MinSize     = 128
	MaxSize     = 512
	DefaultSize = 256
)

// Level is a QR error-correction level.
type Level string

const (
	LevelLow      Level = "L" // ~7% recovery
	LevelMedium   Level = "M" // ~15% recovery
	LevelQuartile Level = "Q" // ~25% recovery
	LevelHigh     Level = "H" // ~30% recovery
)

// ParseLevel accepts L, M, Q or H in any case.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := l.recovery(); !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return l, nil
}

func (l Level) recovery() (skipqrcode.RecoveryLevel, bool) {
	switch l {
	case LevelLow:
		return skipqrcode.Low, true
	case LevelMedium:
		return skipqrcode.Medium, true
	case LevelQuartile:
		return skipqrcode.High, true
	case LevelHigh:
		return skipqrcode.Highest, true
	default:
		return 0, false
	}
}

// Color is an opaque RGB color. It marshals to and from "#rrggbb".
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{}
	White = Color{R: 0xff, G: 0xff, B: 0xff}
)

// ParseColor parses "#rgb" or "#rrggbb". The leading '#' is optional.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// String returns the color as lowercase "#rrggbb".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA converts the color for image encoders.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Params are the encoding parameters of a single render.
// A Params value is never modified in place; edits produce a new value.
type Params struct {
	Payload       string `json:"payload"`
	Size          int    `json:"size"`
	Foreground    Color  `json:"foreground"`
	Background    Color  `json:"background"`
	Level         Level  `json:"level"`
	IncludeMargin bool   `json:"include_margin"`
}

// DefaultParams returns parameters for payload with a 256px black-on-white
// symbol, level L and no margin.
func DefaultParams(payload string) Params {
	return Params{
		Payload:    payload,
		Size:       DefaultSize,
		Foreground: Black,
		Background: White,
		Level:      LevelLow,
	}
}

// ParamsError maps a field name to the reason it was rejected.
type ParamsError map[string]error

func (e ParamsError) Error() string {
	fields := slices.Sorted(maps.Keys(e))
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f].Error())
	}
	return "invalid params: " + strings.Join(parts, "; ")
}

// Unwrap exposes the per-field causes to errors.Is.
func (e ParamsError) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, f := range slices.Sorted(maps.Keys(e)) {
		errs = append(errs, e[f])
	}
	return errs
}

// Validate checks every field and returns a ParamsError listing all problems.
func (p Params) Validate() error {
	errs := ParamsError{}
	if strings.TrimSpace(p.Payload) == "" {
		errs["payload"] = ErrEmptyContent
	}
	if p.Size < MinSize || p.Size > MaxSize {
		errs["size"] = fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidSize, p.Size, MinSize, MaxSize)
	}
	if _, ok := p.Level.recovery(); !ok {
		errs["level"] = fmt.Errorf("%w: %q", ErrInvalidLevel, p.Level)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
