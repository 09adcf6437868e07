package statusbar

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Color is an ARGB color.
type Color struct {
	A, R, G, B uint8
}

// ParseColor parses #RRGGBB or #AARRGGBB.
func ParseColor(s string) (Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	b, err := hex.DecodeString(raw)
	if err != nil {
		return Color{}, errors.Wrapf(err, "invalid color %q", s)
	}

	switch len(b) {
	case 3:
		return Color{A: 0xff, R: b[0], G: b[1], B: b[2]}, nil
	case 4:
		return Color{A: b[0], R: b[1], G: b[2], B: b[3]}, nil
	default:
		return Color{}, errors.Errorf("invalid color %q: want #RRGGBB or #AARRGGBB", s)
	}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}
