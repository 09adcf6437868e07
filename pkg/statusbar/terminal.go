package statusbar

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

const progressWidth = 20

// ansiColors are the eight basic terminal colors in attribute order.
var ansiColors = [...]Color{
	{0xff, 0x00, 0x00, 0x00}, // black
	{0xff, 0xcd, 0x00, 0x00}, // red
	{0xff, 0x00, 0xcd, 0x00}, // green
	{0xff, 0xcd, 0xcd, 0x00}, // yellow
	{0xff, 0x00, 0x00, 0xee}, // blue
	{0xff, 0xcd, 0x00, 0xcd}, // magenta
	{0xff, 0x00, 0xcd, 0xcd}, // cyan
	{0xff, 0xe5, 0xe5, 0xe5}, // white
}

// TerminalSurface draws the status bar as a single, continuously
// rewritten terminal line.
type TerminalSurface struct {
	mu sync.Mutex
	w  io.Writer
}

var _ Surface = &TerminalSurface{}

func NewTerminalSurface(w io.Writer) *TerminalSurface {
	return &TerminalSurface{w: w}
}

func (t *TerminalSurface) Render(s State) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Return to the line start and clear it.
	if _, err := io.WriteString(t.w, "\r\033[K"); err != nil {
		return err
	}
	if !s.Visible {
		return nil
	}

	var attrs []color.Attribute
	if s.ForegroundColor != nil {
		attrs = append(attrs, color.FgBlack+color.Attribute(nearestANSI(*s.ForegroundColor)))
	}
	if s.BackgroundColor != nil && s.BackgroundOpacity >= 0.5 {
		attrs = append(attrs, color.BgBlack+color.Attribute(nearestANSI(*s.BackgroundColor)))
	}

	_, err := color.New(attrs...).Fprint(t.w, formatLine(s.Progress))
	return err
}

func formatLine(p ProgressState) string {
	if !p.Visible {
		return p.Text
	}

	var sb strings.Builder
	sb.WriteString(p.Text)
	if p.Text != "" {
		sb.WriteString(" ")
	}

	if p.Value == nil {
		sb.WriteString("[" + strings.Repeat("~", progressWidth) + "]")
		return sb.String()
	}

	// Surfaces may be handed states that did not come from a StatusBar.
	v := clamp01(*p.Value)
	filled := int(v*progressWidth + 0.5)
	sb.WriteString("[")
	sb.WriteString(strings.Repeat("#", filled))
	sb.WriteString(strings.Repeat("-", progressWidth-filled))
	sb.WriteString("]")
	sb.WriteString(fmt.Sprintf(" %3.0f%%", v*100))

	return sb.String()
}

// nearestANSI returns the index of the basic terminal color closest to c.
func nearestANSI(c Color) int {
	best, bestDist := 0, -1
	for i, a := range ansiColors {
		dr := int(c.R) - int(a.R)
		dg := int(c.G) - int(a.G)
		db := int(c.B) - int(a.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
