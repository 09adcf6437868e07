package statusbar

import (
	"math"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// State is everything a Surface needs to draw the status bar.
type State struct {
	Visible           bool
	BackgroundColor   *Color
	ForegroundColor   *Color
	BackgroundOpacity float64
	Progress          ProgressState
}

// ProgressState is the state of the progress indicator.
type ProgressState struct {
	Visible bool
	Text    string
	// Value is in [0,1]; nil means indeterminate.
	Value *float64
}

// Surface draws a status bar. Implementations are platform specific.
type Surface interface {
	Render(State) error
}

// StatusBar is the status bar of one window or terminal. It only holds
// properties; drawing is left to the Surface.
type StatusBar struct {
	mu       sync.Mutex
	surface  Surface
	state    State
	progress *ProgressIndicator
}

// New returns a visible StatusBar drawing on surface.
func New(surface Surface) *StatusBar {
	sb := &StatusBar{
		surface: surface,
		state: State{
			Visible:           true,
			BackgroundOpacity: 1,
		},
	}
	sb.progress = &ProgressIndicator{bar: sb}
	return sb
}

// State returns a copy of the current state.
func (sb *StatusBar) State() State {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.state
}

// BackgroundColor returns the background color, nil for the system default.
func (sb *StatusBar) BackgroundColor() *Color {
	return sb.State().BackgroundColor
}

func (sb *StatusBar) SetBackgroundColor(c *Color) error {
	return sb.update(func(s *State) { s.BackgroundColor = copyColor(c) })
}

// ForegroundColor returns the foreground color, nil for the system default.
func (sb *StatusBar) ForegroundColor() *Color {
	return sb.State().ForegroundColor
}

func (sb *StatusBar) SetForegroundColor(c *Color) error {
	return sb.update(func(s *State) { s.ForegroundColor = copyColor(c) })
}

func (sb *StatusBar) BackgroundOpacity() float64 {
	return sb.State().BackgroundOpacity
}

// SetBackgroundOpacity sets the opacity, clamped to [0,1].
func (sb *StatusBar) SetBackgroundOpacity(o float64) error {
	return sb.update(func(s *State) { s.BackgroundOpacity = clamp01(o) })
}

func (sb *StatusBar) Show() error {
	return sb.update(func(s *State) { s.Visible = true })
}

func (sb *StatusBar) Hide() error {
	return sb.update(func(s *State) { s.Visible = false })
}

// ProgressIndicator returns the progress indicator of this status bar.
func (sb *StatusBar) ProgressIndicator() *ProgressIndicator {
	return sb.progress
}

func (sb *StatusBar) update(fn func(*State)) error {
	sb.mu.Lock()
	fn(&sb.state)
	state := sb.state
	sb.mu.Unlock()

	if sb.surface == nil {
		return nil
	}
	if err := sb.surface.Render(state); err != nil {
		logrus.Debugf("failed to render status bar: %v", err)
		return errors.Wrap(err, "failed to render status bar")
	}
	return nil
}

// ProgressIndicator is the progress indicator of a StatusBar.
type ProgressIndicator struct {
	bar *StatusBar
}

func (p *ProgressIndicator) Text() string {
	return p.bar.State().Progress.Text
}

func (p *ProgressIndicator) SetText(text string) error {
	return p.bar.update(func(s *State) { s.Progress.Text = text })
}

// ProgressValue returns the progress in [0,1], nil when indeterminate.
func (p *ProgressIndicator) ProgressValue() *float64 {
	return p.bar.State().Progress.Value
}

// SetProgressValue sets the progress, clamped to [0,1]. nil makes the
// indicator indeterminate.
func (p *ProgressIndicator) SetProgressValue(v *float64) error {
	return p.bar.update(func(s *State) {
		if v == nil {
			s.Progress.Value = nil
			return
		}
		c := clamp01(*v)
		s.Progress.Value = &c
	})
}

func (p *ProgressIndicator) Show() error {
	return p.bar.update(func(s *State) { s.Progress.Visible = true })
}

func (p *ProgressIndicator) Hide() error {
	return p.bar.update(func(s *State) { s.Progress.Visible = false })
}

func copyColor(c *Color) *Color {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

// clamp01 limits v to [0,1]. NaN becomes 0.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
