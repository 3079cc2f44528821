package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Spinner shows progress for a long-running step.
//
// When animated, the spinner redraws its line in place from a background
// goroutine. Otherwise Start and Stop are silent and only the final
// Succeed/Info/Warn lines are written, which keeps piped output stable.
type Spinner struct {
	out     io.Writer
	animate bool
	frames  []string
	fps     time.Duration

	mu      sync.Mutex
	text    string
	frame   int
	running bool
	done    chan struct{}
	stopped chan struct{}

	frameStyle   lipgloss.Style
	successStyle lipgloss.Style
	infoStyle    lipgloss.Style
	warnStyle    lipgloss.Style
}

// NewSpinner creates a Spinner writing to w.
func NewSpinner(w io.Writer, animate bool) *Spinner {
	r := lipgloss.NewRenderer(w)
	return &Spinner{
		out:          w,
		animate:      animate,
		frames:       spinner.Dot.Frames,
		fps:          spinner.Dot.FPS,
		frameStyle:   r.NewStyle().Foreground(lipgloss.Color("63")),
		successStyle: r.NewStyle().Foreground(lipgloss.Color("42")),
		infoStyle:    r.NewStyle().Foreground(lipgloss.Color("39")),
		warnStyle:    r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// Text returns the current spinner text.
func (s *Spinner) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Running reports whether the spinner is started.
func (s *Spinner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start starts the spinner. An empty text keeps the previous text, so a
// stopped spinner can be resumed with Start("").
func (s *Spinner) Start(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if text != "" {
		s.text = text
	}
	if s.running {
		return
	}
	s.running = true

	if !s.animate {
		return
	}

	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	go s.loop(s.done, s.stopped)
}

func (s *Spinner) loop(done, stopped chan struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(s.fps)
	defer ticker.Stop()

	s.render()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.render()
		}
	}
}

func (s *Spinner) render() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	frame := s.frames[s.frame%len(s.frames)]
	s.frame++
	fmt.Fprintf(s.out, "\r%s %s\x1b[K", s.frameStyle.Render(frame), s.text)
}

// Stop stops the spinner and clears its line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	done, stopped := s.done, s.stopped
	s.done, s.stopped = nil, nil
	s.mu.Unlock()

	if done == nil {
		return
	}
	close(done)
	<-stopped

	s.mu.Lock()
	fmt.Fprint(s.out, "\r\x1b[K")
	s.mu.Unlock()
}

// Succeed stops the spinner and prints text with a success mark.
func (s *Spinner) Succeed(text string) {
	s.stopWith(s.successStyle.Render("✔"), text)
}

// Info stops the spinner and prints text with an info mark.
func (s *Spinner) Info(text string) {
	s.stopWith(s.infoStyle.Render("ℹ"), text)
}

// Warn stops the spinner and prints text with a warning mark.
func (s *Spinner) Warn(text string) {
	s.stopWith(s.warnStyle.Render("⚠"), text)
}

func (s *Spinner) stopWith(mark, text string) {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	if text == "" {
		text = s.text
	}
	fmt.Fprintf(s.out, "%s %s\n", mark, text)
}
