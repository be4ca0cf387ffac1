// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/shakeelsaga/sourcefolio/internal/executor"
)

// spinnerIndicator animates bubbles spinner frames on its own ticker while
// a provider call is in flight. The session loop is synchronous, so the
// frames are driven directly rather than through a bubbletea program.
type spinnerIndicator struct {
	out    io.Writer
	theme  Theme
	frames spinner.Spinner

	mu          sync.Mutex
	description string
	done        chan struct{}
	stopped     bool
}

func newSpinner(out io.Writer, theme Theme) *spinnerIndicator {
	return &spinnerIndicator{out: out, theme: theme, frames: spinner.Dot}
}

func (s *spinnerIndicator) Start(description string) {
	s.mu.Lock()
	s.description = description
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.animate()
}

func (s *spinnerIndicator) animate() {
	// Spinner.FPS is the frame interval, despite the name.
	interval := s.frames.FPS
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			glyph := s.theme.Primary.Render(s.frames.Frames[frame%len(s.frames.Frames)])
			fmt.Fprintf(s.out, "\r%s %s", glyph, s.description)
			s.mu.Unlock()
			frame++
		}
	}
}

func (s *spinnerIndicator) Stop(state executor.IndicatorState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.done)

	var tail string
	switch state {
	case executor.IndicatorOK:
		tail = s.theme.Success.Render("completed ✔")
	case executor.IndicatorTimedOut:
		tail = s.theme.Error.Render("timed out ✘")
	default:
		tail = s.theme.Error.Render("failed ✘")
	}

	// Clear the animation line before printing the terminal state.
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.description)+4))
	fmt.Fprintf(s.out, "%s %s\n", s.description, tail)
}
