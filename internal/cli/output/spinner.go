package output

import (
	"fmt"
	"io"
	"time"
)

// Spinner renders a small progress indicator on the error writer.
// Callers guard on EffectiveMode; it is only meant for TTY text mode.
type Spinner struct {
	w       io.Writer
	msg     string
	frames  []string
	styles  *Styles
	started bool
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner creates a spinner bound to the renderer's error writer.
func (r *Renderer) NewSpinner(msg string) *Spinner {
	return &Spinner{
		w:      r.errOut,
		msg:    msg,
		frames: []string{"|", "/", "-", "\\"},
		styles: r.styles,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	if s.started {
		return
	}
	s.started = true
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		i := 0
		for {
			select {
			case <-s.stop:
				// Clear the spinner line.
				_, _ = fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
				_, _ = fmt.Fprintf(s.w, "\r%s %s", s.frames[i%len(s.frames)], s.msg)
				i++
			}
		}
	}()
}

func (s *Spinner) halt() {
	if !s.started {
		return
	}
	close(s.stop)
	<-s.done
	s.started = false
}

// Success stops the spinner and prints a final success line.
func (s *Spinner) Success(msg string) {
	s.halt()
	_, _ = fmt.Fprintf(s.w, "%s %s\n", s.styles.StatusSuccess.String(), msg)
}

// Fail stops the spinner and prints a final failure line.
func (s *Spinner) Fail(msg string) {
	s.halt()
	_, _ = fmt.Fprintf(s.w, "%s %s\n", s.styles.StatusFailed.String(), msg)
}
