package theme

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Terminal derives the preference from the terminal background color.
// Subscribers are notified when a poll sees the background flip.
type Terminal struct {
	interval time.Duration
	detect   func() bool
}

// NewTerminal queries the terminal attached to out every interval.
func NewTerminal(out io.Writer, interval time.Duration) *Terminal {
	return &Terminal{
		interval: interval,
		detect: func() bool {
			// A fresh renderer queries the terminal again instead of
			// returning the cached answer.
			return lipgloss.NewRenderer(out).HasDarkBackground()
		},
	}
}

func (t *Terminal) PrefersDark() bool {
	return t.detect()
}

func (t *Terminal) Subscribe(fn func()) func() {
	stop := make(chan struct{})
	done := make(chan struct{})
	last := t.detect()
	go func() {
		defer close(done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if dark := t.detect(); dark != last {
					last = dark
					fn()
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
		})
	}
}
