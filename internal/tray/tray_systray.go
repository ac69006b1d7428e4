//go:build systray

package tray

import (
	"context"
	"fmt"
	"sync"

	"github.com/getlantern/systray"
)

type Systray struct {
	Title string
	Quit  func()

	mu      sync.Mutex
	ready   bool
	count   int
	visible bool
}

func New(title string, quit func()) App {
	return &Systray{Title: title, Quit: quit}
}

func (s *Systray) Run(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		systray.Quit()
	}()
	systray.Run(func() {
		s.mu.Lock()
		s.ready = true
		s.mu.Unlock()
		s.render()
		mQuit := systray.AddMenuItem("Quit", "Quit the booking dashboard")
		go func() {
			<-mQuit.ClickedCh
			if s.Quit != nil {
				s.Quit()
			}
			systray.Quit()
		}()
	}, func() {
		close(done)
	})
	<-done
	return nil
}

// SetPending updates the badge from the approvals poller. Safe to call
// before the tray loop is up; the count is applied once ready.
func (s *Systray) SetPending(count int, visible bool) {
	s.mu.Lock()
	s.count = count
	s.visible = visible
	s.mu.Unlock()
	s.render()
}

func (s *Systray) render() {
	s.mu.Lock()
	ready, count, visible := s.ready, s.count, s.visible
	s.mu.Unlock()
	if !ready {
		return
	}
	if visible {
		systray.SetTitle(fmt.Sprintf("Approvals (%d)", count))
	} else {
		systray.SetTitle(s.Title)
	}
}
