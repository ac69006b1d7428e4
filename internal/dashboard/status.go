package dashboard

import (
	"fmt"
	"sync"
)

// SystemStatus is the dashboard-wide operating indicator. It is a purely
// client-side toggle; the backend is not consulted.
type SystemStatus string

const (
	SystemActive   SystemStatus = "Active"
	SystemPaused   SystemStatus = "Paused"
	SystemInactive SystemStatus = "Inactive"
)

func ParseSystemStatus(s string) (SystemStatus, error) {
	switch SystemStatus(s) {
	case SystemActive, SystemPaused, SystemInactive:
		return SystemStatus(s), nil
	default:
		return "", fmt.Errorf("unknown system status: %s", s)
	}
}

// Next advances the fixed cycle Active -> Paused -> Inactive -> Active.
func (s SystemStatus) Next() SystemStatus {
	switch s {
	case SystemActive:
		return SystemPaused
	case SystemPaused:
		return SystemInactive
	default:
		return SystemActive
	}
}

// StatusToggle holds the current system status behind a lock so concurrent
// surface requests see a consistent value.
type StatusToggle struct {
	mu      sync.Mutex
	current SystemStatus
}

func NewStatusToggle() *StatusToggle {
	return &StatusToggle{current: SystemActive}
}

func (t *StatusToggle) Current() SystemStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Cycle advances to the next status and returns it.
func (t *StatusToggle) Cycle() SystemStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = t.current.Next()
	return t.current
}
