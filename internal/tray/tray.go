package tray

import "context"

// App is the desktop badge for pending approvals. The default build has
// no tray dependency; build with -tags systray for the real one.
type App interface {
	Run(ctx context.Context) error
	SetPending(count int, visible bool)
}

type Noop struct{}

func NewNoop() App { return Noop{} }

func (Noop) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (Noop) SetPending(int, bool) {}
