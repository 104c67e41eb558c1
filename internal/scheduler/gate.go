package scheduler

import gosync "sync"

// PopupGate is the single piece of state shared between the trigger loop
// and the popup lifecycle: whether a popup is currently open. Acquisition
// is atomic with the decision to open, so two trigger paths can never
// double-open.
type PopupGate struct {
	mu     gosync.Mutex
	active bool
}

// NewPopupGate returns a free gate.
func NewPopupGate() *PopupGate {
	return &PopupGate{}
}

// TryAcquire claims the gate if it is free and reports whether it did.
func (g *PopupGate) TryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active {
		return false
	}
	g.active = true
	return true
}

// Release frees the gate. Popup teardown calls this unconditionally, so
// releasing an already-free gate is harmless.
func (g *PopupGate) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = false
}

// Active reports whether a popup currently holds the gate.
func (g *PopupGate) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}
