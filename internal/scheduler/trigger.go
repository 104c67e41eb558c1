// Package scheduler decides when a brain-break popup interrupts the
// session: a short periodic tick with a fixed per-tick probability, gated
// on the user's settings and on no popup already being open.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/store"
)

// ErrNoEligibleGames is returned by ManualTrigger when every catalog
// entry is inactive (or the catalog is empty).
var ErrNoEligibleGames = errors.New("no active games enabled")

// ErrPopupActive is returned by ManualTrigger while a popup is open.
var ErrPopupActive = errors.New("a game popup is already open")

// tickTimeout bounds a single tick's store access.
const tickTimeout = 10 * time.Second

// TriggeredMsg is a tea.Msg sent when the scheduler decides to open a
// popup. The gate has already been acquired on the receiver's behalf.
type TriggeredMsg struct {
	Game model.BrainGame
}

// Trigger is the background popup scheduler.
//
// The decision is a uniform draw against a fixed per-tick probability.
// The stored min/max interval and games-per-day settings are carried and
// user-editable but do not feed the draw; shouldFire is the single place
// to change if they ever should.
type Trigger struct {
	store       store.Store
	gate        *PopupGate
	r           *rand.Rand
	interval    time.Duration
	probability float64

	resultCh chan TriggeredMsg
	stopCh   chan struct{}
	mu       gosync.Mutex
	running  bool
}

// NewTrigger creates a trigger scheduler. r drives both the fire decision
// and the game pick, so tests can seed it; the trigger takes ownership
// of r and serializes all draws.
func NewTrigger(s store.Store, gate *PopupGate, r *rand.Rand, interval time.Duration, probability float64) *Trigger {
	return &Trigger{
		store:       s,
		gate:        gate,
		r:           r,
		interval:    interval,
		probability: probability,
		resultCh:    make(chan TriggeredMsg, 1),
		stopCh:      make(chan struct{}),
	}
}

// Tick runs one scheduling decision. All preconditions (settings
// enabled, gate free, at least one active game) must pass, and then the
// probability draw decides. On a fire the gate is acquired atomically
// with the decision and the chosen game is returned.
func (t *Trigger) Tick(ctx context.Context) (*model.BrainGame, error) {
	settings, err := t.store.GetGameSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading game settings: %w", err)
	}
	if !settings.Enabled {
		return nil, nil
	}
	if t.gate.Active() {
		return nil, nil
	}

	eligible, err := t.store.GetGames(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("reading game catalog: %w", err)
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	if !t.shouldFire() {
		return nil, nil
	}

	game := eligible[t.pick(len(eligible))]
	if !t.gate.TryAcquire() {
		// Lost the race to a manual trigger between the check and now.
		return nil, nil
	}

	return &game, nil
}

// ManualTrigger opens a popup on demand: no probability draw, but the
// eligibility check and the single-popup gate still apply.
func (t *Trigger) ManualTrigger(ctx context.Context) (*model.BrainGame, error) {
	eligible, err := t.store.GetGames(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("reading game catalog: %w", err)
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleGames
	}

	if !t.gate.TryAcquire() {
		return nil, ErrPopupActive
	}

	game := eligible[t.pick(len(eligible))]
	return &game, nil
}

// shouldFire draws once against the per-tick probability. Draws go
// through the mutex because Tick runs on the loop goroutine while
// ManualTrigger runs on a command goroutine, and *rand.Rand is not
// safe for concurrent use.
func (t *Trigger) shouldFire() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.r.Float64() < t.probability
}

// pick selects a game index from the shared rand source.
func (t *Trigger) pick(n int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.r.Intn(n)
}

// Start launches the tick loop and returns a tea.Cmd that delivers the
// next TriggeredMsg. Call WaitForNextResult after each message to keep
// the subscription alive.
func (t *Trigger) Start() tea.Cmd {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return t.waitForResult()
	}
	t.running = true
	t.mu.Unlock()

	go t.loop()

	return t.waitForResult()
}

// Stop halts the tick loop as part of session teardown.
func (t *Trigger) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	close(t.stopCh)
	t.running = false
}

// WaitForNextResult returns a tea.Cmd that waits for the next trigger.
func (t *Trigger) WaitForNextResult() tea.Cmd {
	return t.waitForResult()
}

func (t *Trigger) loop() {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			t.runTick()
		}
	}
}

func (t *Trigger) runTick() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	game, err := t.Tick(ctx)
	if err != nil || game == nil {
		return
	}

	select {
	case t.resultCh <- TriggeredMsg{Game: *game}:
	default:
		// Nobody is draining results; give the gate back so the next
		// tick can try again.
		t.gate.Release()
	}
}

func (t *Trigger) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-t.resultCh
		if !ok {
			return nil
		}
		return result
	}
}
