package scheduler_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/scheduler"
	"github.com/nvbach/omnitask/internal/store"
	"github.com/nvbach/omnitask/tests/testutil"
)

func seedCatalog(t *testing.T, s *store.SQLiteStore, active ...bool) {
	t.Helper()
	for i, a := range active {
		g := model.SeedGames()[i]
		g.Active = a
		require.NoError(t, s.CreateGame(context.Background(), g))
	}
}

func TestTickNeverFiresWhenDisabled(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	settings := model.DefaultGameSettings()
	settings.Enabled = false
	require.NoError(t, s.PutGameSettings(ctx, settings))
	seedCatalog(t, s, true, true)

	gate := scheduler.NewPopupGate()
	// Probability 1 would fire every tick if the gate were the only check.
	trigger := scheduler.NewTrigger(s, gate, rand.New(rand.NewSource(1)), time.Minute, 1.0)

	for i := 0; i < 50; i++ {
		game, err := trigger.Tick(ctx)
		require.NoError(t, err)
		assert.Nil(t, game)
	}
	assert.False(t, gate.Active())
}

func TestTickFiresWithProbabilityOne(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutGameSettings(ctx, model.DefaultGameSettings()))
	seedCatalog(t, s, true, true, true)

	gate := scheduler.NewPopupGate()
	trigger := scheduler.NewTrigger(s, gate, rand.New(rand.NewSource(1)), time.Minute, 1.0)

	game, err := trigger.Tick(ctx)
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.True(t, game.Active)

	// The gate was acquired atomically with the decision.
	assert.True(t, gate.Active())
}

func TestTickNeverFiresWithProbabilityZero(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutGameSettings(ctx, model.DefaultGameSettings()))
	seedCatalog(t, s, true)

	gate := scheduler.NewPopupGate()
	trigger := scheduler.NewTrigger(s, gate, rand.New(rand.NewSource(1)), time.Minute, 0)

	for i := 0; i < 50; i++ {
		game, err := trigger.Tick(ctx)
		require.NoError(t, err)
		assert.Nil(t, game)
	}
}

func TestTickSkipsWhilePopupActive(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutGameSettings(ctx, model.DefaultGameSettings()))
	seedCatalog(t, s, true)

	gate := scheduler.NewPopupGate()
	require.True(t, gate.TryAcquire())

	trigger := scheduler.NewTrigger(s, gate, rand.New(rand.NewSource(1)), time.Minute, 1.0)
	game, err := trigger.Tick(ctx)
	require.NoError(t, err)
	assert.Nil(t, game)

	// Released gate lets the next tick through.
	gate.Release()
	game, err = trigger.Tick(ctx)
	require.NoError(t, err)
	assert.NotNil(t, game)
}

func TestTickSkipsWithNoActiveGames(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutGameSettings(ctx, model.DefaultGameSettings()))
	seedCatalog(t, s, false, false) // catalog present but all inactive

	gate := scheduler.NewPopupGate()
	trigger := scheduler.NewTrigger(s, gate, rand.New(rand.NewSource(1)), time.Minute, 1.0)

	game, err := trigger.Tick(ctx)
	require.NoError(t, err)
	assert.Nil(t, game)
	assert.False(t, gate.Active())
}

func TestManualTriggerBypassesProbabilityOnly(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutGameSettings(ctx, model.DefaultGameSettings()))
	seedCatalog(t, s, true)

	gate := scheduler.NewPopupGate()
	// Probability zero: the background draw would never fire.
	trigger := scheduler.NewTrigger(s, gate, rand.New(rand.NewSource(1)), time.Minute, 0)

	game, err := trigger.ManualTrigger(ctx)
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.True(t, gate.Active())
}

func TestManualTriggerErrorsWithoutEligibleGames(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.PutGameSettings(ctx, model.DefaultGameSettings()))

	gate := scheduler.NewPopupGate()
	trigger := scheduler.NewTrigger(s, gate, rand.New(rand.NewSource(1)), time.Minute, 1.0)

	_, err := trigger.ManualTrigger(ctx)
	assert.ErrorIs(t, err, scheduler.ErrNoEligibleGames)
	assert.False(t, gate.Active())
}

func TestManualTriggerErrorsWhilePopupOpen(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutGameSettings(ctx, model.DefaultGameSettings()))
	seedCatalog(t, s, true)

	gate := scheduler.NewPopupGate()
	trigger := scheduler.NewTrigger(s, gate, rand.New(rand.NewSource(1)), time.Minute, 0)

	_, err := trigger.ManualTrigger(ctx)
	require.NoError(t, err)

	_, err = trigger.ManualTrigger(ctx)
	assert.ErrorIs(t, err, scheduler.ErrPopupActive)
}

func TestConcurrentTickAndManualTrigger(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutGameSettings(ctx, model.DefaultGameSettings()))
	seedCatalog(t, s, true, true)

	gate := scheduler.NewPopupGate()
	// Probability zero keeps Tick from holding the gate, but it still
	// draws every pass; both goroutines hit the rand source.
	trigger := scheduler.NewTrigger(s, gate, rand.New(rand.NewSource(1)), time.Minute, 0)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_, err := trigger.Tick(ctx)
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			game, err := trigger.ManualTrigger(ctx)
			assert.NoError(t, err)
			if game != nil {
				gate.Release()
			}
		}
	}()
	wg.Wait()

	assert.False(t, gate.Active())
}

func TestPopupGateSingleHolder(t *testing.T) {
	gate := scheduler.NewPopupGate()

	assert.False(t, gate.Active())
	assert.True(t, gate.TryAcquire())
	assert.True(t, gate.Active())
	assert.False(t, gate.TryAcquire())

	gate.Release()
	assert.False(t, gate.Active())
	assert.True(t, gate.TryAcquire())
}

func TestTriggerStopIsIdempotent(t *testing.T) {
	s := testutil.NewTestStore(t)
	gate := scheduler.NewPopupGate()
	trigger := scheduler.NewTrigger(s, gate, rand.New(rand.NewSource(1)), time.Minute, 0)

	_ = trigger.Start()
	trigger.Stop()
	trigger.Stop()
}
