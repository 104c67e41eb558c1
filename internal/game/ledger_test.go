package game_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvbach/omnitask/internal/game"
	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/tests/testutil"
)

func TestLedgerRecordSkipsIncompleteResults(t *testing.T) {
	s := testutil.NewTestStore(t)
	ledger := game.NewLedger(s)
	g := model.BrainGame{Title: "Mental Math", Type: model.GameTypeMath}

	require.NoError(t, ledger.Record(context.Background(), g, game.Result{Completed: false}))

	scores, err := s.GetScores(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestLedgerRecordAppendsCompletedResults(t *testing.T) {
	s := testutil.NewTestStore(t)
	ledger := game.NewLedger(s)
	g := model.BrainGame{Title: "Mental Math", Type: model.GameTypeMath}

	require.NoError(t, ledger.Record(context.Background(), g, game.Result{Completed: true, Score: 280}))

	scores, err := s.GetScores(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "Mental Math", scores[0].GameTitle)
	assert.Equal(t, model.GameTypeMath, scores[0].Type)
	assert.Equal(t, 280, scores[0].Score)
	assert.NotEmpty(t, scores[0].ID)
	assert.False(t, scores[0].Date.IsZero())
}

func TestLedgerTopNOrdersDescendingWithDuplicates(t *testing.T) {
	s := testutil.NewTestStore(t)
	ledger := game.NewLedger(s)
	g := model.BrainGame{Title: "Reflex Test", Type: model.GameTypeReflex}

	for _, score := range []int{10, 90, 30, 90, 50, 70} {
		require.NoError(t, ledger.Record(context.Background(), g,
			game.Result{Completed: true, Score: score}))
	}

	top, err := ledger.TopN(context.Background(), 5)
	require.NoError(t, err)

	got := make([]int, len(top))
	for i, sc := range top {
		got[i] = sc.Score
	}
	assert.Equal(t, []int{90, 90, 70, 50, 30}, got)
}

func TestLedgerTopNWithFewerEntriesThanN(t *testing.T) {
	s := testutil.NewTestStore(t)
	ledger := game.NewLedger(s)
	g := model.BrainGame{Title: "Box Breathing", Type: model.GameTypeBreathing}

	require.NoError(t, ledger.Record(context.Background(), g,
		game.Result{Completed: true, Score: 50}))

	top, err := ledger.TopN(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}
