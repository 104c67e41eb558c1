package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nvbach/omnitask/internal/model"
)

func TestComputeAggregatesStatusesAndDueToday(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	today := now.Format(model.DateLayout)

	tasks := []model.Task{
		{Title: "a", Date: today, Status: model.StatusPending},
		{Title: "b", Date: today, Status: model.StatusOnGoing},
		{Title: "c", Date: today, Status: model.StatusDone}, // closed, not "due"
		{Title: "d", Date: "2026-09-02", Status: model.StatusPending},
	}
	scores := []model.GameScore{
		{Score: 120}, {Score: 340}, {Score: 90},
	}

	st := Compute(tasks, scores, now)

	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 2, st.ByStatus[model.StatusPending])
	assert.Equal(t, 1, st.ByStatus[model.StatusDone])
	assert.InDelta(t, 0.25, st.DoneRate, 0.001)
	assert.Equal(t, 2, st.DueToday)
	assert.Equal(t, 3, st.GamesTotal)
	assert.Equal(t, 340, st.GamesBest)
}

func TestComputeEmptySnapshot(t *testing.T) {
	st := Compute(nil, nil, time.Now())
	assert.Zero(t, st.Total)
	assert.Zero(t, st.DoneRate)
	assert.Zero(t, st.GamesBest)
}
