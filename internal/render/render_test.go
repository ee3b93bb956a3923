package render

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/phrazzld/smarttask/internal/service/tasksync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

func TestScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "13.50", Score(13.5))
	assert.Equal(t, "3.33", Score(10.0/3))
	assert.Equal(t, "0.00", Score(0))
}

func TestDaysLeft(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2d overdue", DaysLeft(-2))
	assert.Equal(t, "today", DaysLeft(0))
	assert.Equal(t, "tomorrow", DaysLeft(1))
	assert.Equal(t, "9d", DaysLeft(9))
}

func TestTaskTable(t *testing.T) {
	t.Parallel()

	today := domain.DateOf(asOf)
	out := TaskTable([]domain.Task{
		{ID: "2", Title: "MVP project presentation", Deadline: today.AddDays(1), Importance: 9, Complexity: 2, Score: 13.5},
		{ID: "1", Title: strings.Repeat("x", 60), Deadline: today.AddDays(-3), Importance: 10, Complexity: 5, Score: 3},
	}, asOf)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "SCORE")
	assert.Contains(t, lines[1], "MVP project presentation")
	assert.Contains(t, lines[1], "13.50")
	assert.Contains(t, lines[1], "tomorrow")
	assert.Contains(t, lines[2], "3.00")
	assert.Contains(t, lines[2], "3d overdue")
	assert.Contains(t, lines[2], "…")
	assert.NotContains(t, lines[2], strings.Repeat("x", 41))
}

func TestTaskTable_Empty(t *testing.T) {
	t.Parallel()
	assert.Contains(t, TaskTable(nil, asOf), "No tasks.")
}

func TestModeBanner(t *testing.T) {
	t.Parallel()

	fallback := ModeBanner(tasksync.ModeFallback, errors.New("load failed: server unreachable"))
	assert.Contains(t, fallback, "DEMO MODE")
	assert.Contains(t, fallback, "server unreachable")

	assert.Contains(t, ModeBanner(tasksync.ModeLive, nil), "LIVE")
	assert.Contains(t, ModeBanner(tasksync.ModeUnknown, nil), "not loaded")
}
