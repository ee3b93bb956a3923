package tasksync

import (
	"testing"

	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFallbackSample(t *testing.T) {
	t.Parallel()

	sample := FallbackSample(testNow, nil)
	assert.Len(t, sample, 3)

	byID := map[string]domain.Task{}
	for _, task := range sample {
		byID[task.ID] = task
		assert.NoError(t, task.Validate())
		assert.False(t, task.Deadline.Before(today()), "sample tasks are never overdue")
	}

	// The two worked examples: 10 * 1.5 / 5 and 9 * 3.0 / 2.
	assert.Equal(t, 3.0, byID["1"].Score)
	assert.Equal(t, 13.5, byID["2"].Score)
	assert.Equal(t, 3.5, byID["3"].Score)
	assert.Equal(t, today().AddDays(1), byID["2"].Deadline)
}

func TestModeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown", ModeUnknown.String())
	assert.Equal(t, "live", ModeLive.String())
	assert.Equal(t, "fallback", ModeFallback.String())
}
