package tasksync

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/smarttask/internal/platform/taskapi"
	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	tests := []struct {
		kind     Kind
		sentinel error
		name     string
	}{
		{KindValidation, ErrValidation, "validation"},
		{KindConnectivity, ErrConnectivity, "connectivity"},
		{KindWrite, ErrWrite, "write"},
		{KindAuth, ErrAuth, "auth"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := fmt.Errorf("outer: %w", &Error{Kind: tc.kind, Op: "op", Message: "msg", Err: cause})
			assert.ErrorIs(t, err, tc.sentinel)
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, tc.kind, KindOf(err))
			assert.Equal(t, tc.name, tc.kind.String())
			for _, other := range tests {
				if other.kind != tc.kind {
					assert.NotErrorIs(t, err, other.sentinel)
				}
			}
		})
	}

	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
}

func TestRemoteErrorClassification(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindAuth, remoteError("op", KindWrite, fmt.Errorf("x: %w", taskapi.ErrUnauthorized)).Kind)
	assert.Equal(t, KindWrite, remoteError("op", KindWrite, taskapi.ErrUnreachable).Kind)

	assert.Equal(t, "request timed out", describe(context.DeadlineExceeded))
	assert.Equal(t, "server unreachable", describe(taskapi.ErrUnreachable))
	assert.Equal(t, "bad thing", describe(&taskapi.StatusError{StatusCode: 400, Message: "bad thing"}))
	assert.Equal(t, "add_task failed: bad thing",
		remoteError("add_task", KindWrite, &taskapi.StatusError{StatusCode: 400, Message: "bad thing"}).Error())
}
