// Package mocks provides shared test doubles for the interfaces used across
// the module.
//
// Each mock has a function field per interface method; a nil field falls
// back to simple default behaviour. Example:
//
//	remote := &mocks.MockTaskRemote{
//	    ListTasksFn: func(ctx context.Context) ([]domain.Task, error) {
//	        return nil, taskapi.ErrUnreachable
//	    },
//	}
//
// When adding a new mock, name the file after the interface being mocked.
package mocks
