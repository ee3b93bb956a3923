package taskapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNewClient_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := NewClient("ftp://example.com")
	assert.Error(t, err)
	_, err = NewClient("://bad")
	assert.Error(t, err)
}

func TestListTasks(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 7, "title": "Deploy", "deadline": "2026-10-16", "importance": 10, "complexity": 5, "priority": 6.0},
			{"id": "b", "title": "Docs", "deadline": "2026-11-01", "importance": 3, "complexity": 1, "score": 3.0}
		]`))
	})
	c.SetToken("tok")

	tasks, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "7", tasks[0].ID)
	assert.Equal(t, 6.0, tasks[0].Score)
	assert.Equal(t, domain.NewDate(2026, time.October, 16), tasks[0].Deadline)
	assert.Equal(t, "b", tasks[1].ID)
}

func TestListTasks_EmptyBodyArray(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	tasks, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var in domain.TaskInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Write tests", in.Title)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.Task{
			ID: "srv-1", Title: in.Title, Deadline: in.Deadline,
			Importance: in.Importance, Complexity: in.Complexity, Score: 4.5,
		})
	})

	task, err := c.CreateTask(context.Background(), domain.TaskInput{
		Title: "Write tests", Deadline: domain.NewDate(2026, time.October, 20), Importance: 6, Complexity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", task.ID)
	assert.Equal(t, 4.5, task.Score)
}

func TestCreateTask_MissingID(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"title":"x"}`))
	})

	_, err := c.CreateTask(context.Background(), domain.TaskInput{Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestDeleteTask_EscapesID(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/tasks/a%2Fb", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"status":"deleted"}`))
	})

	assert.NoError(t, c.DeleteTask(context.Background(), "a/b"))
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    error
		wantStatus int
		wantMsg    string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"detail":"Invalid token"}`, wantErr: ErrUnauthorized, wantStatus: 401, wantMsg: "Invalid token"},
		{name: "detail string", status: http.StatusNotFound, body: `{"detail":"Task not found"}`, wantStatus: 404, wantMsg: "Task not found"},
		{name: "error field", status: http.StatusBadRequest, body: `{"error":"bad input"}`, wantStatus: 400, wantMsg: "bad input"},
		{name: "validation list", status: http.StatusUnprocessableEntity, body: `{"detail":[{"msg":"field required"},{"msg":"too long"}]}`, wantStatus: 422, wantMsg: "field required; too long"},
		{name: "non json", status: http.StatusBadGateway, body: `<html>oops</html>`, wantStatus: 502, wantMsg: "Bad Gateway"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := c.ListTasks(context.Background())
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NotErrorIs(t, err, ErrUnauthorized)
			}
			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tc.wantStatus, se.StatusCode)
			assert.Equal(t, tc.wantMsg, se.Message)
		})
	}
}

func TestUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewClient(base)
	require.NoError(t, err)

	_, err = c.ListTasks(context.Background())
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	err := c.DeleteTask(context.Background(), "1")
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Contains(t, err.Error(), "timed out")
}

func TestLoginAndRegister(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body credentialsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch r.URL.Path {
		case "/register":
			if body.Username == "taken" {
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"detail":"User already exists"}`))
				return
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"message":"User created successfully"}`))
		case "/login":
			if body.Password != "secret-pass" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"detail":"Account locked after 5 attempts"}`))
				return
			}
			_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"bearer"}`))
		}
	})

	require.NoError(t, c.Register(context.Background(), "ann", "secret-pass"))
	err := c.Register(context.Background(), "taken", "secret-pass")
	assert.True(t, IsConflict(err))

	cred, err := c.Login(context.Background(), "ann", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, Credential{AccessToken: "abc", TokenType: "bearer"}, cred)

	_, err = c.Login(context.Background(), "ann", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Account locked after 5 attempts", se.Message)
}
