package tasksync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/phrazzld/smarttask/internal/domain/priority"
	"github.com/phrazzld/smarttask/internal/events"
	"github.com/phrazzld/smarttask/internal/platform/taskapi"
	"github.com/phrazzld/smarttask/internal/redact"
	"github.com/phrazzld/smarttask/internal/session"
	"github.com/phrazzld/smarttask/internal/taskstore"
)

// LocalIDPrefix marks ids assigned to tasks that exist only on this client.
const LocalIDPrefix = "local-"

// DefaultRequestTimeout bounds remote calls when Config leaves it unset.
const DefaultRequestTimeout = 10 * time.Second

// Remote is the task backend as seen by the controller.
type Remote interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, input domain.TaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	SetToken(token string)
}

var _ Remote = (*taskapi.Client)(nil)

// Config holds the controller settings.
type Config struct {
	// RequestTimeout bounds every remote call.
	RequestTimeout time.Duration
}

// Controller owns the mode state machine and the task store, and mediates
// every read and write between the caller and the backend.
type Controller struct {
	remote  Remote
	store   *taskstore.Store
	engine  *priority.Engine
	emitter events.EventEmitter
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
	timeout time.Duration

	mu       sync.Mutex
	mode     Mode
	loadSeq  uint64
	lastLoad *Error
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the time source used for "today".
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithEngine sets the scoring engine used for local scores.
func WithEngine(e *priority.Engine) Option {
	return func(c *Controller) { c.engine = e }
}

// WithEmitter sets the destination for controller events.
func WithEmitter(e events.EventEmitter) Option {
	return func(c *Controller) { c.emitter = e }
}

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithIDGenerator sets the generator for local task ids.
func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) { c.newID = gen }
}

// NewController creates a controller in ModeUnknown. A nil store starts empty.
func NewController(remote Remote, store *taskstore.Store, cfg Config, opts ...Option) *Controller {
	if store == nil {
		store = taskstore.New()
	}
	c := &Controller{
		remote:  remote,
		store:   store,
		engine:  priority.NewDefaultEngine(),
		emitter: events.NopEmitter{},
		logger:  slog.Default(),
		now:     time.Now,
		newID:   func() string { return LocalIDPrefix + uuid.NewString() },
		timeout: cfg.RequestTimeout,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultRequestTimeout
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "tasksync")
	return c
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Tasks returns the tasks sorted by descending score.
func (c *Controller) Tasks() []domain.Task {
	return c.store.List()
}

// LastLoadError returns the failure that caused the most recent switch to
// ModeFallback, or nil after a successful load.
func (c *Controller) LastLoadError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastLoad == nil {
		return nil
	}
	return c.lastLoad
}

// SetSession attaches the session credential to subsequent remote calls.
// A nil session clears it.
func (c *Controller) SetSession(s *session.Session) {
	if s.Valid() {
		c.remote.SetToken(s.Token)
		return
	}
	c.remote.SetToken("")
}

// Load reads the task list from the server. On success the controller is
// Live and the store holds the server's tasks with their scores as sent.
// A 401 returns a KindAuth error and leaves mode and store untouched. Any
// other failure switches to Fallback with the demo task set; that is not an
// error.
func (c *Controller) Load(ctx context.Context) error {
	const op = "load"

	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	tctx, cancel := context.WithTimeout(ctx, c.timeout)
	tasks, err := c.remote.ListTasks(tctx)
	cancel()

	if !c.currentLoad(seq) {
		c.discardStale(ctx, op, "")
		return nil
	}

	if err == nil {
		err = validateRemote(tasks...)
	}
	if err == nil {
		if err = c.store.ReplaceAll(tasks); err == nil {
			c.setMode(ctx, ModeLive, nil)
			c.logger.Info("tasks loaded", "mode", ModeLive.String(), "count", len(tasks))
			return nil
		}
		err = errors.Join(taskapi.ErrInvalidResponse, err)
	}

	if errors.Is(err, taskapi.ErrUnauthorized) {
		c.logger.Warn("task list rejected: not authorized")
		return remoteError(op, KindConnectivity, err)
	}
	if ctx.Err() != nil {
		return remoteError(op, KindConnectivity, ctx.Err())
	}

	reason := remoteError(op, KindConnectivity, err)
	asOf := c.now()
	if rerr := c.store.ReplaceAll(FallbackSample(asOf, c.engine)); rerr != nil {
		return validationError(op, rerr)
	}
	c.setMode(ctx, ModeFallback, reason)
	c.logger.Warn("server unavailable, using local demo tasks",
		"reason", reason.Message,
		"error", redact.Error(err))
	return nil
}

// Retry re-runs Load. It is only ever triggered by the caller.
func (c *Controller) Retry(ctx context.Context) error {
	c.logger.Info("retry requested", "mode", c.Mode().String())
	return c.Load(ctx)
}

// AddTask validates input and creates the task. In Live mode the server
// assigns the id and score; in Fallback mode both are assigned locally.
func (c *Controller) AddTask(ctx context.Context, input domain.TaskInput) (domain.Task, error) {
	const op = "add_task"

	asOf := c.now()
	if err := input.Validate(domain.DateOf(asOf)); err != nil {
		return domain.Task{}, validationError(op, err)
	}
	input = input.Normalize()

	switch c.Mode() {
	case ModeUnknown:
		return domain.Task{}, validationError(op, ErrNotLoaded)

	case ModeFallback:
		task := c.engine.Scored(input.ToTask(c.newID()), asOf)
		if err := c.store.Add(task); err != nil {
			return domain.Task{}, validationError(op, err)
		}
		c.emit(ctx, events.TypeTaskAdded, events.TaskPayload{TaskID: task.ID, Title: task.Title, Mode: ModeFallback.String()})
		return task, nil
	}

	gen := c.store.Generation()
	tctx, cancel := context.WithTimeout(ctx, c.timeout)
	created, err := c.remote.CreateTask(tctx, input)
	cancel()
	if err == nil {
		err = validateRemote(created)
	}
	if err != nil {
		c.logger.Warn("create task failed", "error", redact.Error(err))
		return domain.Task{}, remoteError(op, KindWrite, err)
	}

	if c.store.Generation() != gen || c.Mode() != ModeLive {
		c.discardStale(ctx, op, created.ID)
		return created, nil
	}
	if err := c.store.Add(created); err != nil {
		c.logger.Error("server returned a task id already in the list", "task_id", created.ID)
		return domain.Task{}, &Error{Kind: KindWrite, Op: op, Message: "server returned a duplicate task id", Err: err}
	}
	c.emit(ctx, events.TypeTaskAdded, events.TaskPayload{TaskID: created.ID, Title: created.Title, Mode: ModeLive.String()})
	return created, nil
}

// DeleteTask removes the task immediately. In Live mode the removal is
// undone unless the server answers 2xx.
func (c *Controller) DeleteTask(ctx context.Context, id string) error {
	const op = "delete_task"

	mode := c.Mode()
	if mode == ModeUnknown {
		return validationError(op, ErrNotLoaded)
	}

	removed, err := c.store.Remove(id)
	if err != nil {
		return validationError(op, err)
	}

	if mode == ModeFallback {
		c.emit(ctx, events.TypeTaskDeleted, events.TaskPayload{TaskID: id, Title: removed.Task.Title, Mode: mode.String()})
		return nil
	}

	tctx, cancel := context.WithTimeout(ctx, c.timeout)
	err = c.remote.DeleteTask(tctx, id)
	cancel()
	if err == nil {
		c.emit(ctx, events.TypeTaskDeleted, events.TaskPayload{TaskID: id, Title: removed.Task.Title, Mode: mode.String()})
		return nil
	}

	c.logger.Warn("delete task failed", "task_id", id, "error", redact.Error(err))
	if c.store.Generation() != removed.Generation {
		c.discardStale(ctx, op, id)
	} else if rerr := c.store.Restore(removed); rerr != nil {
		c.logger.Error("failed to restore task after rejected delete", "task_id", id, "error", rerr)
	} else {
		c.emit(ctx, events.TypeDeleteRolledBack, events.TaskPayload{TaskID: id, Title: removed.Task.Title, Mode: mode.String()})
	}
	return remoteError(op, KindWrite, err)
}

// validateRemote rejects server tasks that break the task invariants, such
// as a negative score.
func validateRemote(tasks ...domain.Task) error {
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: task %q: %w", taskapi.ErrInvalidResponse, t.ID, err)
		}
	}
	return nil
}

func (c *Controller) currentLoad(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return seq == c.loadSeq
}

func (c *Controller) setMode(ctx context.Context, mode Mode, reason *Error) {
	c.mu.Lock()
	prev := c.mode
	c.mode = mode
	c.lastLoad = reason
	c.mu.Unlock()

	if prev != mode {
		c.logger.Info("mode changed", "from", prev.String(), "to", mode.String())
		c.emit(ctx, events.TypeModeChanged, events.ModeChangedPayload{From: prev.String(), To: mode.String()})
	}
}

func (c *Controller) discardStale(ctx context.Context, op, taskID string) {
	c.logger.Info("discarding stale response", "operation", op, "task_id", taskID)
	c.emit(ctx, events.TypeStaleResponseDiscarded, events.TaskPayload{TaskID: taskID, Mode: c.Mode().String()})
}

// emit publishes an event. Handler failures are logged and never fail the operation.
func (c *Controller) emit(ctx context.Context, eventType string, payload interface{}) {
	event, err := events.NewEvent(eventType, payload)
	if err != nil {
		c.logger.Error("failed to build event", "event_type", eventType, "error", err)
		return
	}
	if err := c.emitter.EmitEvent(ctx, event); err != nil {
		c.logger.Warn("event handler failed", "event_type", eventType, "error", err)
	}
}
