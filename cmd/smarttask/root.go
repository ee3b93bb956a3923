package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/smarttask/internal/config"
	"github.com/phrazzld/smarttask/internal/events"
	"github.com/phrazzld/smarttask/internal/platform/logger"
	"github.com/phrazzld/smarttask/internal/platform/taskapi"
	"github.com/phrazzld/smarttask/internal/render"
	"github.com/phrazzld/smarttask/internal/service/tasksync"
	"github.com/phrazzld/smarttask/internal/session"
	"github.com/phrazzld/smarttask/internal/taskstore"
	"github.com/spf13/cobra"
)

// cli carries the streams and the components built for one invocation.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	apiURL string
	now    func() time.Time

	cfg        *config.Config
	logger     *slog.Logger
	gate       *session.Gate
	controller *tasksync.Controller
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{in: in, out: out, errOut: errOut, now: time.Now}

	root := &cobra.Command{
		Use:   "smarttask",
		Short: "Prioritise tasks by importance, urgency and effort",
		Long: `smarttask keeps a task list sorted by priority score.

The score is importance times an urgency coefficient, divided by complexity.
When the server cannot be reached the list switches to demo mode: a local
sample set that can be edited but is not saved.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		RunE: c.runList,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "Task server URL (overrides client.api_url)")

	root.AddCommand(c.listCmd())
	root.AddCommand(c.addCmd())
	root.AddCommand(c.deleteCmd())
	root.AddCommand(c.retryCmd())
	root.AddCommand(c.statusCmd())
	root.AddCommand(c.loginCmd())
	root.AddCommand(c.registerCmd())
	root.AddCommand(c.logoutCmd())

	return root
}

// setup loads configuration and wires the client components.
func (c *cli) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.apiURL != "" {
		cfg.Client.APIURL = c.apiURL
	}
	c.cfg = cfg

	c.logger, err = logger.Setup(cfg.Client.LogLevel, c.errOut)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	client, err := taskapi.NewClient(cfg.Client.APIURL,
		taskapi.WithTimeout(cfg.Client.RequestTimeout),
		taskapi.WithLogger(c.logger))
	if err != nil {
		return err
	}

	c.gate = session.NewGate(client, session.NewFileStore(cfg.Client.SessionFile), c.logger)

	emitter := events.NewInMemoryEventEmitter(c.logger)
	emitter.RegisterHandler(events.HandlerFunc(c.notify))

	c.controller = tasksync.NewController(client, taskstore.New(),
		tasksync.Config{RequestTimeout: cfg.Client.RequestTimeout},
		tasksync.WithEmitter(emitter),
		tasksync.WithLogger(c.logger),
		tasksync.WithClock(c.now))
	return nil
}

// notify reports controller events the user should hear about.
func (c *cli) notify(_ context.Context, event *events.Event) error {
	switch event.Type {
	case events.TypeDeleteRolledBack:
		var p events.TaskPayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		fmt.Fprintf(c.errOut, "Could not delete %q; it has been restored.\n", p.Title)
	case events.TypeModeChanged:
		var p events.ModeChangedPayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		c.logger.Debug("mode changed", "from", p.From, "to", p.To)
	}
	return nil
}

// load attaches the saved session, if any, and reads the task list.
func (c *cli) load(ctx context.Context) error {
	sess, err := c.gate.Current()
	switch {
	case err == nil:
		c.controller.SetSession(sess)
	case errors.Is(err, session.ErrNoSession):
	case errors.Is(err, session.ErrSessionExpired):
		fmt.Fprintln(c.errOut, "Your session has expired.")
	default:
		return err
	}

	if err := c.controller.Load(ctx); err != nil {
		return withHint(err)
	}
	return nil
}

// withHint appends the next step for errors the user can act on.
func withHint(err error) error {
	if tasksync.KindOf(err) == tasksync.KindAuth || errors.Is(err, session.ErrSessionExpired) {
		return fmt.Errorf("%w (run 'smarttask login')", err)
	}
	return err
}

func (c *cli) printTasks() {
	fmt.Fprintln(c.out, render.ModeBanner(c.controller.Mode(), c.controller.LastLoadError()))
	fmt.Fprintln(c.out, render.TaskTable(c.controller.Tasks(), c.now()))
}
