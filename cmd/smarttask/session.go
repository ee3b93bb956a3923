package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/smarttask/internal/render"
	"github.com/phrazzld/smarttask/internal/service/auth"
	"github.com/phrazzld/smarttask/internal/session"
	"github.com/spf13/cobra"
)

type credentialFlags struct {
	username string
	password string
}

func (f *credentialFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "Account password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("username")
}

// resolvePassword returns the flag value or reads one line from stdin.
func (c *cli) resolvePassword(f *credentialFlags) (string, error) {
	if f.password != "" {
		return f.password, nil
	}
	fmt.Fprint(c.errOut, "Password: ")
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("no password given")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *cli) loginCmd() *cobra.Command {
	var creds credentialFlags
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := c.resolvePassword(&creds)
			if err != nil {
				return err
			}
			sess, err := c.gate.Login(cmd.Context(), creds.username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Logged in as %s\n", sess.Username)
			return nil
		},
	}
	creds.bind(cmd)
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var creds credentialFlags
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := c.resolvePassword(&creds)
			if err != nil {
				return err
			}
			if err := c.gate.Register(cmd.Context(), creds.username, password); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Registered %s. Run 'smarttask login' to sign in.\n", creds.username)
			return nil
		},
	}
	creds.bind(cmd)
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.gate.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Logged out")
			return nil
		},
	}
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the server, session and connection mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(c.out, "Server:  %s\n", c.cfg.Client.APIURL)

			sess, err := c.gate.Current()
			switch {
			case err == nil:
				fmt.Fprintf(c.out, "Session: %s%s\n", sess.Username, expiryNote(sess.Token, c.now()))
			case errors.Is(err, session.ErrNoSession):
				fmt.Fprintln(c.out, "Session: not logged in")
			case errors.Is(err, session.ErrSessionExpired):
				fmt.Fprintln(c.out, "Session: expired")
			default:
				return err
			}

			if err := c.load(cmd.Context()); err != nil {
				fmt.Fprintf(c.out, "Mode:    %s\n", render.Error(err))
				return nil
			}
			fmt.Fprintf(c.out, "Mode:    %s\n", render.ModeBanner(c.controller.Mode(), c.controller.LastLoadError()))
			fmt.Fprintf(c.out, "Tasks:   %d\n", len(c.controller.Tasks()))
			return nil
		},
	}
}

func expiryNote(token string, now time.Time) string {
	exp, err := auth.TokenExpiry(token)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(" (expires in %s)", exp.Sub(now).Round(time.Minute))
}
