// Package cli implements portfolioctl, the admin command line for the
// portfolio service.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/client"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// errNotLoggedIn is shown instead of a bare 401.
var errNotLoggedIn = errors.New("not logged in, run `portfolioctl login` first")

type app struct {
	sessionPath string
	server      string
	verbose     bool

	session *SessionFile
	api     *client.Client
	log     *logrus.Logger
}

// NewRootCommand builds the portfolioctl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "portfolioctl",
		Short:         "Manage the portfolio: galleries, videos, blog posts and links",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if a.verbose {
				level = "debug"
			}
			a.log = logger.New(level, "text")
			a.log.SetOutput(cmd.ErrOrStderr())
			return a.open()
		},
	}

	root.PersistentFlags().StringVar(&a.sessionPath, "session", DefaultSessionPath(), "session file")
	root.PersistentFlags().StringVar(&a.server, "server", "", "portfolio base URL (remembered after login)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.loginCommand(),
		a.logoutCommand(),
		a.statusCommand(),
		a.galleriesCommand(),
		a.videosCommand(),
		a.blogsCommand(),
		a.settingsCommand(),
		a.browseCommand(),
	)
	return root
}

// Execute runs portfolioctl with ctx.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (a *app) open() error {
	session, err := LoadSession(a.sessionPath)
	if err != nil {
		return err
	}
	session.SetServer(a.server)

	api, err := client.New(session.Server())
	if err != nil {
		return err
	}
	if token := session.Token(); token != "" {
		api.SetSessionToken(token)
	}

	a.session = session
	a.api = api
	a.log.WithFields(logrus.Fields{"server": session.Server(), "session": a.sessionPath}).Debug("session loaded")
	return nil
}

// check turns a 401 into errNotLoggedIn and forgets the stale session.
func (a *app) check(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, client.ErrUnauthorized) {
		if saveErr := a.session.SetAuthenticated(false); saveErr != nil {
			a.log.WithError(saveErr).Warn("failed to clear session")
		}
		return errNotLoggedIn
	}
	return err
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
