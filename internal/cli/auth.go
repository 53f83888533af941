package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/auth"
	"github.com/spf13/cobra"
)

// PasswordEnv is read by login when --password is not given.
const PasswordEnv = "PORTFOLIO_ADMIN_PASSWORD"

func (a *app) loginCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with the admin password",
		Long: `Log in with the admin password. The password is taken from --password,
then $PORTFOLIO_ADMIN_PASSWORD, then the first line of stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gate := auth.NewGate(a.session, a.api)
			if gate.Mount() == auth.StatusAuthenticated {
				if ok, err := a.api.SessionStatus(cmd.Context()); err == nil && ok {
					printf(cmd, "already logged in to %s\n", a.session.Server())
					return nil
				}
			}

			if password == "" {
				password = os.Getenv(PasswordEnv)
			}
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if err := gate.Submit(cmd.Context(), password); err != nil {
				return fmt.Errorf("%s: %w", gate.Message(), err)
			}
			if err := a.saveToken(); err != nil {
				if logoutErr := gate.Logout(); logoutErr != nil {
					return errors.Join(err, logoutErr)
				}
				return err
			}
			printf(cmd, "logged in to %s\n", a.session.Server())
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	return cmd
}

// errNoSessionCookie means the server accepted the password but the cookie
// jar kept nothing, typically a Secure cookie sent over plain http.
var errNoSessionCookie = errors.New("server accepted the password but sent no usable session cookie (is SESSION_COOKIE_SECURE set on a plain http server?)")

func (a *app) saveToken() error {
	token := a.api.SessionToken()
	if token == "" {
		return errNoSessionCookie
	}
	return a.session.SetToken(token)
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverErr := a.api.Logout(cmd.Context())
			gate := auth.NewGate(a.session, a.api)
			gate.Mount()
			if err := gate.Logout(); err != nil {
				return err
			}
			if serverErr != nil {
				printf(cmd, "logged out locally; server said: %v\n", serverErr)
				return nil
			}
			printf(cmd, "logged out\n")
			return nil
		},
	}
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the server and whether the session is valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.api.SessionStatus(cmd.Context())
			if err != nil {
				return err
			}
			state := auth.StatusUnauthenticated
			if ok {
				state = auth.StatusAuthenticated
			}
			printf(cmd, "server: %s\nsession: %s\n", a.session.Server(), state)
			return nil
		},
	}
}
