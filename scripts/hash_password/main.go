// Command hash_password prints a bcrypt hash to use as ADMIN_PASSWORD, so the
// plain password never has to sit in the environment.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/auth"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash_password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}

			hash, err := hashPassword(password, cost)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ADMIN_PASSWORD='%s'\n", hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// hashPassword hashes password and checks the result the way the server
// will.
func hashPassword(password string, cost int) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	if strings.TrimSpace(password) != password {
		return "", errors.New("password has leading or trailing whitespace")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := auth.NewVerifier(string(hash)).Verify(password); err != nil {
		return "", fmt.Errorf("verify hash: %w", err)
	}
	return string(hash), nil
}
