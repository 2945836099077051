package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"bu-ethesis/internal/adapters/persistence/repositories"
	"bu-ethesis/internal/core/services"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword
var readPassword = term.ReadPassword

func newSetPasswordCmd() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Set the password of an account, creating it when missing",
		Long: `set-password replaces the stored password hash of an account and ends its sessions.
Without --password the new password is read from the terminal (or one line of stdin).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				password = p
			}

			ctx := cmd.Context()
			e, closeEnv, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer closeEnv()

			auth := services.NewAuthService(e.userRepo, repositories.NewSessionRepository(e.db), e.cfg, e.log)
			created, err := auth.SetPassword(ctx, username, password)
			if err != nil {
				return err
			}

			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Account created: %s\n", username)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Password updated: %s\n", username)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "admin", "Account to update")
	cmd.Flags().StringVarP(&password, "password", "p", "", "New password (prompted when empty)")
	return cmd
}

func promptPassword(in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "New password: ")
		first, err := readPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}

		fmt.Fprint(out, "Repeat password: ")
		second, err := readPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}

		if string(first) != string(second) {
			return "", errors.New("passwords do not match")
		}
		return string(first), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("no password given")
	}
	return line, nil
}
