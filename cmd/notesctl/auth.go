package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

type credentialFlags struct {
	username      string
	password      string
	passwordStdin bool
}

func (f *credentialFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.username, "username", "u", "", "Username (prompted when omitted)")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "Password (visible in shell history; prefer --password-stdin)")
	cmd.Flags().BoolVar(&f.passwordStdin, "password-stdin", false, "Read the password from stdin")
}

// resolve fills in whatever was not given on the command line from stdin.
func (f *credentialFlags) resolve(cmd *cobra.Command) (string, string, error) {
	in := bufio.NewReader(cmd.InOrStdin())
	prompt := cmd.ErrOrStderr()

	username := strings.TrimSpace(f.username)
	if username == "" {
		if f.passwordStdin {
			return "", "", errors.New("--username is required with --password-stdin")
		}
		fmt.Fprint(prompt, "Username: ")
		line, err := readLine(in)
		if err != nil {
			return "", "", err
		}
		username = strings.TrimSpace(line)
	}

	password := f.password
	if password == "" {
		if !f.passwordStdin {
			fmt.Fprint(prompt, "Password: ")
		}
		line, err := readLine(in)
		if err != nil {
			return "", "", err
		}
		password = line
	}

	if username == "" || password == "" {
		return "", "", errors.New("username and password are required")
	}
	return username, password, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func signInCmd(app *cli) *cobra.Command {
	var creds credentialFlags

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, password, err := creds.resolve(cmd)
			if err != nil {
				return err
			}
			if _, err := app.client.SignIn(cmd.Context(), username, password); err != nil {
				return fmt.Errorf("sign in: %w", err)
			}
			writeLine(cmd.OutOrStdout(), "Signed in as %s.", username)
			return nil
		},
	}
	creds.register(cmd)
	return cmd
}

func signUpCmd(app *cli) *cobra.Command {
	var creds credentialFlags

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, password, err := creds.resolve(cmd)
			if err != nil {
				return err
			}
			if _, err := app.client.SignUp(cmd.Context(), username, password); err != nil {
				return fmt.Errorf("sign up: %w", err)
			}
			writeLine(cmd.OutOrStdout(), "Account %s created. You are signed in.", username)
			return nil
		},
	}
	creds.register(cmd)
	return cmd
}

func logoutCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.client.Logout(cmd.Context()); err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func statusCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session and server status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			writeLine(out, "Server:  %s", app.cfg.Server)
			if live, err := app.client.GetLiveness(ctx); err != nil {
				writeLine(out, "Health:  unreachable (%v)", err)
			} else {
				writeLine(out, "Health:  %s (version %s, up %s)", live.Status, live.Version, live.Uptime)
			}

			if app.client.IsAuthenticated(ctx) {
				writeLine(out, "Session: signed in")
			} else {
				writeLine(out, "Session: signed out")
			}
			return nil
		},
	}
}
