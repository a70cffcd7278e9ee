package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the blog and store the credential pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.Close()

			rl, err := readline.New("Username: ")
			if err != nil {
				return err
			}
			defer rl.Close()

			if username == "" {
				line, err := rl.Readline()
				if err != nil {
					return err
				}
				username = strings.TrimSpace(line)
			}
			if username == "" {
				return fmt.Errorf("username is required")
			}

			password, err := rl.ReadPassword("Password: ")
			if err != nil {
				return err
			}

			auth, err := env.services.Auth.Login(cmd.Context(), username, string(password))
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if auth.User.Role == "admin" {
				if err := env.db.SetAdminSession(true); err != nil {
					return err
				}
			}

			name := auth.User.Nickname
			if name == "" {
				name = auth.User.Username
			}
			fmt.Printf("Logged in as %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username to log in with")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the session and clear stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.Close()

			// Tokens are cleared locally even when the server call
			// fails; a dead session must not keep working.
			if err := env.services.Auth.Logout(cmd.Context()); err != nil {
				fmt.Printf("Logged out (server notification failed: %v)\n", err)
			} else {
				fmt.Println("Logged out")
			}
			return env.db.SetAdminSession(false)
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.Close()

			if access, _ := env.db.Tokens(); access == "" {
				fmt.Println("Not logged in")
				return nil
			}

			user, err := env.services.Auth.Me(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching profile: %w", err)
			}

			fmt.Printf("%s (%s)\n", user.Username, user.Role)
			if user.Nickname != "" {
				fmt.Printf("  Nickname: %s\n", user.Nickname)
			}
			if user.Email != "" {
				fmt.Printf("  Email:    %s\n", user.Email)
			}
			if user.Bio != "" {
				fmt.Printf("  Bio:      %s\n", user.Bio)
			}
			fmt.Printf("  Articles: %d\n", user.ArticlesCount)
			return nil
		},
	}
}
