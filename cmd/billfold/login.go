package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/billfold/billfold/internal/api"
	"github.com/billfold/billfold/internal/cli"
	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/session"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the remote backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			baseURL := viper.GetString("backend.url")
			if baseURL == "" {
				return fmt.Errorf("%w: set backend.url in the config file", common.ErrMissingConfig)
			}

			email, _ := cmd.Flags().GetString("email")
			if email == "" {
				fmt.Print("Email: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read email: %w", err)
				}
				email = strings.TrimSpace(line)
			}

			fmt.Print("Password: ")
			password, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			sess, err := api.Login(cmd.Context(), baseURL, email, string(password))
			if err != nil {
				return err
			}
			if err := sess.Save(); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("Logged in"))
			return nil
		},
	}

	cmd.Flags().String("email", "", "account email")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and remove the stored session",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := session.Clear(); err != nil {
				return err
			}
			fmt.Println(cli.SubtleStyle.Render("Logged out"))
			return nil
		},
	}
}
