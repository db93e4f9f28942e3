package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"MoonColony/internal/api"
)

var (
	email, password, userName   string
	loginColony, registerColony bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and keep the session on this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		user, err := app.session.Login(ctx, email, password)
		if err != nil {
			return err
		}
		if loginColony && !user.Live {
			if user, err = app.client.CreateColony(ctx, user.ID); err != nil {
				return err
			}
		}
		printUser(cmd, user)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account, sign in and found a colony",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		user, err := app.session.Register(ctx, userName, email, password)
		if err != nil {
			return err
		}
		if registerColony {
			if user, err = app.client.CreateColony(ctx, user.ID); err != nil {
				return err
			}
		}
		printUser(cmd, user)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		if err := app.session.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, ok := app.session.Current()
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> id=%d since %s\n",
			sess.Name, sess.Email, sess.UserID, sess.SignedInAt.Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVarP(&email, "email", "e", "", "account email")
		c.Flags().StringVarP(&password, "password", "p", "", "account password")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")
	}
	registerCmd.Flags().StringVarP(&userName, "name", "n", "", "display name")
	_ = registerCmd.MarkFlagRequired("name")
	registerCmd.Flags().BoolVar(&registerColony, "new-colony", true, "found a colony right after registering")
	loginCmd.Flags().BoolVar(&loginColony, "new-colony", false, "found a colony when the user has none")
}

func printUser(cmd *cobra.Command, u *api.UserInfo) {
	state := "no colony"
	if u.Live {
		state = fmt.Sprintf("day %d, %d days before delivery", u.CurDay, u.DayBeforeDelivery)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (id %d): %s\n", u.Name, u.ID, state)
}
