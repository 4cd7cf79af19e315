package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trovehq/trove/pkg/localstore"
	"github.com/trovehq/trove/pkg/store"
)

var registerName string

var registerCmd = &cobra.Command{
	Use:   "register <email> <password>",
	Short: "Create an account and sync any guest records into it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := guestSession()
		if err != nil {
			return err
		}

		syncer := &store.Syncer{
			Client: s.client,
			Notes:  s.notes,
			Tasks:  s.tasks,
			Ideas:  s.ideas,
		}

		auth, result, syncErr := syncer.RegisterAndSync(cmd.Context(), args[0], args[1], registerName)
		if auth == nil {
			return syncErr
		}

		if err := s.saveAuth(auth.Token, auth.User); err != nil {
			return err
		}

		fmt.Printf("registered as %s\n", auth.User.Email)
		if result.NotesImported+result.TasksImported+result.IdeasImported > 0 {
			fmt.Printf("synced %d notes, %d tasks, %d ideas\n",
				result.NotesImported, result.TasksImported, result.IdeasImported)
		}
		if syncErr != nil {
			// Registration held; failed types keep their local files.
			fmt.Printf("some records were not synced: %v\n", syncErr)
		}
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in to an existing account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		auth, err := s.client.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		if err := s.saveAuth(auth.Token, auth.User); err != nil {
			return err
		}
		fmt.Printf("logged in as %s\n", auth.User.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.files.Delete(localstore.KeyAuth); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		if !s.authenticated {
			fmt.Println("guest (local only)")
			return nil
		}

		user, err := s.client.Profile(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "display name")
}
