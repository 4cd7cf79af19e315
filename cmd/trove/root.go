package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/trovehq/trove/pkg/client"
	"github.com/trovehq/trove/pkg/localstore"
	"github.com/trovehq/trove/pkg/store"
)

var rootCmd = &cobra.Command{
	Use:   "trove",
	Short: "Notes, tasks and ideas from the terminal",
	Long: `Trove keeps notes, tasks and ideas. Without an account everything
lives in local files under ~/.trove; after registering, the same
commands work against the server and any guest records are synced
into the new account.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(ideasCmd)
	rootCmd.AddCommand(themeCmd)
}

// authState is the durable auth slice of client state.
type authState struct {
	Token string      `json:"token"`
	User  client.User `json:"user"`
}

// session wires the local files, the API client and the three
// dual-mode collections for one CLI invocation.
type session struct {
	files         *localstore.Store
	client        *client.Client
	authenticated bool

	notes *store.Notes
	tasks *store.Tasks
	ideas *store.Ideas
}

func newSession() (*session, error) {
	dir := os.Getenv("TROVE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".trove")
	}

	files, err := localstore.New(dir)
	if err != nil {
		return nil, err
	}

	server := os.Getenv("TROVE_SERVER")
	if server == "" {
		server = "http://localhost:8080"
	}
	cl := client.New(server)

	s := &session{files: files, client: cl}

	var auth authState
	if err := files.Load(localstore.KeyAuth, &auth); err == nil && auth.Token != "" {
		cl.SetToken(auth.Token)
		s.authenticated = true
	} else if err != nil && !errors.Is(err, localstore.ErrNotFound) {
		return nil, err
	}

	if s.notes, err = store.NewNotes(files, cl, s.authenticated); err != nil {
		return nil, err
	}
	if s.tasks, err = store.NewTasks(files, cl, s.authenticated); err != nil {
		return nil, err
	}
	if s.ideas, err = store.NewIdeas(files, cl, s.authenticated); err != nil {
		return nil, err
	}
	return s, nil
}

// guestSession forces the local backends regardless of a stored token;
// the register flow uses it to gather records for sync.
func guestSession() (*session, error) {
	s, err := newSession()
	if err != nil {
		return nil, err
	}
	if !s.authenticated {
		return s, nil
	}

	s.authenticated = false
	if s.notes, err = store.NewNotes(s.files, s.client, false); err != nil {
		return nil, err
	}
	if s.tasks, err = store.NewTasks(s.files, s.client, false); err != nil {
		return nil, err
	}
	if s.ideas, err = store.NewIdeas(s.files, s.client, false); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) saveAuth(token string, user client.User) error {
	return s.files.Save(localstore.KeyAuth, authState{Token: token, User: user})
}
