package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trovehq/trove/pkg/client"
)

var (
	noteColor  string
	notePinned bool
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage notes",
}

var notesAddCmd = &cobra.Command{
	Use:   "add <title> <content>",
	Short: "Add a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		note, err := s.notes.Add(cmd.Context(), client.NoteDraft{
			Title:   args[0],
			Content: args[1],
			Color:   noteColor,
			Pinned:  notePinned,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added note %s\n", note.ID)
		return nil
	},
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.notes.Fetch(cmd.Context()); err != nil {
			return err
		}

		for _, n := range s.notes.Items() {
			pin := " "
			if n.Pinned {
				pin = "*"
			}
			fmt.Printf("%s %-36s  %s\n", pin, n.ID, n.Title)
		}
		return nil
	},
}

var notesPinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Pin a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		pinned := true
		if _, err := s.notes.Update(cmd.Context(), args[0], client.NotePatch{Pinned: &pinned}); err != nil {
			return err
		}
		fmt.Println("pinned")
		return nil
	},
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.notes.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil
	},
}

func init() {
	notesAddCmd.Flags().StringVar(&noteColor, "color", "", "note color (hex)")
	notesAddCmd.Flags().BoolVar(&notePinned, "pinned", false, "pin the note")

	notesCmd.AddCommand(notesAddCmd)
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesPinCmd)
	notesCmd.AddCommand(notesRmCmd)
}
