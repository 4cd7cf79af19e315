package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trovehq/trove/pkg/client"
)

var (
	ideaCategory string
	ideaTags     []string
	ideaListCat  string
)

var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Manage ideas",
}

var ideasAddCmd = &cobra.Command{
	Use:   "add <title> <description>",
	Short: "Add an idea",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		idea, err := s.ideas.Add(cmd.Context(), client.IdeaDraft{
			Title:       args[0],
			Description: args[1],
			Category:    ideaCategory,
			Tags:        ideaTags,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added idea %s\n", idea.ID)
		return nil
	},
}

var ideasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ideas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.ideas.Fetch(cmd.Context()); err != nil {
			return err
		}

		for _, i := range s.ideas.Items() {
			if ideaListCat != "" && i.Category != ideaListCat {
				continue
			}
			printIdea(i)
		}
		return nil
	},
}

var ideasSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search ideas by title, description or tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		query := args[0]

		if s.authenticated {
			ideas, err := s.client.SearchIdeas(cmd.Context(), query)
			if err != nil {
				return err
			}
			for _, i := range ideas {
				printIdea(i)
			}
			return nil
		}

		for _, i := range s.ideas.Items() {
			if ideaMatches(i, query) {
				printIdea(i)
			}
		}
		return nil
	},
}

var ideasRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.ideas.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil
	},
}

func printIdea(i client.Idea) {
	tags := ""
	if len(i.Tags) > 0 {
		tags = " [" + strings.Join(i.Tags, ",") + "]"
	}
	fmt.Printf("%-36s  %-12s %s%s\n", i.ID, i.Category, i.Title, tags)
}

// ideaMatches applies the same rules as the server search: substring
// match on title and description, exact match on tags, all
// case-insensitive.
func ideaMatches(i client.Idea, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(i.Title), q) ||
		strings.Contains(strings.ToLower(i.Description), q) {
		return true
	}
	for _, tag := range i.Tags {
		if strings.EqualFold(tag, query) {
			return true
		}
	}
	return false
}

func init() {
	ideasAddCmd.Flags().StringVar(&ideaCategory, "category", "", "idea category")
	ideasAddCmd.Flags().StringSliceVar(&ideaTags, "tags", nil, "comma separated tags")
	ideasListCmd.Flags().StringVar(&ideaListCat, "category", "", "only show this category")

	ideasCmd.AddCommand(ideasAddCmd)
	ideasCmd.AddCommand(ideasListCmd)
	ideasCmd.AddCommand(ideasSearchCmd)
	ideasCmd.AddCommand(ideasRmCmd)
}
