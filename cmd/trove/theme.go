package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trovehq/trove/pkg/localstore"
)

const defaultTheme = "light"

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark]",
	Short: "Show or set the color theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			theme := defaultTheme
			if err := s.files.Load(localstore.KeyTheme, &theme); err != nil && !errors.Is(err, localstore.ErrNotFound) {
				return err
			}
			fmt.Println(theme)
			return nil
		}

		theme := args[0]
		if theme != "light" && theme != "dark" {
			return fmt.Errorf("unknown theme %q (want light or dark)", theme)
		}
		if err := s.files.Save(localstore.KeyTheme, theme); err != nil {
			return err
		}
		fmt.Println(theme)
		return nil
	},
}
