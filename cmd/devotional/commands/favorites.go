package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haivivi/devotional/pkg/cli"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favorited study references",
	Long: `Manage favorited study references.

Favorites are stored locally in ~/.devotional/data/favorites.`,
}

var favoritesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List favorites",
	RunE: func(cmd *cobra.Command, args []string) error {
		fav, closeFav, err := openFavorites()
		if err != nil {
			return err
		}
		defer closeFav()

		refs, err := fav.List(context.Background())
		if err != nil {
			return err
		}
		if len(refs) == 0 && !outputJSON && query == "" {
			cli.PrintInfo("No favorites yet")
			return nil
		}
		return outputResult(refs)
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <reference>",
	Short: "Add a reference to favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := strings.Join(args, " ")
		fav, closeFav, err := openFavorites()
		if err != nil {
			return err
		}
		defer closeFav()

		if err := fav.Add(context.Background(), ref); err != nil {
			return err
		}
		cli.PrintSuccess("Added %q", ref)
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove <reference>",
	Aliases: []string{"rm"},
	Short:   "Remove a reference from favorites",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := strings.Join(args, " ")
		fav, closeFav, err := openFavorites()
		if err != nil {
			return err
		}
		defer closeFav()

		if err := fav.Remove(context.Background(), ref); err != nil {
			return err
		}
		cli.PrintSuccess("Removed %q", ref)
		return nil
	},
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <reference>",
	Short: "Add a reference if absent, remove it otherwise",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := strings.Join(args, " ")
		fav, closeFav, err := openFavorites()
		if err != nil {
			return err
		}
		defer closeFav()

		added, err := fav.Toggle(context.Background(), ref)
		if err != nil {
			return err
		}
		if added {
			cli.PrintSuccess("Added %q", ref)
		} else {
			cli.PrintSuccess("Removed %q", ref)
		}
		return nil
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesToggleCmd)
}
