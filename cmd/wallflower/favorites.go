package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/wallflower/internal/app"
	"github.com/five82/wallflower/internal/wallpaper"
)

func newFavoritesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage saved favorites",
	}
	cmd.AddCommand(
		newFavoritesListCmd(opts),
		newFavoritesRemoveCmd(opts),
	)
	return cmd
}

func newFavoritesListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorites, most recently added first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.Bootstrap(cmd.Context(), opts.appOptions())
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			printFavorites(cmd.OutOrStdout(), svc.Favorites.List())
			return nil
		},
	}
}

func newFavoritesRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>...",
		Short: "Remove favorites by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Bootstrap(cmd.Context(), opts.appOptions())
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			var missing []string
			for _, id := range args {
				if svc.Favorites.Remove(id) {
					fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
					continue
				}
				missing = append(missing, id)
			}
			if len(missing) > 0 {
				return fmt.Errorf("not a favorite: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}

// terminalWidth reports the width of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	return width, true
}

// printFavorites writes a styled list to terminals and tab-separated rows
// (id, author, handle, added, url) everywhere else.
func printFavorites(w io.Writer, list []wallpaper.Record) {
	width, tty := terminalWidth(w)
	if !tty {
		for _, rec := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", rec.ID, rec.Author(), rec.Handle(), addedAt(rec), rec.DownloadURL())
		}
		return
	}

	if len(list) == 0 {
		fmt.Fprintln(w, lipgloss.NewStyle().Faint(true).Render("No favorites yet"))
		return
	}

	heart := lipgloss.NewStyle().Foreground(lipgloss.Color("#c94f6d")).Render("♥")
	title := lipgloss.NewStyle().Bold(true).MaxWidth(width - 2)
	meta := lipgloss.NewStyle().Faint(true).MaxWidth(width - 2)
	for _, rec := range list {
		fmt.Fprintf(w, "%s %s\n", heart, title.Render(rec.Title()))
		fmt.Fprintf(w, "  %s\n", meta.Render(fmt.Sprintf("%s  %s %s  added %s", rec.ID, rec.Author(), rec.Handle(), addedAt(rec))))
	}
}

func addedAt(rec wallpaper.Record) string {
	if rec.AddedAt <= 0 {
		return "-"
	}
	return time.UnixMilli(rec.AddedAt).Format("2006-01-02 15:04")
}
