package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/marquee/internal/domain"
)

func newWatchlistCommand(ctx *commandContext) *cobra.Command {
	watchlistCmd := &cobra.Command{
		Use:     "watchlist",
		Aliases: []string{"wl"},
		Short:   "Manage titles saved to watch later",
	}

	watchlistCmd.AddCommand(newWatchlistAddCommand(ctx))
	watchlistCmd.AddCommand(newWatchlistRemoveCommand(ctx))
	watchlistCmd.AddCommand(newWatchlistListCommand(ctx))
	watchlistCmd.AddCommand(newWatchlistSearchCommand(ctx))

	return watchlistCmd
}

func newWatchlistAddCommand(ctx *commandContext) *cobra.Command {
	var poster string

	cmd := &cobra.Command{
		Use:   "add <movie|tv> <id> <title...>",
		Short: "Add a title to the watchlist",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey(args[0], args[1])
			if err != nil {
				return err
			}
			title := strings.TrimSpace(strings.Join(args[2:], " "))
			if title == "" {
				return fmt.Errorf("title must not be empty")
			}

			return ctx.withEnv(func(env *environment) error {
				added := env.watchlist.Add(domain.WatchlistItemInput{
					ID:         key.ID,
					Type:       key.Type,
					Title:      title,
					PosterPath: poster,
				})
				if !added {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is already on your watchlist\n", title)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s has been added to your watchlist.\n", title)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&poster, "poster", "", "Poster image path from the metadata API")
	return cmd
}

func newWatchlistRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <movie|tv> <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a title from the watchlist",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey(args[0], args[1])
			if err != nil {
				return err
			}

			return ctx.withEnv(func(env *environment) error {
				if !env.watchlist.Remove(key.ID, key.Type) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not on your watchlist\n", key)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s has been removed from your watchlist.\n", key)
				return nil
			})
		},
	}
}

func newWatchlistListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the watchlist in the order titles were added",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(func(env *environment) error {
				return printWatchlist(cmd.OutOrStdout(), env.watchlist.List(), env.images, asJSON)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newWatchlistSearchCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Fuzzy search watchlist titles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return ctx.withEnv(func(env *environment) error {
				return printWatchlist(cmd.OutOrStdout(), env.watchlist.Search(query), env.images, asJSON)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func printWatchlist(out io.Writer, entries []domain.WatchlistEntry, images domain.ImageResolver, asJSON bool) error {
	if asJSON {
		return writeJSON(out, watchlistRecords(entries, images))
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "Watchlist is empty")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Type.Label(),
			strconv.Itoa(e.ID),
			e.Title,
			relativeTime(e.AddedAt),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Type", "ID", "Title", "Added"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
	))
	return nil
}
