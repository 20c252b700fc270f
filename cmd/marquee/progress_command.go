package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/marquee/internal/domain"
)

func newProgressCommand(ctx *commandContext) *cobra.Command {
	progressCmd := &cobra.Command{
		Use:   "progress",
		Short: "Manage continue-watching progress",
	}

	progressCmd.AddCommand(newProgressSetCommand(ctx))
	progressCmd.AddCommand(newProgressListCommand(ctx))
	progressCmd.AddCommand(newProgressRemoveCommand(ctx))

	return progressCmd
}

func newProgressSetCommand(ctx *commandContext) *cobra.Command {
	var (
		title   string
		poster  string
		season  int
		episode int
	)

	cmd := &cobra.Command{
		Use:   "set <movie|tv> <id> <percent>",
		Short: "Record how far a title has been watched",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey(args[0], args[1])
			if err != nil {
				return err
			}
			percent, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(args[2]), "%"), 64)
			if err != nil || percent < 0 || percent > 100 {
				return fmt.Errorf("invalid percent %q: must be between 0 and 100", args[2])
			}
			if (season > 0) != (episode > 0) {
				return fmt.Errorf("--season and --episode must be given together")
			}
			if season > 0 && key.Type != domain.MediaTypeTV {
				return fmt.Errorf("episode context only applies to tv titles")
			}

			return ctx.withEnv(func(env *environment) error {
				entry := domain.WatchProgressEntry{
					ID:         key.ID,
					Type:       key.Type,
					Title:      strings.TrimSpace(title),
					PosterPath: poster,
					Progress:   percent,
				}
				if existing, ok := env.progress.Get(key.ID, key.Type); ok {
					if entry.Title == "" {
						entry.Title = existing.Title
					}
					if entry.PosterPath == "" {
						entry.PosterPath = existing.PosterPath
					}
					if season == 0 {
						entry.EpisodeInfo = existing.EpisodeInfo
					}
				}
				if entry.Title == "" {
					return fmt.Errorf("--title is required for a title with no recorded progress")
				}
				if season > 0 {
					entry.EpisodeInfo = &domain.EpisodeInfo{SeasonNumber: season, EpisodeNumber: episode}
				}

				env.progress.Upsert(entry)
				fmt.Fprintf(cmd.OutOrStdout(), "%s at %.0f%%\n", describeProgress(entry), percent)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Display title")
	cmd.Flags().StringVar(&poster, "poster", "", "Poster image path from the metadata API")
	cmd.Flags().IntVar(&season, "season", 0, "Season number (tv only)")
	cmd.Flags().IntVar(&episode, "episode", 0, "Episode number (tv only)")
	return cmd
}

func newProgressListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List titles in progress, most recently watched first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(func(env *environment) error {
				return printProgress(cmd.OutOrStdout(), env.progress.List(), env.images, asJSON)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newProgressRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <movie|tv> <id>",
		Aliases: []string{"rm"},
		Short:   "Forget progress for a title",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey(args[0], args[1])
			if err != nil {
				return err
			}

			return ctx.withEnv(func(env *environment) error {
				if !env.progress.Remove(key.ID, key.Type) {
					fmt.Fprintf(cmd.OutOrStdout(), "No progress recorded for %s\n", key)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed progress for %s\n", key)
				return nil
			})
		},
	}
}

func describeProgress(e domain.WatchProgressEntry) string {
	if label := e.EpisodeLabel(); label != "" {
		return e.Title + " " + label
	}
	return e.Title
}

func printProgress(out io.Writer, entries []domain.WatchProgressEntry, images domain.ImageResolver, asJSON bool) error {
	if asJSON {
		return writeJSON(out, progressRecords(entries, images))
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "Nothing in progress")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		episode := e.EpisodeLabel()
		if episode == "" {
			episode = "-"
		}
		rows = append(rows, []string{
			e.Type.Label(),
			strconv.Itoa(e.ID),
			e.Title,
			episode,
			fmt.Sprintf("%.0f%%", e.Progress),
			relativeTime(e.Timestamp),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Type", "ID", "Title", "Episode", "Progress", "Updated"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	))
	return nil
}
