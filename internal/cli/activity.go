package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tunedeck/internal/app"
	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/ui/render"
)

func newSearchCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search songs by title, artist, or pinyin",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.Join(args, " ")
			results, err := rt.app.Search(cmd.Context(), keyword)
			if err != nil {
				// The results stand even when the history could not be saved.
				fmt.Fprintln(cmd.ErrOrStderr(), errmsg.FormatWith(errmsg.OpSearch, keyword, err))
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No songs match %q\n", strings.TrimSpace(keyword))
				return nil
			}
			ids := make([]string, len(results))
			for i, s := range results {
				ids[i] = s.ID
			}
			fmt.Fprintln(out, songTable(rt.app, ids))
			return nil
		},
	}
}

func newHistoryCommand(rt *runtime) *cobra.Command {
	var clearHistory bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if clearHistory {
				if err := rt.app.ClearSearchHistory(cmd.Context()); err != nil {
					return opError(errmsg.OpHistoryClear, err)
				}
				fmt.Fprintln(out, "Search history cleared")
				return nil
			}

			entries := rt.app.SearchHistory(cmd.Context())
			if len(entries) == 0 {
				fmt.Fprintln(out, "No recent searches")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{render.Sanitize(e.Keyword), humanize.Comma(int64(e.ResultCount)), ago(e.SearchTime)})
			}
			fmt.Fprintln(out, render.Table([]string{"KEYWORD", "RESULTS", "WHEN"}, rows, maxColumn))
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearHistory, "clear", false, "clear the search history")
	return cmd
}

func newDownloadCommand(rt *runtime) *cobra.Command {
	var quality string
	cmd := &cobra.Command{
		Use:   "download <song>",
		Short: "Record a song download",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := rt.app.RecordDownload(cmd.Context(), args[0], quality)
			if err != nil {
				return opErrorWith(errmsg.OpDownload, args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s (%s)\n", render.Sanitize(rec.SongName), rec.Quality)
			return nil
		},
	}
	cmd.Flags().StringVar(&quality, "quality", app.QualityStandard,
		"audio quality: "+strings.Join(app.Qualities(), ", "))
	return cmd
}

func newDownloadsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "downloads",
		Short: "List recorded downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recs := rt.app.Downloads(cmd.Context())
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No downloads")
				return nil
			}
			rows := make([][]string, 0, len(recs))
			for _, r := range recs {
				rows = append(rows, []string{r.SongID, render.Sanitize(r.SongName), r.Quality, ago(r.DownloadTime)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Table([]string{"SONG", "TITLE", "QUALITY", "WHEN"}, rows, maxColumn))
			return nil
		},
	}
}

func newCommentCommand(rt *runtime) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "comment <song> <text>",
		Short: "Comment on a song",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := rt.app.RecordComment(cmd.Context(), args[0], user, strings.Join(args[1:], " "))
			if err != nil {
				return opErrorWith(errmsg.OpComment, args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Commented on %s\n", render.Sanitize(rec.SongName))
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "local", "comment author")
	return cmd
}

func newCommentsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "comments [song]",
		Short: "List comments, optionally for one song",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var songID string
			if len(args) == 1 {
				songID = args[0]
			}
			comments := rt.app.Comments(cmd.Context(), songID)
			if len(comments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No comments")
				return nil
			}
			rows := make([][]string, 0, len(comments))
			for _, c := range comments {
				rows = append(rows, []string{render.Sanitize(c.SongName), render.Sanitize(c.UserID), render.Sanitize(c.Content), ago(c.SendTime)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Table([]string{"SONG", "USER", "COMMENT", "WHEN"}, rows, maxColumn))
			return nil
		},
	}
}

func newFollowCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "follow <artist>",
		Short: "Follow an artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := rt.app.FollowArtist(cmd.Context(), args[0])
			if err != nil {
				return opErrorWith(errmsg.OpArtistFollow, args[0], err)
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Already following %s\n", artistName(rt.app.Catalog(), args[0]))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Following %s\n", artistName(rt.app.Catalog(), args[0]))
			return nil
		},
	}
}

func newUnfollowCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "unfollow <artist>",
		Short: "Stop following an artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := rt.app.UnfollowArtist(cmd.Context(), args[0])
			if err != nil {
				return opErrorWith(errmsg.OpArtistUnfollow, args[0], err)
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Not following %s\n", artistName(rt.app.Catalog(), args[0]))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unfollowed %s\n", artistName(rt.app.Catalog(), args[0]))
			return nil
		},
	}
}

func newFollowingCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "following",
		Short: "List followed artists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			artists := rt.app.FollowedArtists(cmd.Context())
			if len(artists) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Not following anyone")
				return nil
			}
			rows := make([][]string, 0, len(artists))
			for _, a := range artists {
				songs := len(rt.app.Catalog().ArtistSongs(a.ID))
				rows = append(rows, []string{a.ID, render.Sanitize(a.Name), english.Plural(songs, "song", "songs")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Table([]string{"ID", "ARTIST", "CATALOG"}, rows, maxColumn))
			return nil
		},
	}
}

func newStyleCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "style [style-id]",
		Short: "Show or change the now-playing style",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				if err := rt.app.ChangePlaybackStyle(cmd.Context(), args[0]); err != nil {
					return opErrorWith(errmsg.OpStyleChange, args[0], err)
				}
				s, _ := catalog.FindPlayerStyle(args[0])
				fmt.Fprintf(out, "Player style set to %s\n", s.Name)
				return nil
			}

			current := rt.app.CurrentPlaybackStyle(cmd.Context())
			styles := catalog.PlayerStyles()
			rows := make([][]string, 0, len(styles))
			for _, s := range styles {
				mark := ""
				if s.ID == current {
					mark = "*"
				}
				rows = append(rows, []string{mark, s.ID, s.Name, s.Category, s.Description})
			}
			fmt.Fprintln(out, render.Table([]string{"", "ID", "NAME", "KIND", "DESCRIPTION"}, rows, 40))
			return nil
		},
	}
}

func artistName(c *catalog.Catalog, id string) string {
	if a, ok := c.Artist(id); ok {
		return render.Sanitize(a.Name)
	}
	return id
}

func ago(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return humanize.Time(time.UnixMilli(ms))
}
