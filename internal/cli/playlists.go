package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tunedeck/internal/app"
	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/playlists"
	"github.com/llehouerou/tunedeck/internal/ui/render"
)

func newPlaylistsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "playlists",
		Aliases: []string{"pl"},
		Short:   "Manage playlists",
	}

	var private bool
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a playlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			p, err := rt.app.CreatePlaylist(cmd.Context(), name, private)
			if err != nil {
				return opErrorWith(errmsg.OpPlaylistCreate, name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", render.Sanitize(p.Name), p.ID)
			return nil
		},
	}
	create.Flags().BoolVar(&private, "private", false, "hide the playlist from others")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List playlists",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				pls := rt.app.Playlists().LoadPlaylists(cmd.Context())
				if len(pls) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No playlists")
					return nil
				}
				rows := make([][]string, 0, len(pls))
				for _, p := range pls {
					rows = append(rows, []string{p.ID, render.Sanitize(p.Name), strconv.Itoa(p.SongCount), ago(p.CreateTime)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), render.Table([]string{"ID", "NAME", "SONGS", "CREATED"}, rows, maxColumn))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <playlist>",
			Short: "Show the songs of a playlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, ok := rt.app.Playlists().Playlist(cmd.Context(), args[0])
				if !ok {
					return opErrorWith(errmsg.OpPlaylistLoad, args[0], app.ErrUnknownPlaylist)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s · %s\n", render.Sanitize(p.Name), english.Plural(p.SongCount, "song", "songs"))
				if p.Description != "" {
					fmt.Fprintln(out, render.Sanitize(p.Description))
				}
				if len(p.SongIDs) > 0 {
					fmt.Fprintln(out)
					fmt.Fprintln(out, songTable(rt.app, p.SongIDs))
				}
				return nil
			},
		},
		create,
		&cobra.Command{
			Use:   "add <playlist> <song>",
			Short: "Add a song to a playlist",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				outcome, err := rt.app.AddToPlaylist(cmd.Context(), args[0], args[1])
				if err != nil {
					return opErrorWith(errmsg.OpPlaylistAdd, args[1], err)
				}
				switch outcome {
				case playlists.OutcomeApplied:
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", args[1], args[0])
				case playlists.OutcomeAlreadyPresent:
					fmt.Fprintf(cmd.OutOrStdout(), "%s is already in %s\n", args[1], args[0])
				default:
					return opErrorWith(errmsg.OpPlaylistAdd, args[1], errors.New("playlist or song not found"))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:     "remove <playlist> <song>",
			Aliases: []string{"rm"},
			Short:   "Remove a song from a playlist",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				removed, err := rt.app.RemoveFromPlaylist(cmd.Context(), args[0], args[1])
				if err != nil {
					return opErrorWith(errmsg.OpPlaylistRemove, args[1], err)
				}
				if !removed {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not in %s\n", args[1], args[0])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", args[1], args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <playlist>",
			Short: "Delete a playlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				deleted, err := rt.app.DeletePlaylist(cmd.Context(), args[0])
				if err != nil {
					return opErrorWith(errmsg.OpPlaylistDelete, args[0], err)
				}
				if !deleted {
					return opErrorWith(errmsg.OpPlaylistDelete, args[0], errors.New("not found or protected"))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "collect <playlist>",
			Short: "Save a playlist to your collection",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := rt.app.CollectPlaylist(cmd.Context(), args[0]); err != nil {
					return opErrorWith(errmsg.OpPlaylistCollect, args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Collected %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func newFavoriteCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "favorite <song>",
		Aliases: []string{"fav"},
		Short:   "Toggle a song in My Favorites",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			favorited, err := rt.app.ToggleFavorite(cmd.Context(), args[0])
			if err != nil {
				return opErrorWith(errmsg.OpFavoriteToggle, args[0], err)
			}
			if favorited {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favorites\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites\n", args[0])
			}
			return nil
		},
	}
}

// songTable lists songs in the given order. Ids missing from the catalog
// are shown with their id only.
func songTable(a *app.App, ids []string) string {
	rows := make([][]string, 0, len(ids))
	for i, id := range ids {
		song, ok := a.Catalog().Song(id)
		if !ok {
			rows = append(rows, []string{strconv.Itoa(i + 1), id, "?", "", ""})
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			id,
			render.Sanitize(song.Name),
			render.Sanitize(song.Artist),
			render.Duration(song.Length()),
		})
	}
	return render.Table([]string{"#", "ID", "TITLE", "ARTIST", "LENGTH"}, rows, maxColumn)
}
