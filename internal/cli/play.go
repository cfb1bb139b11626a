package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/ui/nowplaying"
)

func newPlayCommand(rt *runtime) *cobra.Command {
	var playlistID, songID string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a playlist, or the whole catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.play(cmd, playlistID, songID)
		},
	}
	cmd.Flags().StringVar(&playlistID, "playlist", "", "playlist to queue (default: whole catalog)")
	cmd.Flags().StringVar(&songID, "song", "", "song to start from")
	return cmd
}

func (rt *runtime) play(cmd *cobra.Command, playlistID, songID string) error {
	ctx := cmd.Context()
	session, err := rt.app.OpenSession(ctx, playlistID, songID)
	if err != nil {
		return opErrorWith(errmsg.OpPlaybackOpen, playlistID, err)
	}
	defer session.Close()

	opts := []nowplaying.Option{nowplaying.WithInterval(rt.tickInterval())}
	if style, ok := catalog.FindPlayerStyle(rt.app.CurrentPlaybackStyle(ctx)); ok {
		opts = append(opts, nowplaying.WithStyle(style))
	}
	session.Play()

	m := nowplaying.New(session, rt.app.Catalog(), rt.app, opts...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	restore := rt.quiet()
	_, err = p.Run()
	restore()
	if err != nil {
		if rt.logger != nil {
			rt.logger.Error("player exited", zap.Error(err))
		}
		return err
	}
	return nil
}
