// Package cli implements the tunedeck command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/app"
	"github.com/llehouerou/tunedeck/internal/config"
	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/logger"
)

// maxColumn caps table cells.
const maxColumn = 32

// runtime holds what commands share. app is opened lazily before the first
// command runs unless it was provided up front.
type runtime struct {
	configPath string
	cfg        *config.Config
	app        *app.App
	logger     *zap.Logger
	console    *logger.Console
	owned      bool
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&runtime{})
}

func newRootCommand(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:   "tunedeck",
		Short: "tunedeck is a terminal music library and player.",
		Long: "tunedeck browses the bundled music catalog, keeps playlists and favorites, " +
			"records your activity, and plays through queues with a simulated clock.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.play(cmd, "", "")
		},
	}
	root.PersistentFlags().StringVar(&rt.configPath, "config", "", "config file (default: xdg config locations)")

	root.AddCommand(
		newPlaylistsCommand(rt),
		newFavoriteCommand(rt),
		newSearchCommand(rt),
		newHistoryCommand(rt),
		newDownloadCommand(rt),
		newDownloadsCommand(rt),
		newCommentCommand(rt),
		newCommentsCommand(rt),
		newFollowCommand(rt),
		newUnfollowCommand(rt),
		newFollowingCommand(rt),
		newStyleCommand(rt),
		newPlayCommand(rt),
	)
	return root
}

func (rt *runtime) open() error {
	if rt.app != nil {
		return nil
	}

	var err error
	if rt.configPath != "" {
		rt.cfg, err = config.LoadFrom(rt.configPath)
	} else {
		rt.cfg, err = config.Load()
	}
	if err != nil {
		return opError(errmsg.OpConfigLoad, err)
	}

	lc := rt.cfg.GetLogConfig()
	rt.console = logger.NewConsole(os.Stderr)
	rt.logger, err = logger.New(logger.Config{
		Console:    rt.console,
		Level:      lc.Level,
		File:       lc.File,
		MaxSizeMB:  lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
		MaxAgeDays: lc.MaxAgeDays,
	})
	if err != nil {
		return opError(errmsg.OpInitialize, err)
	}

	rt.app, err = app.Open(rt.cfg, rt.logger)
	if err != nil {
		return opError(errmsg.OpInitialize, err)
	}
	rt.owned = true
	return nil
}

func (rt *runtime) close() error {
	if !rt.owned {
		return nil
	}
	rt.owned = false
	err := rt.app.Close()
	_ = rt.logger.Sync()
	return err
}

// quiet mutes console logging while a full-screen view runs. Entries still
// reach the log file when one is configured.
func (rt *runtime) quiet() (restore func()) {
	if rt.console == nil {
		return func() {}
	}
	return rt.console.Mute()
}

func (rt *runtime) tickInterval() time.Duration {
	if rt.cfg == nil {
		return time.Second
	}
	return rt.cfg.GetTickInterval()
}

// cmdError renders as a user-facing message and unwraps to the cause.
type cmdError struct {
	op  errmsg.Op
	ctx string
	err error
}

func (e *cmdError) Error() string {
	return errmsg.FormatWith(e.op, e.ctx, e.err)
}

func (e *cmdError) Unwrap() error {
	return e.err
}

func opError(op errmsg.Op, err error) error {
	return &cmdError{op: op, err: err}
}

func opErrorWith(op errmsg.Op, context string, err error) error {
	return &cmdError{op: op, ctx: context, err: err}
}
