package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/mdblog"
)

func (c *cli) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog over HTTP",
		Long: `The serve command loads every post, then serves the site until
interrupted. With --watch, edits to the posts directory are picked up
without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, mdblog.New(c.cfg, mdblog.ViewFuncs{}))
		},
	}
	cmd.Flags().String("addr", ":3000", "listen address")
	cmd.Flags().String("posts", "posts", "directory holding the markdown posts")
	cmd.Flags().Bool("watch", false, "reload posts when files change")
	cmd.Flags().String("env", mdblog.EnvDevelopment, "environment: development, test or production")
	return cmd
}

// serve runs app until ctx is cancelled or the server fails. Init runs
// before the server goroutine so Shutdown and Close never race with it.
func serve(ctx context.Context, app *mdblog.App) error {
	defer app.Close()
	if err := app.Init(); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}
