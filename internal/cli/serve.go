package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/musicbox/internal/api"
)

const shutdownTimeout = 10 * time.Second

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
		cf      cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: `Serve the layout pipeline over HTTP.

  POST /api/v1/layout?track-num=1          MIDI body, returns layout JSON
  POST /api/v1/render/svg?page=2           MIDI body, returns one page
  GET  /api/v1/defaults                    default options
  GET  /healthz

Options are query parameters named like the config file keys. Use
--cache-url to share rendered results between replicas through Redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, maxBody, cf)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", api.DefaultMaxBodyBytes, "maximum MIDI upload size in bytes")
	cf.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, maxBody int64, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.New(runner, c.Logger, api.WithMaxBodyBytes(maxBody)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
