// Package main is the entry point for the book metrics service.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bookmetrics/internal/book"
	"bookmetrics/internal/config"
	"bookmetrics/internal/httpx"
	"bookmetrics/internal/logging"
	"bookmetrics/internal/metrics"
	"bookmetrics/internal/platform/bookfeed"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:           "bookmetrics",
		Short:         "Serve sales and price metrics over a remote book catalog",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, newMetricsCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			feed := newFeedClient(cfg)
			handler := metrics.NewHTTPHandler(metrics.NewService(book.NewAPIProvider(feed)))

			rl := httpx.NewRateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
			defer rl.Stop()

			srv := newHTTPServer(cfg, newRouter(cfg, handler, feed, rl))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, srv)
		},
	}
}

func newMetricsCmd() *cobra.Command {
	var author, file string
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Compute metrics once and print them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var provider book.Provider = book.NewAPIProvider(newFeedClient(cfg))
			if file != "" {
				provider = book.NewFileProvider(file)
			}

			var filter *string
			if cmd.Flags().Changed("author") {
				filter = &author
			}

			result, err := metrics.NewService(provider).GetMetrics(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("%s: %s", metrics.FailureLabel, metrics.DescribeFailure(err))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVar(&author, "author", "", "only list books written by this author (case-insensitive)")
	cmd.Flags().StringVar(&file, "file", "", "read books from a local JSON file instead of the books API")
	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Global(cfg.Log)
	log.Debug().Msg(cfg.String())
	return cfg, nil
}

func newFeedClient(cfg *config.Config) *bookfeed.Client {
	return bookfeed.NewClient(bookfeed.Options{
		URL:        cfg.BooksAPI.URL,
		UserAgent:  cfg.BooksAPI.UserAgent,
		Timeout:    cfg.BooksAPI.Timeout,
		RPS:        cfg.BooksAPI.RPS,
		MaxRetries: cfg.BooksAPI.MaxRetries,
	})
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server error")
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info().Msg("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
