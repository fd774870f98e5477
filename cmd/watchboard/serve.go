package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"watchboard/config"
	"watchboard/handlers"
	"watchboard/services/board"
	"watchboard/services/catalog"
	"watchboard/services/search"
	"watchboard/services/watchlist"
	"watchboard/utils"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var seedPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the board HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			if w := config.LogWriter(settings.Logging); w != nil {
				log.SetOutput(w)
				defer w.Close()
			}

			initial, err := loadSeed(seedPath)
			if err != nil {
				return err
			}

			svc := watchlist.NewService(newAggregator(settings.Providers), initial)
			srv := &http.Server{
				Addr:              settings.Server.Addr,
				Handler:           newAPIRouter(svc),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, srv)
		},
	}
	cmd.Flags().StringVar(&seedPath, "seed", "", "Board file (exported watchlist.json) to start from")
	return cmd
}

func newAggregator(settings config.ProviderSettings) *search.Aggregator {
	itunesOpts, tvmazeOpts := config.ProviderOptions(settings)
	return search.NewAggregator(
		catalog.NewITunesClient(itunesOpts),
		catalog.NewTVMazeClient(tvmazeOpts),
	)
}

func newAPIRouter(svc *watchlist.Service) http.Handler {
	r := utils.NewRouter()
	handlers.Routes{
		Search:    handlers.NewSearchHandler(svc),
		Board:     handlers.NewBoardHandler(svc),
		Transfer:  handlers.NewTransferHandler(svc),
		ClientLog: handlers.NewClientLogHandler(log.Default()),
	}.Register(r)
	return r
}

func loadSeed(path string) (board.Board, error) {
	if path == "" {
		return nil, nil
	}
	data, err := afero.ReadFile(appFs, path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	b, err := board.Import(data)
	if err != nil {
		return nil, fmt.Errorf("load seed %s: %w", path, err)
	}
	log.Printf("[main] seeded board with %d items from %s", b.Len(), path)
	return b, nil
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[main] listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Printf("[main] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
