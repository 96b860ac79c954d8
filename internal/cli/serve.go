package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/convoview/internal/api"
	"github.com/MikeSquared-Agency/convoview/internal/archive"
	"github.com/MikeSquared-Agency/convoview/internal/hermes"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the export over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, cmd)
		},
	}
}

func (a *app) serve(ctx context.Context, cmd *cobra.Command) error {
	arc, err := a.loadArchive(cmd)
	if err != nil {
		return err
	}

	closeBus := a.announce(ctx, arc)
	defer closeBus()

	srv := api.NewServer(arc, api.Options{
		Port:           a.cfg.Port,
		AttachmentsDir: a.cfg.AttachmentsDir,
		CORSOrigin:     a.cfg.CORSOrigin,
	}, a.logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	a.logger.Info("convoview ready", "port", a.cfg.Port, "conversations", arc.Len())

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	a.logger.Info("convoview stopped")
	return nil
}

// announce publishes the load event when NATS is configured. Failures only
// warn. The returned func closes the connection.
func (a *app) announce(ctx context.Context, arc *archive.Archive) func() {
	if a.cfg.NatsURL == "" {
		return func() {}
	}

	client, err := hermes.NewClient(ctx, a.cfg.NatsURL, a.cfg.NatsToken, a.logger)
	if err != nil {
		a.logger.Warn("failed to connect to NATS", "url", a.cfg.NatsURL, "error", err)
		return func() {}
	}

	stats := arc.Stats()
	ev := hermes.NewArchiveLoaded(arc.Source(), stats.Conversations, stats.Messages, time.Now())
	if err := hermes.AnnounceLoaded(client, ev); err != nil {
		a.logger.Warn("failed to publish load event", "error", err)
	} else {
		a.logger.Info("load event published", "subject", hermes.SubjectArchiveLoaded, "event_id", ev.EventID)
	}
	return client.Close
}
