package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"sigs.k8s.io/external-dns/provider/webhook/api"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the hosts file as an external-dns webhook provider",
		Long: `The serve command exposes the hosts file to external-dns through the
webhook provider protocol. Records are read from the backend on every
request and changes go through the same rules as add and remove.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&a.flags.Serve.Listen, "listen", ":8888", "Address for the webhook API")
	cmd.Flags().StringVar(&a.flags.Serve.HealthListen, "health-listen", ":8080", "Address for the health endpoint")
	return cmd
}

func newWebhookMux(provider *HostsfilesProvider) *http.ServeMux {
	p := api.WebhookServer{
		Provider: provider,
	}
	m := http.NewServeMux()
	m.HandleFunc("/", p.NegotiateHandler)
	m.HandleFunc("/records", p.RecordsHandler)
	m.HandleFunc("/adjustendpoints", p.AdjustEndpointsHandler)
	m.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return m
}

func (a *app) runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := newWebhookMux(NewHostsfilesProvider(a.persister, a.editor))
	servers := []*http.Server{
		{Addr: a.cfg.Serve.Listen, Handler: m},
		{Addr: a.cfg.Serve.HealthListen, Handler: m},
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			log.Info().Str("addr", srv.Addr).Msg("listening")
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Str("addr", srv.Addr).Msg("shutdown")
			}
		}
		return nil
	})
	return g.Wait()
}
