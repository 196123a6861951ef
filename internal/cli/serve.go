package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"clubvenue/internal/adapters/httpapi"
	"clubvenue/pkg/tz"
)

func NewServeCommand() *cobra.Command {
	var noSweep bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the sweep scheduler and the optional Discord bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), !noSweep)
		},
	}
	cmd.Flags().BoolVar(&noSweep, "no-sweep", false, "do not start the periodic deadline sweeper")
	return cmd
}

func runServe(parent context.Context, sweep bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	router := httpapi.NewRouter(httpapi.Deps{
		Venues:     a.venues,
		Approvals:  a.approvals,
		Actors:     a.actors,
		Sweeper:    a.scheduler,
		Inbox:      a.inbox,
		Translator: a.translator,
		Metrics:    promhttp.Handler(),
		Location:   tz.Campus,
		PosterDir:  a.posters.Dir(),
		PosterPath: cfg.PosterBaseURL,
	})
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	var wg sync.WaitGroup
	if sweep {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.scheduler.Run(ctx)
		}()
	}
	if a.bot != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.bot.Start(ctx); err != nil {
				log.Printf("❌ Discord bot: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 HTTP API listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Println("🛑 Shutting down...")
	case err = <-errCh:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := server.Shutdown(shutdownCtx); serr != nil {
		log.Printf("⚠️ HTTP shutdown: %v", serr)
	}
	wg.Wait()
	log.Println("✅ Stopped.")
	return err
}
