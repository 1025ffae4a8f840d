package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sergheevdev/event-bus/internal/bus"
	"github.com/sergheevdev/event-bus/internal/demo"
	"github.com/sergheevdev/event-bus/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

func serveCmd(st *state) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the demo bus over HTTP until interrupted",
		Example: "  evbus serve --addr :8080\n  evbus serve --config evbus.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = st.cfg.Addr
			}
			if !st.cfg.Concurrent {
				st.log.Info().Msg("serve always uses the concurrent manager")
			}
			b, err := bus.New(
				bus.WithConcurrent(),
				bus.WithLogger(&st.log),
				bus.WithListeners(&demo.CounterListener{Name: "counter"}, demo.NewJournal(&st.log)),
			)
			if err != nil {
				return err
			}

			httpapi.SetLogger(st.log)
			httpapi.SetCORSOptions(len(st.cfg.CORSOrigins) > 0, st.cfg.CORSOrigins, nil, nil)

			// Graceful shutdown (Ctrl+C / SIGTERM / canceled command context)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, st, addr, httpapi.NewMux(demo.NewService(b)))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (defaults to the config addr, then :8080)")
	return cmd
}

func serve(ctx context.Context, st *state, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: h, ReadHeaderTimeout: 5 * time.Second}

	st.log.Info().Str("addr", ln.Addr().String()).Msg("evbus listening")
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		st.log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	st.log.Info().Msg("evbus stopped")
	return nil
}
