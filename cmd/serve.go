package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xvierd/countdown-cli/internal/adapters/httpapi"
	"github.com/xvierd/countdown-cli/internal/adapters/scheduler"
	"github.com/xvierd/countdown-cli/internal/services"
)

const shutdownTimeout = 5 * time.Second

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the timer over HTTP",
	Long: `Run a countdown controlled over HTTP. REST endpoints under /timer start,
pause, resume and reset it; /timer/events streams every state change over a
websocket; /notes reads and writes the saved notes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = app.config.Server.Addr
		}

		ctx, cancel := setupSignalHandler()
		defer cancel()

		svc, _ := newTimerService(ctx, scheduler.NewTicker())
		defer svc.Close()
		unwatch := watchExpiry(svc, app.notifier, app.log)
		defer unwatch()

		gin.SetMode(gin.ReleaseMode)
		state := services.NewStateService(svc, app.notes, app.history)
		handler := httpapi.NewHandler(state, app.log.Named("http"))
		server := httpapi.NewServer(addr, handler.InitRoutes())

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Run()
		}()

		fmt.Fprintf(cmd.OutOrStdout(), "⏳ Serving countdown on http://%s (Ctrl+C to stop)\n", addr)
		app.log.Infow("http server listening", "addr", addr)

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("http server error: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down http server: %w", err)
		}
		app.log.Infow("http server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config server.addr)")
}
