package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Another0Noob/stagelog/web"
	"github.com/Another0Noob/stagelog/web/backend"
)

var (
	addrFlag   string
	staticFlag string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if addrFlag != "" {
			addr = addrFlag
		}

		metrics := backend.NewMetrics()
		client, err := newClient(metrics.InstrumentTransport)
		if err != nil {
			return err
		}

		api := backend.NewAPI(client, logger, metrics)
		defer api.Close()

		mux := http.NewServeMux()
		web.HandleBack(mux, api)
		web.HandleFront(mux, staticFlag)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return web.RunServer(ctx, addr, mux, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&addrFlag, "addr", "a", "", "listen address (default from config, :39039)")
	serveCmd.Flags().StringVar(&staticFlag, "static", "", "directory of a built frontend to serve on /")
}
