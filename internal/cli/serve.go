package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inklab/merview/internal/api"
	"github.com/inklab/merview/pkg/pipeline"
)

// newServeCmd creates the serve command, which runs the HTTP render
// service until interrupted.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long:  `Serve starts an HTTP service exposing the render pipeline: POST /v1/render renders diagram text, POST /v1/detect reports the diagram kind, and GET /healthz reports liveness. The service shuts down gracefully on SIGINT or SIGTERM.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			printInfo("serving on %s", addr)
			printNextStep("try it", `curl -X POST localhost:8080/v1/render -d '{"text":"graph TD\nA-->B"}'`)

			srv := api.NewServer(pipeline.NewRunner(logger), logger)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
