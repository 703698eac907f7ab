package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fixora/backend/internal/app"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server on HOST:PORT.

Email templates are read from EMAIL_TEMPLATES_DIR (default templates/emails).
A relative directory is resolved against the working directory first and the
directory holding the fixora binary second; set an absolute path when the
binary is started from elsewhere.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	rt, err := getRuntime(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.New(ctx, rt.cfg, rt.log).Serve(ctx)
}
