package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/fixora/backend/internal/app"
)

// Options controls where the commands write.
type Options struct {
	Out io.Writer
	Err io.Writer
}

type runtimeState struct {
	out      io.Writer
	errOut   io.Writer
	logLevel string

	cfg app.Config
	log *slog.Logger
}

type runtimeKey struct{}

// NewRootCommand builds the fixora command tree. Without a subcommand it serves.
func NewRootCommand(opts Options) *cobra.Command {
	rt := &runtimeState{out: opts.Out, errOut: opts.Err}
	if rt.out == nil {
		rt.out = os.Stdout
	}
	if rt.errOut == nil {
		rt.errOut = os.Stderr
	}

	root := &cobra.Command{
		Use:           "fixora",
		Short:         "Fixora backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if rt.logLevel != "" {
				cfg.LogLevel = rt.logLevel
			}
			rt.cfg = cfg
			rt.log = app.NewLogger(cfg, rt.errOut)
			gin.SetMode(app.GinMode(cfg.Env))
			slog.SetDefault(rt.log)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	root.PersistentFlags().StringVar(&rt.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.SetOut(rt.out)
	root.SetErr(rt.errOut)
	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		newServeCommand(),
		newMailCommand(),
	)

	return root
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}
