package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	stego "github.com/yyyoichi/nibble_stego"
	"github.com/yyyoichi/nibble_stego/internal/config"
	"github.com/yyyoichi/nibble_stego/internal/logging"
)

// app carries what every subcommand needs once the persistent flags are parsed.
type app struct {
	cfg    config.Config
	dev    bool
	logger *zap.Logger
	stego  *stego.Stego
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.FromEnv(), logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "nibblestego",
		Short:         "Hide one image in the low nibbles of another",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(a.cfg.LogLevel, a.dev)
			if err != nil {
				return err
			}
			a.logger = logger
			a.stego, err = stego.New(
				stego.WithWorkers(a.cfg.Workers),
				stego.WithLogger(logger),
			)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := cmd.PersistentFlags()
	pf.IntVarP(&a.cfg.Workers, "workers", "w", a.cfg.Workers, "number of goroutines used per image")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "debug, info, warn or error")
	pf.BoolVar(&a.dev, "dev", false, "human readable console logs")

	cmd.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newAnalyzeCmd(a),
		newServeCmd(a),
	)
	return cmd
}
