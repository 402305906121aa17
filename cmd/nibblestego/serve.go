package main

import (
	"github.com/spf13/cobra"

	"github.com/yyyoichi/nibble_stego/internal/config"
	"github.com/yyyoichi/nibble_stego/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var maxUploadMB, maxPixels int64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve encode and decode over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("max-upload-mb") {
				a.cfg.MaxUploadBytes = min(maxUploadMB, config.MaxUploadMB) << 20
			}
			if cmd.Flags().Changed("max-pixels") {
				a.cfg.MaxPixels = maxPixels
			}
			srv := server.New(a.stego, a.logger, a.cfg.MaxUploadBytes, a.cfg.MaxPixels)
			return srv.ListenAndServe(cmd.Context(), a.cfg.Listen)
		},
	}

	cmd.Flags().StringVarP(&a.cfg.Listen, "listen", "l", a.cfg.Listen, "address to listen on")
	cmd.Flags().Int64Var(&maxUploadMB, "max-upload-mb", a.cfg.MaxUploadBytes>>20, "largest accepted request body in MiB")
	cmd.Flags().Int64Var(&maxPixels, "max-pixels", a.cfg.MaxPixels, "largest width*height an uploaded image may declare")
	return cmd
}
