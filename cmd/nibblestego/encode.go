package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yyyoichi/nibble_stego/internal/imageio"
)

func newEncodeCmd(a *app) *cobra.Command {
	var carrierPath, secretPath, output string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Hide the secret image inside the carrier image",
		Long: `Keeps the high nibble of every carrier channel and replaces the low nibble
with the high nibble of the secret. The secret is scaled to the carrier's size.
The result is always written as PNG.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			carrier, err := imageio.Load(carrierPath)
			if err != nil {
				return err
			}
			secret, err := imageio.Load(secretPath)
			if err != nil {
				return err
			}
			b := carrier.Bounds()
			out, err := a.stego.EncodeImage(cmd.Context(), carrier, imageio.Resize(secret, b.Dx(), b.Dy()))
			if err != nil {
				return err
			}
			if output == "" {
				output = imageio.RandomName()
			}
			if err := imageio.Save(output, out); err != nil {
				return err
			}
			a.logger.Info("encoded",
				zap.String("carrier", carrierPath),
				zap.String("secret", secretPath),
				zap.String("output", output),
			)
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&carrierPath, "carrier", "c", "", "path to the carrier image (required)")
	cmd.Flags().StringVarP(&secretPath, "secret", "s", "", "path to the secret image (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG path (random name if empty)")
	_ = cmd.MarkFlagRequired("carrier")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}
