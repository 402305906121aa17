package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yyyoichi/nibble_stego/internal/imageio"
)

func newDecodeCmd(a *app) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Recover the hidden image from a stego image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := imageio.Load(input)
			if err != nil {
				return err
			}
			out, err := a.stego.DecodeImage(cmd.Context(), src)
			if err != nil {
				return err
			}
			if output == "" {
				output = imageio.RandomName()
			}
			if err := imageio.Save(output, out); err != nil {
				return err
			}
			a.logger.Info("decoded", zap.String("input", input), zap.String("output", output))
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "path to the stego image (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG path (random name if empty)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
