package main

import (
	"fmt"

	"github.com/spf13/cobra"

	stego "github.com/yyyoichi/nibble_stego"
	"github.com/yyyoichi/nibble_stego/internal/imageio"
	"github.com/yyyoichi/nibble_stego/quality"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var originalPath, stegoPath, heatmapPath string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Measure the distortion between a carrier and its stego image",
		Long:  `Prints MSE, PSNR and SSIM and optionally writes a heatmap of the modified pixels.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := imageio.Load(originalPath)
			if err != nil {
				return err
			}
			modified, err := imageio.Load(stegoPath)
			if err != nil {
				return err
			}
			og, mg := stego.FromImage(original), stego.FromImage(modified)
			report, err := quality.Compare(og, mg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "MSE:  %.4f (R %.4f, G %.4f, B %.4f)\n",
				report.MSE, report.ChannelMSE[0], report.ChannelMSE[1], report.ChannelMSE[2])
			fmt.Fprintf(w, "PSNR: %.2f dB\n", report.PSNR)
			fmt.Fprintf(w, "SSIM: %.4f\n", report.SSIM)

			if heatmapPath == "" {
				return nil
			}
			heat, err := quality.Heatmap(og, mg)
			if err != nil {
				return err
			}
			if err := imageio.Save(heatmapPath, heat.Image()); err != nil {
				return err
			}
			fmt.Fprintf(w, "Heatmap: %s\n", heatmapPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&originalPath, "original", "o", "", "path to the original carrier (required)")
	cmd.Flags().StringVarP(&stegoPath, "stego", "s", "", "path to the stego image (required)")
	cmd.Flags().StringVarP(&heatmapPath, "heatmap", "d", "", "write a difference heatmap PNG here")
	_ = cmd.MarkFlagRequired("original")
	_ = cmd.MarkFlagRequired("stego")
	return cmd
}
