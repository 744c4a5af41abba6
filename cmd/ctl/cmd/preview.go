package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/jpfielding/bmp.go/pkg/bmp"
	"github.com/spf13/cobra"
)

// NewPreviewCmd renders a bitmap as true color terminal blocks
func NewPreviewCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "render a bitmap in the terminal",
		Long:  "Prints each sampled pixel as a pair of true color background cells. Use --step to shrink large images.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, _ := cmd.Flags().GetInt("step")
			if step < 1 {
				return fmt.Errorf("step must be at least 1, got %d", step)
			}
			img, err := readImage(ctx, cmd, inputPath(cmd, args))
			if err != nil {
				return err
			}
			return renderPreview(cmd.OutOrStdout(), img, step)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("in", "i", "", "BMP file to read (- for stdin)")
	pf.IntP("step", "s", 1, "sample every step-th pixel in both directions")
	return cmd
}

func renderPreview(w io.Writer, img *bmp.Image, step int) error {
	bw := bufio.NewWriter(w)
	// palette lookups come for free through the image.Image view
	src := img.ToImage()
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, _ := src.At(x, y).RGBA()
			bw.WriteString(coloredBlock("  ", r>>8, g>>8, bl>>8))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func coloredBlock(block string, red, green, blue uint32) string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm%s\033[0m", red, green, blue, block)
}
