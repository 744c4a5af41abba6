package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jpfielding/bmp.go/pkg/bmp"
	"github.com/jpfielding/bmp.go/pkg/equalize"
	"github.com/jpfielding/bmp.go/pkg/filter"
	"github.com/spf13/cobra"
)

// newTransformCmd wires the shared --in/--out handling around one transform.
// The output file is only written when the transform succeeds.
func newTransformCmd(ctx context.Context, use, short string, apply func(cmd *cobra.Command, img *bmp.Image) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			img, err := readImage(ctx, cmd, inputPath(cmd, args))
			if err != nil {
				return err
			}
			if err := apply(cmd, img); err != nil {
				return fmt.Errorf("%s: %w", cmd.Name(), err)
			}
			return writeImage(ctx, cmd, out, img)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("in", "i", "", "BMP file to read (- for stdin)")
	pf.StringP("out", "o", "", "BMP file to write (- for stdout)")
	return cmd
}

func NewNegativeCmd(ctx context.Context) *cobra.Command {
	return newTransformCmd(ctx, "negative", "invert every channel", func(cmd *cobra.Command, img *bmp.Image) error {
		return filter.Negative(img.Pixels)
	})
}

func NewBrightnessCmd(ctx context.Context) *cobra.Command {
	cmd := newTransformCmd(ctx, "brightness", "add a saturating delta to every channel", func(cmd *cobra.Command, img *bmp.Image) error {
		delta, _ := cmd.Flags().GetInt("delta")
		return filter.Brightness(img.Pixels, delta)
	})
	cmd.PersistentFlags().IntP("delta", "d", 0, "amount to add, may be negative")
	return cmd
}

func NewThresholdCmd(ctx context.Context) *cobra.Command {
	cmd := newTransformCmd(ctx, "threshold", "binarize an 8-bit image", func(cmd *cobra.Command, img *bmp.Image) error {
		value, _ := cmd.Flags().GetInt("value")
		return filter.Threshold(img.Pixels, value)
	})
	cmd.PersistentFlags().IntP("value", "t", 128, "levels at or above this become 255")
	return cmd
}

func NewGrayscaleCmd(ctx context.Context) *cobra.Command {
	cmd := newTransformCmd(ctx, "grayscale", "convert a 24-bit image to gray", func(cmd *cobra.Command, img *bmp.Image) error {
		if luma, _ := cmd.Flags().GetBool("luma"); luma {
			return filter.GrayscaleLuma(img.Pixels)
		}
		return filter.Grayscale(img.Pixels)
	})
	cmd.PersistentFlags().Bool("luma", false, "weight channels by perceived brightness instead of averaging")
	return cmd
}

func NewFilterCmd(ctx context.Context) *cobra.Command {
	cmd := newTransformCmd(ctx, "filter", "apply a convolution kernel", func(cmd *cobra.Command, img *bmp.Image) error {
		name, _ := cmd.Flags().GetString("kernel")
		borderName, _ := cmd.Flags().GetString("border")
		k, ok := filter.KernelByName(name)
		if !ok {
			return fmt.Errorf("unknown kernel %q (%s)", name, strings.Join(filter.KernelNames(), "|"))
		}
		border, err := filter.ParseBorder(borderName)
		if err != nil {
			return err
		}
		slog.DebugContext(ctx, "filtering", "kernel", k.Name, "border", border.String())
		return filter.ApplyToImage(img, k, border)
	})
	pf := cmd.PersistentFlags()
	pf.StringP("kernel", "k", "box-blur", "kernel name ("+strings.Join(filter.KernelNames(), "|")+")")
	pf.StringP("border", "b", "clamp", "border policy (clamp|skip)")
	return cmd
}

func NewEqualizeCmd(ctx context.Context) *cobra.Command {
	return newTransformCmd(ctx, "equalize", "stretch contrast by histogram equalization", func(cmd *cobra.Command, img *bmp.Image) error {
		return equalize.Equalize(img)
	})
}
