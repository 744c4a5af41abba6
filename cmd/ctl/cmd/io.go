package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"

	"github.com/jpfielding/bmp.go/pkg/bmp"
	"github.com/spf13/cobra"
)

// readImage loads --in, where "-" is stdin.
func readImage(ctx context.Context, cmd *cobra.Command, path string) (*bmp.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("input path is required. Use --in flag or provide as argument")
	}
	var (
		img *bmp.Image
		err error
	)
	if path == "-" {
		img, err = bmp.Decode(bufio.NewReader(cmd.InOrStdin()))
	} else {
		img, err = bmp.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "read image", "path", path, "width", img.Width(), "height", img.Height(), "depth", img.Depth())
	return img, nil
}

// writeImage stores img at --out, where "-" is stdout.
func writeImage(ctx context.Context, cmd *cobra.Command, path string, img *bmp.Image) error {
	if path == "" {
		return fmt.Errorf("output path is required. Use --out flag")
	}
	var (
		n   int64
		err error
	)
	if path == "-" {
		n, err = bmp.Encode(cmd.OutOrStdout(), img)
	} else {
		n, err = bmp.WriteFile(path, img)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	slog.InfoContext(ctx, "wrote image", "path", path, "bytes", n)
	return nil
}

// inputPath prefers --in and falls back to the first argument.
func inputPath(cmd *cobra.Command, args []string) string {
	in, _ := cmd.Flags().GetString("in")
	if in == "" && len(args) > 0 {
		in = args[0]
	}
	return in
}
