package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jpfielding/bmp.go/pkg/bmp"
	"github.com/jpfielding/bmp.go/pkg/equalize"
	"github.com/jpfielding/bmp.go/pkg/util"
	"github.com/spf13/cobra"
)

// Info is what `bmpctl info` reports about one file.
type Info struct {
	Path        string  `json:"path"`
	HeadersOnly bool    `json:"headers_only,omitempty"`
	ContentID   string  `json:"content_id,omitempty"`
	MD5         string  `json:"md5,omitempty"`
	FileSize    uint32  `json:"file_size"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Depth       int     `json:"depth"`
	Orientation string  `json:"orientation"`
	PixelOffset uint32  `json:"pixel_offset"`
	ImageSize   uint32  `json:"image_size"`
	Stride      int     `json:"stride"`
	Padding     int     `json:"padding"`
	Colors      int     `json:"colors"`
	Min         uint8   `json:"min"`
	Max         uint8   `json:"max"`
	Mean        float64 `json:"mean"`
}

// NewInfoCmd prints header metadata and intensity statistics
func NewInfoCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "print header metadata and intensity statistics",
		Long:  "Decodes a bitmap and prints its header fields, scanline layout, a content id and the intensity range. With --headers only the 54 byte header is read.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := inputPath(cmd, args)
			var info Info
			if headers, _ := cmd.Flags().GetBool("headers"); headers {
				cfg, err := readConfig(cmd, path)
				if err != nil {
					return err
				}
				info = describeConfig(path, cfg)
			} else {
				img, err := readImage(ctx, cmd, path)
				if err != nil {
					return err
				}
				if info, err = describe(path, img); err != nil {
					return err
				}
			}
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "json":
				j, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(j))
			default:
				printInfo(cmd.OutOrStdout(), info)
			}
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("in", "i", "", "BMP file to read (- for stdin)")
	pf.StringP("format", "f", "text", "output format (text|json)")
	pf.Bool("headers", false, "read only the file and info headers")
	return cmd
}

func describe(path string, img *bmp.Image) (Info, error) {
	encoded, err := bmp.Marshal(img)
	if err != nil {
		return Info{}, err
	}
	stats, err := equalize.Stats(img.Pixels)
	if err != nil {
		return Info{}, err
	}
	bpp := img.InfoHeader.BytesPerPixel()
	return Info{
		Path:        path,
		ContentID:   util.ContentID(encoded),
		MD5:         util.Md5ThenHex(encoded),
		FileSize:    img.FileHeader.Size,
		Width:       img.Width(),
		Height:      img.Height(),
		Depth:       img.Depth(),
		Orientation: img.Orientation.String(),
		PixelOffset: img.FileHeader.OffBits,
		ImageSize:   img.InfoHeader.SizeImage,
		Stride:      bmp.Stride(bpp, img.Width()),
		Padding:     bmp.Padding(bpp, img.Width()),
		Colors:      len(img.Palette),
		Min:         stats.Min,
		Max:         stats.Max,
		Mean:        stats.Mean,
	}, nil
}

// readConfig decodes just the headers of --in, where "-" is stdin.
func readConfig(cmd *cobra.Command, path string) (bmp.Config, error) {
	switch path {
	case "":
		return bmp.Config{}, fmt.Errorf("input path is required. Use --in flag or provide as argument")
	case "-":
		return bmp.DecodeConfig(bufio.NewReader(cmd.InOrStdin()))
	default:
		return bmp.ReadConfigFile(path)
	}
}

func describeConfig(path string, cfg bmp.Config) Info {
	bpp := cfg.InfoHeader.BytesPerPixel()
	return Info{
		Path:        path,
		HeadersOnly: true,
		FileSize:    cfg.FileHeader.Size,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Depth:       cfg.Depth,
		Orientation: cfg.Orientation.String(),
		PixelOffset: cfg.FileHeader.OffBits,
		ImageSize:   cfg.InfoHeader.SizeImage,
		Stride:      bmp.Stride(bpp, cfg.Width),
		Padding:     bmp.Padding(bpp, cfg.Width),
		Colors:      cfg.InfoHeader.PaletteLen(),
	}
}

func printInfo(w io.Writer, info Info) {
	fmt.Fprintf(w, "Path:        %s\n", info.Path)
	if !info.HeadersOnly {
		fmt.Fprintf(w, "ContentID:   %s\n", info.ContentID)
		fmt.Fprintf(w, "MD5:         %s\n", info.MD5)
	}
	fmt.Fprintf(w, "FileSize:    %d bytes\n", info.FileSize)
	fmt.Fprintf(w, "Width:       %d px\n", info.Width)
	fmt.Fprintf(w, "Height:      %d px\n", info.Height)
	fmt.Fprintf(w, "Depth:       %d bits\n", info.Depth)
	fmt.Fprintf(w, "Orientation: %s\n", info.Orientation)
	fmt.Fprintf(w, "PixelOffset: %d bytes\n", info.PixelOffset)
	fmt.Fprintf(w, "ImageSize:   %d bytes\n", info.ImageSize)
	fmt.Fprintf(w, "Stride:      %d bytes\n", info.Stride)
	fmt.Fprintf(w, "Padding:     %d bytes\n", info.Padding)
	if info.Depth == 8 {
		fmt.Fprintf(w, "Colors:      %d\n", info.Colors)
	}
	if !info.HeadersOnly {
		fmt.Fprintf(w, "Range:       min=%d, max=%d, mean=%.2f\n", info.Min, info.Max, info.Mean)
	}
}
