package bmp

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
)

// Marshal serializes img into a complete in-memory bitmap file.
func Marshal(img *Image) ([]byte, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(img.InfoHeader.PixelDataStart() + len(img.gap) +
		Stride(img.Pixels.Channels, img.Pixels.Width)*img.Pixels.Height)

	buf.Write(EncodeHeader(img.FileHeader, img.InfoHeader))
	for _, q := range img.Palette {
		buf.Write([]byte{q.Blue, q.Green, q.Red, q.Reserved})
	}
	buf.Write(img.gap)
	if err := writePixels(&buf, img.Pixels, img.Orientation); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes img to w. The file is assembled in memory first so that a
// validation or layout failure never reaches the sink.
func Encode(w io.Writer, img *Image) (int64, error) {
	b, err := Marshal(img)
	if err != nil {
		return 0, err
	}
	cw := &CountingWriter{Writer: w}
	if _, err := cw.Write(b); err != nil {
		return cw.Count.Load(), fmt.Errorf("writing bitmap: %w", err)
	}
	slog.Debug("encoded bitmap", "bytes", cw.Count.Load(), "depth", img.Depth(), "orientation", img.Orientation.String())
	return cw.Count.Load(), nil
}

// WriteFile encodes img next to path and renames it into place, so an
// existing file at path is either fully replaced or left untouched.
func WriteFile(path string, img *Image) (int64, error) {
	b, err := Marshal(img)
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}

	cw := &CountingWriter{Writer: tmp}
	if _, err := cw.Write(b); err != nil {
		tmp.Close()
		return cw.Count.Load(), fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return cw.Count.Load(), fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return cw.Count.Load(), fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return cw.Count.Load(), fmt.Errorf("renaming into %s: %w", path, err)
	}
	return cw.Count.Load(), nil
}

type CountingWriter struct {
	Count  atomic.Int64
	Writer io.Writer
}

func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.Writer.Write(p)
	c.Count.Add(int64(n))
	return n, err
}
