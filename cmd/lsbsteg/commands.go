package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	steg "github.com/yyyoichi/lsb_zero"
	"github.com/yyyoichi/lsb_zero/imageio"
)

const zstdSuffix = ".zst"

type command func(context.Context, *common, []string, io.Writer) error

func embedCommand(c *common) (*pflag.FlagSet, command) {
	fs := pflag.NewFlagSet("embed", pflag.ContinueOnError)
	output := fs.StringP("output", "o", "embedded.png", "output image, format chosen by extension (png, bmp, tiff)")
	compress := fs.Bool("compress", false, "zstd-compress the input before embedding")
	fs.StringVar(&c.hashName, "hash", "blake3", "digest algorithm: blake3, sha256, sha512, sha1, md5, blake2b, sha3-256")

	return fs, func(ctx context.Context, c *common, args []string, stdout io.Writer) error {
		if len(args) != 2 {
			return fmt.Errorf("%w: embed needs <input> <container>", errUsage)
		}
		format, err := imageio.FormatFromPath(*output)
		if err != nil {
			return err
		}
		if !format.Lossless() {
			return fmt.Errorf("%w: cannot write %s, use png, bmp or tiff", imageio.ErrUnsupportedFormat, format)
		}

		input, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		ext := strings.TrimPrefix(filepath.Ext(args[0]), ".")
		if ext == "" {
			ext = "bin"
		}
		if *compress {
			if input, err = compressZstd(input); err != nil {
				return err
			}
			ext += zstdSuffix
		}

		img, err := readImage(args[1])
		if err != nil {
			return err
		}
		s, err := steg.New(c.options()...)
		if err != nil {
			return err
		}
		marked, err := s.EmbedImage(ctx, img, input, ext)
		if err != nil {
			return err
		}

		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		if err := imageio.Encode(f, marked, format); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		c.logger.Info("embedded", "input", args[0], "bytes", len(input), "output", *output)
		return nil
	}
}

func extractCommand(c *common) (*pflag.FlagSet, command) {
	fs := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	output := fs.StringP("output", "o", "extracted", "output path; the stored extension is appended")

	return fs, func(ctx context.Context, c *common, args []string, stdout io.Writer) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: extract needs <container>", errUsage)
		}
		img, err := readImage(args[0])
		if err != nil {
			return err
		}
		s, err := steg.New(c.options()...)
		if err != nil {
			return err
		}
		data, ext, err := s.ExtractImage(ctx, img)
		if err != nil {
			return err
		}
		if strings.HasSuffix(ext, zstdSuffix) {
			if data, err = decompressZstd(data); err != nil {
				return err
			}
			ext = strings.TrimSuffix(ext, zstdSuffix)
		}

		path := *output
		if ext != "" {
			path = strings.TrimSuffix(path, filepath.Ext(path)) + "." + filepath.Base(ext)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		c.logger.Info("extracted", "output", path, "bytes", len(data))
		return nil
	}
}

func capacityCommand(c *common) (*pflag.FlagSet, command) {
	fs := pflag.NewFlagSet("capacity", pflag.ContinueOnError)
	extLen := fs.Int("extension-length", 3, "length of the stored extension")
	fs.StringVar(&c.hashName, "hash", "blake3", "digest algorithm the payload would use")

	return fs, func(ctx context.Context, c *common, args []string, stdout io.Writer) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: capacity needs <container>", errUsage)
		}
		img, err := readImage(args[0])
		if err != nil {
			return err
		}
		s, err := steg.New(c.options()...)
		if err != nil {
			return err
		}
		container := steg.FromImage(img, c.alpha)
		fmt.Fprintf(stdout, "%d\n", s.MaxPayload(container, *extLen))
		c.logger.Debug("capacity", "bits", s.Capacity(container), "width", container.Width, "height", container.Height)
		return nil
	}
}
