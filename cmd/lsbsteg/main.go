// Command lsbsteg hides a file inside an image and extracts it again.
//
//	lsbsteg embed [flags] <input> <container>
//	lsbsteg extract [flags] <container>
//	lsbsteg capacity [flags] <container>
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	steg "github.com/yyyoichi/lsb_zero"
)

const usage = `usage: lsbsteg <command> [flags] <args>

commands:
  embed <input> <container>   hide input inside container
  extract <container>         recover a hidden file
  capacity <container>        print how many payload bytes fit

run "lsbsteg <command> --help" for the flags of a command
`

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	var cmd command
	var fs *pflag.FlagSet
	var c common
	switch args[0] {
	case "embed":
		fs, cmd = embedCommand(&c)
	case "extract":
		fs, cmd = extractCommand(&c)
	case "capacity":
		fs, cmd = capacityCommand(&c)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
	c.register(fs)
	fs.SetOutput(stderr)
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := newLogger(stderr, c.verbose)
	if err := c.resolve(fs); err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}
	c.logger = logger

	if err := cmd(ctx, &c, fs.Args(), stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "%v\n\n", err)
			fs.Usage()
			return 2
		}
		logger.Error(args[0]+" failed", "error", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// options converts the resolved flags into library options.
func (c *common) options() []steg.Option {
	opts := []steg.Option{
		steg.WithLSBs(c.lsbs),
		steg.WithSeed(c.seed),
		steg.WithHash(c.hash),
		steg.WithLogger(c.logger),
	}
	if c.alpha {
		opts = append(opts, steg.WithAlpha())
	}
	return opts
}
