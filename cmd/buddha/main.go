// Command buddha renders Buddhabrot images described by an INI config file.
//
// Usage:
//
//	buddha [flags] config.ini
//
// Every section of the config file is rendered in turn. A section that
// fails is logged and skipped; the exit status is 1 if any section failed
// and 2 for usage or config errors.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/gops/agent"

	"github.com/gogpu/buddha"
	"github.com/gogpu/buddha/internal/config"
	"github.com/gogpu/buddha/internal/imageio"
	"github.com/gogpu/buddha/internal/logsink"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	configPath string
	outDir     string
	level      string
	threads    int
	interval   time.Duration
	summary    bool
	gops       bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("buddha", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.outDir, "out", ".", "output directory")
	fs.StringVar(&o.level, "log", "info", "log level: error, warning, notice, info, debug")
	fs.IntVar(&o.threads, "threads", 0, "override the threads of every section (0 keeps the config value)")
	fs.DurationVar(&o.interval, "log-interval", logsink.DefaultInterval, "log flush interval")
	fs.BoolVar(&o.summary, "summary", false, "write a JSON summary next to every output")
	fs.BoolVar(&o.gops, "gops", false, "start the gops diagnostics agent")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: buddha [flags] config.ini\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return o, errors.New("expected exactly one config file")
	}
	o.configPath = fs.Arg(0)
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	level, ok := logsink.ParseLevel(opts.level)
	if !ok {
		fmt.Fprintf(stderr, "buddha: unknown log level %q\n", opts.level)
		return exitUsage
	}

	sink := logsink.New(logsink.Options{
		Out:      stdout,
		Err:      stderr,
		Interval: opts.interval,
		Level:    level,
	})
	sink.Start()
	defer sink.Close()

	logger := sink.Logger()
	buddha.SetLogger(logger)
	defer buddha.SetLogger(nil)

	if opts.gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			logger.Warn("gops agent not started", "err", err)
		} else {
			defer agent.Close()
		}
	}

	records, err := config.Load(opts.configPath)
	if err != nil {
		sink.Log(logsink.SeverityError, err.Error())
		return exitUsage
	}
	if len(records) == 0 {
		logger.Warn("no sections in config", "file", opts.configPath)
		return exitOK
	}

	failed := 0
	for _, p := range records {
		if opts.threads != 0 {
			p.Threads = opts.threads
		}
		path, err := renderOne(ctx, sink, p, opts)
		if err != nil {
			logger.Error("render failed", "name", p.Name, "err", err)
			failed++
			if ctx.Err() != nil {
				break
			}
			continue
		}
		logger.Info("saved", "name", p.Name, "path", path)
	}

	if failed > 0 {
		sink.Logf(logsink.SeverityError, "%d of %d renders failed", failed, len(records))
		return exitFailed
	}
	return exitOK
}

// renderOne runs one record and writes its output, returning the path.
func renderOne(ctx context.Context, sink *logsink.Sink, p buddha.Params, opts options) (string, error) {
	name, err := p.Filename()
	if err != nil {
		return "", err
	}
	path := filepath.Join(opts.outDir, name)

	e, err := buddha.New(p)
	if err != nil {
		return "", err
	}

	sink.Track(e)
	res, err := e.Run(ctx)
	sink.Track(nil)
	if err != nil {
		return "", err
	}

	if err := save(path, res); err != nil {
		return "", err
	}

	if opts.summary {
		if err := buddha.SaveSummary(path+".json", res.Summary()); err != nil {
			return "", err
		}
	}
	return path, nil
}

func save(path string, res *buddha.Result) error {
	f, err := imageio.ParseFormat(res.Params.Format)
	if err != nil {
		return err
	}
	if !f.IsImage() {
		return imageio.SaveHistogram(path, res.Width, res.Height, res.Counts)
	}
	return buddha.Render(res, nil).Save(path, res.Params.Format)
}
