package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/proxylist"
	"github.com/hupe1980/proxylist/codec"
)

type extractFlags struct {
	db                  string
	out                 string
	chunkSize           int
	workers             int
	progressInterval    int
	progressLogInterval time.Duration
	timeout             time.Duration
	compress            string
	codec               string
}

func newExtractCmd(lf *logFlags) *cobra.Command {
	var f extractFlags

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Classify every IPv4 record and write the category lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := lf.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runExtract(ctx, f, logger)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.db, "db", defaultDB, "Path to the IP2Proxy binary database")
	fl.StringVarP(&f.out, "out", "o", defaultOut, "Path of the output document")
	fl.IntVar(&f.chunkSize, "chunk-size", proxylist.DefaultChunkSize, "Records per worker task")
	fl.IntVar(&f.workers, "workers", 0, "Concurrent chunks (0 = GOMAXPROCS)")
	fl.IntVar(&f.progressInterval, "progress-interval", proxylist.DefaultProgressInterval, "Completed chunks between progress reports")
	fl.DurationVar(&f.progressLogInterval, "progress-log-interval", time.Second, "Minimum time between progress log lines (0 = every report)")
	fl.DurationVar(&f.timeout, "timeout", 0, "Abort the extraction after this duration (0 = no limit)")
	fl.StringVar(&f.compress, "compress", "auto", "Output compression (auto|none|zstd|lz4); auto infers from --out")
	fl.StringVar(&f.codec, "codec", codec.Default.Name(), fmt.Sprintf("JSON codec %v", codec.Names()))
	return cmd
}

func (f extractFlags) writeOptions() ([]proxylist.WriteOption, error) {
	var opts []proxylist.WriteOption

	if f.compress != "auto" {
		c, err := proxylist.ParseCompression(f.compress)
		if err != nil {
			return nil, err
		}
		opts = append(opts, proxylist.WithCompression(c))
	}

	c, ok := codec.ByName(f.codec)
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", proxylist.ErrInvalidOption, f.codec)
	}
	return append(opts, proxylist.WithWriteCodec(c)), nil
}

func runExtract(ctx context.Context, f extractFlags, logger *proxylist.Logger) error {
	writeOpts, err := f.writeOptions()
	if err != nil {
		return err
	}

	e, err := proxylist.Open(f.db,
		proxylist.WithLogger(logger),
		proxylist.WithChunkSize(f.chunkSize),
		proxylist.WithWorkers(f.workers),
		proxylist.WithProgressInterval(f.progressInterval),
		proxylist.WithProgressLogInterval(f.progressLogInterval),
		proxylist.WithTimeout(f.timeout),
	)
	if err != nil {
		return err
	}
	defer e.Close()

	doc, err := e.Extract(ctx)
	if err != nil {
		return err
	}

	err = proxylist.WriteFile(f.out, doc, writeOpts...)
	logger.LogWrite(ctx, f.out, len(doc.Lists), err)
	return err
}
