package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/proxylist"
)

const (
	defaultDB  = "IP2PROXY-LITE-PX10.BIN"
	defaultOut = "lists.json"
)

type logFlags struct {
	format string
	level  string
}

func (f *logFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.format, "log-format", "text", "Log format (text|json)")
	cmd.PersistentFlags().StringVar(&f.level, "log-level", "info", "Minimum log level (debug|info|warn|error)")
}

func (f *logFlags) logger(w io.Writer) (*proxylist.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(f.format) {
	case "text":
		return proxylist.NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return proxylist.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", f.format)
	}
}

func newRootCmd() *cobra.Command {
	var lf logFlags

	root := &cobra.Command{
		Use:           "proxylist",
		Short:         "Extract categorized IPv4 lists from an IP2Proxy database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	lf.register(root)

	root.AddCommand(newExtractCmd(&lf), newInfoCmd())
	return root
}
