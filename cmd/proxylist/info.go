package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/proxylist"
)

func newInfoCmd() *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print the header and field layout of a database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := proxylist.Open(db)
			if err != nil {
				return err
			}
			defer e.Close()

			h, l := e.Header(), e.Layout()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "path:          %s\n", db)
			fmt.Fprintf(w, "database type: %d\n", h.DatabaseType)
			fmt.Fprintf(w, "columns:       %d\n", h.ColumnCount)
			fmt.Fprintf(w, "ipv4 records:  %d\n", h.IPv4Count)
			fmt.Fprintf(w, "ipv4 base:     %d\n", h.IPv4Base)
			fmt.Fprintf(w, "layout:        proxy=%d usage=%d threat=%d\n", l.Proxy, l.Usage, l.Threat)
			fmt.Fprintf(w, "buckets:       %s\n", strings.Join(e.Buckets(), ","))
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", defaultDB, "Path to the IP2Proxy binary database")
	return cmd
}
