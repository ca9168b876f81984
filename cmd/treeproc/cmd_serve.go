package main

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhamidi/treeproc/server"
)

func newServeCmd() *cobra.Command {
	var (
		addr      string
		treesFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tree query API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bank := newBank(settings)
			if treesFile != "" {
				loaded, err := loadBank(cmd.Context(), settings, []string{treesFile})
				if err != nil {
					return err
				}
				bank = loaded
			}

			if addr != "" {
				host, port, err := splitAddr(addr)
				if err != nil {
					return err
				}
				if host != "" {
					settings.Server.Host = host
				}
				settings.Server.Port = port
			}

			srv := server.New(bank, server.SkipTerminals(settings.SkipTerminals()))
			return srv.Run(cmd.Context(), settings)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "address to listen on (default from config, 127.0.0.1:9099)")
	cmd.Flags().StringVarP(&treesFile, "read", "r", "", "preload trees from file")

	return cmd
}

// splitAddr accepts host:port or :port.
func splitAddr(addr string) (string, int, error) {
	host, portText, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portText)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port in %q", addr)
	}
	return host, port, nil
}
