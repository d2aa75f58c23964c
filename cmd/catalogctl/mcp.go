package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"SteamShop/internal/catalog"
	"SteamShop/internal/catalogmcp"
)

func newMCPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start an MCP stdio server over a generated catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listings, err := opts.generate()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Serving %d listings over MCP stdio...\n", len(listings))

			s := catalogmcp.NewServer(listings, catalog.DefaultParams(opts.priceCeiling))
			if err := catalogmcp.Serve(s); err != nil {
				return fmt.Errorf("mcp server: %w", err)
			}
			return nil
		},
	}
}
