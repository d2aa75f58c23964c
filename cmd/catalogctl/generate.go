package main

import (
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a catalog and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")

			listings, err := opts.generate()
			if err != nil {
				return err
			}
			return printListings(cmd.OutOrStdout(), format, listings, len(listings))
		},
	}
	cmd.Flags().String("format", "json", "Output format: json, table")
	return cmd
}
