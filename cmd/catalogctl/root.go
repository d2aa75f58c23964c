package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"SteamShop/internal/catalog"
	"SteamShop/pkg/kit"
)

type options struct {
	size         int
	seed         uint64
	priceCeiling int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Steam Shop catalog tool",
		Long:          "Generate, query and serve the Steam Shop account catalog from the command line or as an MCP server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	root.PersistentFlags().Int("size", catalog.DefaultSize, "Number of listings to generate (env CATALOG_SIZE)")
	root.PersistentFlags().Uint64("seed", 0, "Generator seed, 0 for a random catalog (env CATALOG_SEED)")

	root.AddCommand(
		newGenerateCmd(opts),
		newQueryCmd(opts),
		newMCPCmd(opts),
	)
	return root
}

// load takes catalog settings from the environment and lets explicit flags
// win over them.
func (o *options) load(cmd *cobra.Command) error {
	conf, err := kit.LoadConfig("catalogctl")
	if err != nil {
		return err
	}
	o.size = conf.Catalog.Size
	o.seed = conf.Catalog.Seed
	o.priceCeiling = conf.Catalog.PriceCeiling

	flags := cmd.Flags()
	if flags.Changed("size") {
		if o.size, err = flags.GetInt("size"); err != nil {
			return err
		}
	}
	if flags.Changed("seed") {
		if o.seed, err = flags.GetUint64("seed"); err != nil {
			return err
		}
	}
	if o.priceCeiling <= 0 {
		o.priceCeiling = catalog.DefaultPriceCeiling
	}
	return nil
}

func (o *options) generate() ([]catalog.Listing, error) {
	cfg := catalog.DefaultConfig()
	cfg.Size = o.size
	cfg.PriceCeiling = o.priceCeiling

	listings, err := catalog.Generate(cfg, catalog.RandFor(o.seed))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	return listings, nil
}
