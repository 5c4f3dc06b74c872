package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/stellarforge/internal/config"
	"github.com/samvad-hq/stellarforge/internal/logger"
)

// runtime carries what every subcommand needs after PersistentPreRunE.
type runtime struct {
	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:   "stellarforge",
		Short: "Register stars with the StellarForge API",
		Long: `stellarforge registers celestial objects through the StellarForge SDK,
keeps a local ledger of what it registered and announces each registration
to the configured publishers.

Configuration comes from STELLARFORGE_* environment variables and configs/.env.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log, err := logger.Init(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			rt.cfg = cfg
			rt.log = log
			return nil
		},
	}

	root.AddCommand(newRegisterCmd(rt), newStarsCmd(rt))
	return root
}
