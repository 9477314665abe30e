package cmd

import (
	"storefront/internal/services"

	"github.com/spf13/cobra"
)

var seedCmdFlags struct {
	Reset bool
}

func init() {
	seedCmd.Flags().BoolVar(&seedCmdFlags.Reset, "reset", false, "Wipe users, products and the id sequence before seeding")
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the default users and products into the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, log, s, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		seeder := services.NewSeedService(s, log)
		if seedCmdFlags.Reset {
			return seeder.Reset(cmd.Context())
		}
		return seeder.Initialize(cmd.Context())
	},
}
