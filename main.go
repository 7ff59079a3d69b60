package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crisismap",
		Short: "Serve the live incident map",
		Long: `crisismap renders incidents and resources from the incident backend
on a Leaflet map and serves it with refresh, filter and export endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Path to a .env file (default .env)")

	addServeCmd(rootCmd)
	addListCmd(rootCmd)
	addShowCmd(rootCmd)
	addExportCmd(rootCmd)
	addSeedCmd(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
