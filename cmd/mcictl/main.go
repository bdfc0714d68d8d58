package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	opts := &engineOptions{}
	rootCmd := &cobra.Command{
		Use:          "mcictl",
		Short:        "Material Circularity Index benchmark tool",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.data, "data", "d", "LCA_multi_metal_with_MCI.csv", "reference dataset CSV")
	rootCmd.PersistentFlags().StringVarP(&opts.config, "config", "c", "", "engine configuration YAML")
	rootCmd.PersistentFlags().IntVarP(&opts.clusters, "clusters", "k", 0, "peer cluster count (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log engine initialization")

	rootCmd.AddCommand(analyzeCmd(opts))
	rootCmd.AddCommand(clustersCmd(opts))
	rootCmd.AddCommand(schemaCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
