// Package cli implements the neighbourhood command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mustaphathe3rd/neighbourhood/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "neighbourhood",
	Short: "Neighbourhood - product price search CLI & MCP server",
	Long:  "Search product prices across neighbourhood markets and serve the catalog to MCP clients.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("db", "", "Path to the catalog database (default ~/.neighbourhood/catalog.db)")
	rootCmd.PersistentFlags().String("boundaries", "", "Path to the region boundaries GeoJSON file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("boundaries"); v != "" {
		cfg.BoundariesPath = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
}
