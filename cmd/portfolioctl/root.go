package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rediet/portfolio/internal/config"
)

var (
	cfgDir  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "portfolioctl",
	Short: "Operate the portfolio site",
	Long: `portfolioctl renders the portfolio page to a static file and issues
tokens for the admin API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config-dir", ".", "directory holding config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(cfgDir)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
