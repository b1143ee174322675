package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rediet/portfolio/pkg/auth"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the admin API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lifespan := cfg.Auth.TokenLifespan
		if tokenTTL > 0 {
			lifespan = tokenTTL
		}

		token, err := auth.NewJWTService(cfg.Auth.JWTSecret, lifespan).GenerateToken(tokenSubject)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "operator", "token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to auth.token_lifespan)")
	rootCmd.AddCommand(tokenCmd)
}
