package main

import (
	"fmt"
	"os"

	"github.com/jrsteele09/go-storefront-auth/pkce"
	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time
var Version = "dev"

var envFiles []string

var rootCmd = &cobra.Command{
	Use:     "storefront-auth",
	Short:   "Storefront customer login, session and account API",
	Long:    `Runs the PKCE login flow against the Customer Account API and serves the customer account routes.`,
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(envFiles)
	},
	SilenceUsage: true,
}

var pkceCmd = &cobra.Command{
	Use:   "pkce",
	Short: "Print a fresh PKCE code verifier and S256 challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		pair, err := pkce.New()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "code_verifier:         %s\n", pair.Verifier)
		fmt.Fprintf(cmd.OutOrStdout(), "code_challenge:        %s\n", pair.Challenge)
		fmt.Fprintf(cmd.OutOrStdout(), "code_challenge_method: %s\n", pair.Method)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "storefront-auth version %s\n", Version)
	},
}

func init() {
	rootCmd.SetVersionTemplate("storefront-auth version {{.Version}}\n")
	rootCmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "dotenv file(s) to load before reading the environment (default .env)")
	rootCmd.AddCommand(pkceCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
