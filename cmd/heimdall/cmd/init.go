/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/heimdall/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize Heimdall configuration for local development",
	Long: `Initialize a Heimdall configuration file with a generated API key.

This command will:
- Create the configuration directory
- Generate a secure API key for the REST API
- Write the configuration file with restrictive permissions

This is required before running the server unless an API key is passed
on the command line.

Examples:
	  heimdall init
	  heimdall init --config ./heimdall.yaml --force`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Configuration already exists. Use --force to regenerate.\n")
			cmd.Printf("Configuration location: %s\n", configPath)
			return
		}

		cmd.Printf("Initializing Heimdall configuration...\n")

		cfg, err := config.BootstrapConfig(configPath)
		if err != nil {
			cmd.Printf("Error bootstrapping configuration: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("✅ Heimdall configuration created successfully!\n")
		cmd.Printf("API key: %s\n", cfg.Security.APIKey)
		cmd.Printf("Configuration: %s\n", configPath)
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  heimdall serve --config %s\n", configPath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Regenerate the configuration even if it already exists")
}
