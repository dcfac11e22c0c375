/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/heimdall/pkg/config"
	"github.com/ssargent/heimdall/pkg/di"
	"go.uber.org/zap"
)

// container holds the application dependencies injected by main
var container *di.Container

// logger is built once per invocation from the --log-level flag
var logger = zap.NewNop()

// SetContainer injects the dependency container. Called by main.main().
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "heimdall",
	Short: "Heimdall - KPL deaggregation for Kinesis consumers",
	Long: `Heimdall decodes KPL-aggregated Kinesis stream records back into the
original user records a producer submitted, with partition keys, explicit
hash keys, and payloads intact.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		l, err := config.Logging{Level: level}.BuildLogger()
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("config", "", "Path to the configuration file")
}
