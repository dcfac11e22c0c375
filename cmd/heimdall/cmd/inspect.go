/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ssargent/heimdall/pkg/codec"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Describe the structure of one stream record payload",
	Long: `Inspect a single stream record payload without expanding it.

Reads the payload from a file (raw bytes, or base64 text with --base64) and
reports whether it is a KPL aggregate, its key table sizes, and its record
count.

Examples:
  heimdall inspect payload.bin
  heimdall inspect --base64 payload.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fromBase64, _ := cmd.Flags().GetBool("base64")

		payload, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
		if fromBase64 {
			decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(payload)))
			if err != nil {
				return fmt.Errorf("failed to decode base64 payload: %w", err)
			}
			payload = decoded
		}

		body, aggregated, err := codec.DecodeAggregate(payload)
		if !aggregated {
			cmd.Printf("not aggregated (%d bytes, treated as a single record)\n", len(payload))
			return nil
		}
		if err != nil {
			cmd.Printf("aggregate with corrupt body: %v\n", err)
			return err
		}

		cmd.Printf("aggregated payload (%d bytes)\n", len(payload))
		cmd.Printf("  partition keys:     %d\n", len(body.PartitionKeys))
		cmd.Printf("  explicit hash keys: %d\n", len(body.ExplicitHashKeys))
		cmd.Printf("  records:            %d\n", len(body.Records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("base64", false, "Treat the file content as base64 text")
}
