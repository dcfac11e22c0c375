/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/heimdall/pkg/deagg"
	"go.uber.org/zap"
)

// recordLine is one input line: a stream record with base64 data
type recordLine struct {
	Data            []byte `json:"data"`
	PartitionKey    string `json:"partition_key"`
	ExplicitHashKey string `json:"explicit_hash_key,omitempty"`
	SequenceNumber  string `json:"sequence_number"`
}

// userRecordLine is one output line: a deaggregated user record
type userRecordLine struct {
	PartitionKey      string `json:"partition_key"`
	ExplicitHashKey   string `json:"explicit_hash_key,omitempty"`
	Data              []byte `json:"data"`
	SequenceNumber    string `json:"sequence_number"`
	SubSequenceNumber uint64 `json:"sub_sequence_number"`
	Aggregated        bool   `json:"aggregated"`
}

// deaggCmd represents the deagg command
var deaggCmd = &cobra.Command{
	Use:   "deagg [file]",
	Short: "Deaggregate stream records from a file or stdin",
	Long: `Deaggregate KPL-aggregated stream records.

Input is JSON lines, one stream record per line, with base64-encoded data:

  {"data":"9ImawgoDcGsx...","partition_key":"pk","sequence_number":"49001"}

Output is JSON lines, one user record per line. Records that are not KPL
aggregates pass through unchanged. Decode failures are reported on stderr
and, by default, do not stop processing.

Examples:
  heimdall deagg records.jsonl
  cat records.jsonl | heimdall deagg
  heimdall deagg --fail-fast records.jsonl`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failFast, _ := cmd.Flags().GetBool("fail-fast")

		in := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
			defer f.Close()
			in = f
		}

		return runDeagg(in, cmd.OutOrStdout(), failFast, logger)
	},
}

// runDeagg streams record lines through the engine
func runDeagg(in io.Reader, out io.Writer, failFast bool, logger *zap.Logger) error {
	engine := deagg.NewDeaggregator(deagg.Config{Logger: logger})
	enc := json.NewEncoder(out)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rec recordLine
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("line %d: invalid record: %w", line, err)
		}

		records := []deagg.RawRecord{{
			Data:            rec.Data,
			PartitionKey:    rec.PartitionKey,
			ExplicitHashKey: rec.ExplicitHashKey,
			SequenceNumber:  rec.SequenceNumber,
		}}

		userRecords, errs := engine.DeaggregateTolerant(records)
		for _, recErr := range errs {
			if failFast {
				return fmt.Errorf("line %d: %w", line, recErr)
			}
			logger.Warn("record failed to decode",
				zap.Int("line", line),
				zap.String("sequence_number", recErr.SequenceNumber),
				zap.Error(recErr.Err))
		}

		for _, ur := range userRecords {
			if err := enc.Encode(userRecordLine{
				PartitionKey:      ur.PartitionKey,
				ExplicitHashKey:   ur.ExplicitHashKey,
				Data:              ur.Data,
				SequenceNumber:    ur.SequenceNumber,
				SubSequenceNumber: ur.SubSequenceNumber,
				Aggregated:        ur.Aggregated,
			}); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(deaggCmd)
	deaggCmd.Flags().Bool("fail-fast", false, "Stop at the first record that fails to decode")
}
