package api

import (
	"time"

	"github.com/ssargent/heimdall/pkg/deagg"
	"go.uber.org/zap"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string
	Logger *zap.Logger // nil means no logging
}

// RecordInput is one stream record submitted for deaggregation. Data is
// base64-encoded on the wire (encoding/json handles []byte that way).
type RecordInput struct {
	Data                        []byte     `json:"data"`
	PartitionKey                string     `json:"partition_key"`
	ExplicitHashKey             string     `json:"explicit_hash_key,omitempty"`
	SequenceNumber              string     `json:"sequence_number"`
	ApproximateArrivalTimestamp *time.Time `json:"approximate_arrival_timestamp,omitempty"`
}

// DeaggregateRequest is the body of POST /api/v1/deaggregate
type DeaggregateRequest struct {
	Records []RecordInput `json:"records"`
}

// UserRecordOutput is one deaggregated user record
type UserRecordOutput struct {
	PartitionKey      string `json:"partition_key"`
	ExplicitHashKey   string `json:"explicit_hash_key,omitempty"`
	Data              []byte `json:"data"`
	SequenceNumber    string `json:"sequence_number"`
	SubSequenceNumber uint64 `json:"sub_sequence_number"`
	Aggregated        bool   `json:"aggregated"`
}

// RecordErrorOutput describes a decode failure scoped to one input record
type RecordErrorOutput struct {
	SequenceNumber    string `json:"sequence_number"`
	SubSequenceNumber uint64 `json:"sub_sequence_number"`
	Error             string `json:"error"`
}

// DeaggregateResponse is the payload of a successful deaggregate call.
// Errors are per-record; their presence does not fail the HTTP call.
type DeaggregateResponse struct {
	UserRecords []UserRecordOutput  `json:"user_records"`
	Errors      []RecordErrorOutput `json:"errors,omitempty"`
}

// InspectRequest is the body of POST /api/v1/inspect
type InspectRequest struct {
	Data []byte `json:"data"`
}

// InspectResponse describes the structure of one payload without expanding it
type InspectResponse struct {
	Aggregated           bool   `json:"aggregated"`
	PartitionKeyCount    int    `json:"partition_key_count,omitempty"`
	ExplicitHashKeyCount int    `json:"explicit_hash_key_count,omitempty"`
	RecordCount          int    `json:"record_count,omitempty"`
	Error                string `json:"error,omitempty"`
}

// StatsResponse reports service counters since process start
type StatsResponse struct {
	UptimeSeconds  float64 `json:"uptime_seconds"`
	Batches        uint64  `json:"batches"`
	RecordsIn      uint64  `json:"records_in"`
	UserRecordsOut uint64  `json:"user_records_out"`
	RecordErrors   uint64  `json:"record_errors"`
}

// toRawRecords converts request records into engine input
func toRawRecords(inputs []RecordInput) []deagg.RawRecord {
	records := make([]deagg.RawRecord, 0, len(inputs))
	for _, in := range inputs {
		raw := deagg.RawRecord{
			Data:            in.Data,
			PartitionKey:    in.PartitionKey,
			ExplicitHashKey: in.ExplicitHashKey,
			SequenceNumber:  in.SequenceNumber,
		}
		if in.ApproximateArrivalTimestamp != nil {
			raw.ApproximateArrivalTimestamp = *in.ApproximateArrivalTimestamp
		}
		records = append(records, raw)
	}
	return records
}

// toUserRecordOutputs converts engine output into response records
func toUserRecordOutputs(records []deagg.UserRecord) []UserRecordOutput {
	out := make([]UserRecordOutput, 0, len(records))
	for _, ur := range records {
		out = append(out, UserRecordOutput{
			PartitionKey:      ur.PartitionKey,
			ExplicitHashKey:   ur.ExplicitHashKey,
			Data:              ur.Data,
			SequenceNumber:    ur.SequenceNumber,
			SubSequenceNumber: ur.SubSequenceNumber,
			Aggregated:        ur.Aggregated,
		})
	}
	return out
}

// toRecordErrorOutputs converts scoped engine errors into response errors
func toRecordErrorOutputs(errs []*deagg.RecordError) []RecordErrorOutput {
	if len(errs) == 0 {
		return nil
	}
	out := make([]RecordErrorOutput, 0, len(errs))
	for _, recErr := range errs {
		out = append(out, RecordErrorOutput{
			SequenceNumber:    recErr.SequenceNumber,
			SubSequenceNumber: recErr.SubSequenceNumber,
			Error:             recErr.Err.Error(),
		})
	}
	return out
}
