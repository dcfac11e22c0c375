package api

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ssargent/heimdall/pkg/codec"
	"go.uber.org/zap"
)

// Server holds the API server state
type Server struct {
	deaggregator Deaggregator
	config       ServerConfig
	metrics      *Metrics
	logger       *zap.Logger
	stats        serverStats
}

// serverStats tracks service counters since process start
type serverStats struct {
	started        time.Time
	batches        atomic.Uint64
	recordsIn      atomic.Uint64
	userRecordsOut atomic.Uint64
	recordErrors   atomic.Uint64
}

// NewServer creates a new API server
func NewServer(deaggregator Deaggregator, config ServerConfig, metrics *Metrics) *Server {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		deaggregator: deaggregator,
		config:       config,
		metrics:      metrics,
		logger:       logger,
		stats:        serverStats{started: time.Now()},
	}
}

// handleHealth reports service liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleDeaggregate expands a batch of stream records into user records.
// Per-record decode failures are reported in the response body; they do not
// fail the HTTP call.
func (s *Server) handleDeaggregate(w http.ResponseWriter, r *http.Request) {
	var req DeaggregateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Records) == 0 {
		sendError(w, "No records provided", http.StatusBadRequest)
		return
	}

	start := time.Now()
	userRecords, recordErrors := s.deaggregator.DeaggregateTolerant(toRawRecords(req.Records))
	duration := time.Since(start)

	s.metrics.RecordBatch(len(req.Records), len(userRecords), len(recordErrors), duration)
	s.stats.batches.Add(1)
	s.stats.recordsIn.Add(uint64(len(req.Records)))
	s.stats.userRecordsOut.Add(uint64(len(userRecords)))
	s.stats.recordErrors.Add(uint64(len(recordErrors)))

	s.logger.Info("batch deaggregated",
		zap.String("request_id", r.Header.Get(requestIDHeader)),
		zap.Int("records_in", len(req.Records)),
		zap.Int("user_records", len(userRecords)),
		zap.Int("record_errors", len(recordErrors)),
		zap.Duration("duration", duration))

	sendSuccess(w, DeaggregateResponse{
		UserRecords: toUserRecordOutputs(userRecords),
		Errors:      toRecordErrorOutputs(recordErrors),
	})
}

// handleInspect reports the structure of a single payload without expanding it
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	var req InspectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Data) == 0 {
		sendError(w, "No payload provided", http.StatusBadRequest)
		return
	}

	body, aggregated, err := codec.DecodeAggregate(req.Data)
	resp := InspectResponse{Aggregated: aggregated}
	if err != nil {
		resp.Error = err.Error()
	} else if aggregated {
		resp.PartitionKeyCount = len(body.PartitionKeys)
		resp.ExplicitHashKeyCount = len(body.ExplicitHashKeys)
		resp.RecordCount = len(body.Records)
	}

	sendSuccess(w, resp)
}

// handleStats reports service counters since process start
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, StatsResponse{
		UptimeSeconds:  time.Since(s.stats.started).Seconds(),
		Batches:        s.stats.batches.Load(),
		RecordsIn:      s.stats.recordsIn.Load(),
		UserRecordsOut: s.stats.userRecordsOut.Load(),
		RecordErrors:   s.stats.recordErrors.Load(),
	})
}
