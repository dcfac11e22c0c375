// Package api provides interfaces for dependency injection
package api

import (
	"github.com/ssargent/heimdall/pkg/deagg"
	"go.uber.org/zap"
)

// Deaggregator defines the engine operations the API server depends on
type Deaggregator interface {
	// DeaggregateTolerant expands records, collecting per-record errors
	// alongside successfully produced user records
	DeaggregateTolerant(records []deagg.RawRecord) ([]deagg.UserRecord, []*deagg.RecordError)
}

// DeaggregatorFactory creates deaggregation engines
type DeaggregatorFactory interface {
	// CreateDeaggregator creates an engine logging through the given logger
	CreateDeaggregator(logger *zap.Logger) Deaggregator
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer starts the API server with the given configuration
	StartServer(config ServerConfig) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
