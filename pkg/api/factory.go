// Package api provides factory implementations for dependency injection
package api

import (
	"github.com/ssargent/heimdall/pkg/deagg"
	"go.uber.org/zap"
)

// DefaultDeaggregatorFactory is the default implementation of DeaggregatorFactory
type DefaultDeaggregatorFactory struct{}

// NewDeaggregatorFactory creates a new deaggregator factory
func NewDeaggregatorFactory() DeaggregatorFactory {
	return &DefaultDeaggregatorFactory{}
}

// CreateDeaggregator creates an engine logging through the given logger
func (f *DefaultDeaggregatorFactory) CreateDeaggregator(logger *zap.Logger) Deaggregator {
	return deagg.NewDeaggregator(deagg.Config{Logger: logger})
}

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer starts the API server with the given configuration
func (s *DefaultServerStarter) StartServer(config ServerConfig) error {
	return StartServer(config)
}
