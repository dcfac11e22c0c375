// Package di provides dependency injection container
package di

import (
	"github.com/ssargent/heimdall/pkg/api" //nolint:depguard
)

// Container holds all the dependencies for the application
type Container struct {
	deaggregatorFactory api.DeaggregatorFactory
	serverFactory       api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		deaggregatorFactory: api.NewDeaggregatorFactory(),
		serverFactory:       api.NewServerFactory(),
	}
}

// GetDeaggregatorFactory returns the deaggregator factory
func (c *Container) GetDeaggregatorFactory() api.DeaggregatorFactory {
	return c.deaggregatorFactory
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetDeaggregatorFactory allows overriding the deaggregator factory (for testing)
func (c *Container) SetDeaggregatorFactory(factory api.DeaggregatorFactory) {
	c.deaggregatorFactory = factory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}
