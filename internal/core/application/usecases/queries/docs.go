// Package queries contains read operations over recorded orders.
// Query handlers read through ports.OrderRepository, so they work against any storage
// backend and any repository decorator (cache, telemetry) the composition root stacks on it.
package queries
