// Package services provides domain services that work across many Order aggregates.
//
// The package includes:
//   - SalesReporter: folds the orders of a time window into a SalesSummary with
//     revenue broken down by store, channel, product and barista
//
// Services are pure: they perform no I/O and hold no state between calls.
package services
