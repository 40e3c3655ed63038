// Package services provides domain services that orchestrate business
// operations across multiple aggregates. Logic that needs both an order and
// a courier lives here instead of in either aggregate.
package services
