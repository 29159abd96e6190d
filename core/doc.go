// Package core contains the business logic for the opportunity radar.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Contains pure domain models (Source, Opportunity, IngestRun, etc.)
// - rules: Declarative scoring rule table and classifier
// - normalize: Raw record normalization helpers
// - ingest: Source fetchers, deduplicating persister, and run orchestrator
// - interfaces: Dependency injection contracts
// - errors: Typed errors shared across the core
package core
