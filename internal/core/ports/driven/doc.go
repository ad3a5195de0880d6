// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PersonStore: Person lookup and writes (Pipedrive REST API)
//   - RecordMapper: Input document to CRM record transformation
//   - ConfigStore: Application configuration (TOML file)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
