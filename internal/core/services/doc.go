// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// PersonSync runs the map, search and upsert flow for one record.
// SettingsService resolves credentials from the environment and config store.
package services
