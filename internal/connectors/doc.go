// Package connectors holds clients for the CRMs records are synced into.
// Each connector implements driven.PersonStore for one CRM.
//
// Available connectors:
//   - pipedrive: Pipedrive persons API (v1)
package connectors
