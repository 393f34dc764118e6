// Package services provides domain services that work across the order
// aggregate and the menu catalog.
//
// The package includes:
//   - PriceSnapshotRecorder: turns a (menu item, quantity) request into an
//     order item carrying the catalog name and price as they are right now
package services
