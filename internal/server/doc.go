// Package server provides the HTTP server for the nastie dashboard.
//
// This package is internal to nastie and handles all HTTP concerns:
//
//   - Dashboard serving: Renders the jail listing at "/"
//   - Static assets: Serves the embedded stylesheet and icons at "/static/"
//   - REST API: JSON endpoint at "/api/jails" for the current snapshot
//
// Every request is answered from the in-memory snapshot; nothing the viewer
// does reaches the TrueNAS host. The server supports graceful shutdown via
// context cancellation, with a 5-second timeout for in-flight requests.
//
// Users of the nastie library should not need to interact with this package
// directly. The server is started automatically by the Dashboard.
package server
