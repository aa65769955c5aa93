// Package truenas provides a read-only client for the FreeNAS/TrueNAS
// middleware REST API.
//
// This package is internal to nastie and covers exactly the two collections
// the dashboard correlates:
//
//   - [Client.Jails]: the configured jails (GET {base}/jail)
//   - [Client.Plugins]: the installed plugins (GET {base}/plugin)
//
// Every request carries a preset HTTP Basic Authorization header built once
// from the configured credentials. Failures are reported as [*FetchError]
// (connection problems, non-2xx responses) or [*ParseError] (bodies that do
// not decode into the expected collection shape) so the polling layer can
// tell them apart; the client itself never retries and never terminates the
// process.
//
// Users of the nastie library should not need to interact with this package
// directly. Configuration is done through the main nastie package.
package truenas
