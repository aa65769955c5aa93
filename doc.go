// Package nastie provides a lightweight, read-only status dashboard for the
// jails and plugins of a FreeNAS/TrueNAS host.
//
// nastie is designed as an SDK-first library: a host application configures
// a [Dashboard] programmatically and runs it as part of its own process. The
// dashboard polls the TrueNAS REST API in the background and serves a single
// page listing every jail, each with an icon, its address, and a link to the
// plugin's admin portal where one exists. Viewers never talk to the NAS;
// every request is answered from the last good in-memory snapshot.
//
// # Quick Start
//
// Configure credentials and start the dashboard with graceful shutdown:
//
//	d, _ := nastie.New(
//	    nastie.WithUpstream("freenas.local", 80),
//	    nastie.WithCredentials("root", os.Getenv("NASTIE_PASSWORD")),
//	)
//
//	// Set up graceful shutdown on SIGINT/SIGTERM
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	d.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// nastie uses the functional options pattern for configuration:
//
//	d, err := nastie.New(
//	    nastie.WithUpstream("freenas.local", 443),
//	    nastie.WithSecure(true),
//	    nastie.WithCredentials("root", password),
//	    nastie.WithBindAddress("0.0.0.0", 8000),
//	    nastie.WithPollInterval(time.Minute),
//	    nastie.WithTitle("Home Jails"),
//	)
//
// A ready-made command line front end with YAML configuration lives in
// cmd/nastie.
//
// # Architecture
//
// nastie consists of several internal packages (under internal/):
//
//   - internal/truenas: Authenticated client for the TrueNAS REST API
//   - internal/view: Merging of jails and plugins into display records
//   - internal/store: Snapshot holder shared by the poller and the server
//   - internal/poller: Background refresh loop
//   - internal/server: HTTP server for the rendered page, assets and JSON
//   - dashboard: Embedded web UI assets
//
// The internal packages are not part of the public API and may change
// without notice. The library is designed for single-binary deployment
// using Go's embed directive for static assets.
package nastie
