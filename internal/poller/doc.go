// Package poller drives the periodic refresh of the jail snapshot.
//
// This package is internal to nastie and owns the single background
// goroutine that fetches the jail and plugin collections from the TrueNAS
// API, merges them and publishes the result to the store. Polling starts
// with an immediate refresh so the dashboard has data as soon as the
// upstream answers, then continues on a fixed interval.
//
// A failed refresh is logged and skipped; the previously published snapshot
// stays current until the next successful cycle. The poller never gives up.
//
// Users of the nastie library should not need to interact with this package
// directly. Polling is managed internally by the Dashboard.
package poller
