// Package store holds the dashboard's current jail snapshot.
//
// This package is internal to nastie and manages the single shared state
// between the poller and the HTTP handlers: the most recent merged view of
// the host's jails. The poller replaces the snapshot wholesale after each
// successful refresh; request handlers read whichever snapshot is current.
//
// A snapshot is replaced, never edited. [Snapshot.Current] hands callers the
// published map directly rather than a copy, which is safe because nothing
// writes to a map once it has been published.
//
// Users of the nastie library should not need to interact with this package
// directly. The snapshot is managed internally by the Dashboard.
package store
