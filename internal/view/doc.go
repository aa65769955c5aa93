// Package view builds the display records served by the dashboard.
//
// The TrueNAS API reports jails and plugins as separate collections. This
// package merges the two into one map keyed by jail identifier: every jail
// becomes a record, and plugins that expose an admin portal decorate the
// matching record with a management link and a project icon. Records without
// a matching plugin fall back to [DefaultIconURL].
//
// Merged maps are published to the store as-is and must not be mutated
// afterwards; [Merge] always returns a freshly allocated map.
//
// Users of the nastie library should not need to interact with this package
// directly.
package view
