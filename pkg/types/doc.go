// Package types defines the core domain types shared across skilldock:
// consumer targets, reconciliation outcomes, the filesystem-entry
// classification, and the FS abstraction used to keep the reconciler
// testable without touching the real filesystem.
package types
