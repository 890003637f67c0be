// Package reconciler implements the link reconciliation routine: for each
// configured consumer target it guarantees the path is a symlink resolving
// to the canonical shared directory, backing pre-existing real directories
// up to <path>.backup and never deleting non-symlink content. The routine
// is idempotent and runs to completion, reporting exactly one outcome per
// evaluated path.
package reconciler
