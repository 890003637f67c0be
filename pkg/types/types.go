package types

import (
	"io/fs"
)

// TargetKind describes how a consumer target is reconciled.
type TargetKind string

const (
	// KindSimple is a single path that should become a symlink to the
	// shared directory.
	KindSimple TargetKind = "simple"

	// KindVersionedParent is a directory whose immediate subdirectories
	// (opaque version identifiers) are each reconciled independently.
	KindVersionedParent TargetKind = "versioned-parent"
)

// Target is a consumer location that should resolve to the shared directory.
type Target struct {
	// Path is the absolute path to reconcile.
	Path string

	// Kind selects simple or versioned-parent handling.
	Kind TargetKind

	// Label is the human-readable name used in reports ("claude",
	// "plugin-cache", ...).
	Label string
}

// Outcome is the per-target reconciliation result.
type Outcome string

const (
	OutcomeAlreadyLinked      Outcome = "already-linked"
	OutcomeCreated            Outcome = "created"
	OutcomeBackedUpAndCreated Outcome = "backed-up"
	OutcomeSkipped            Outcome = "skipped"
)

// Result records what happened to one target path. Results exist only for
// reporting within a single run; nothing is persisted between invocations.
type Result struct {
	Target  Target
	Outcome Outcome

	// Reason explains a skip ("backup path already exists", "unexpected
	// file type", "host directory not present"). Empty otherwise.
	Reason string

	// Backup is the path the previous directory was moved to, set only
	// for OutcomeBackedUpAndCreated.
	Backup string

	// DryRun marks results produced without mutating the filesystem.
	DryRun bool
}

// Report accumulates the results of one reconciliation run.
type Report struct {
	SharedDir string
	Results   []Result
}

// Add appends a result to the report.
func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
}

// Count returns how many results carry the given outcome.
func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// Changed reports whether any filesystem mutation happened (or would
// happen, in dry-run mode).
func (r *Report) Changed() bool {
	for _, res := range r.Results {
		switch res.Outcome {
		case OutcomeCreated, OutcomeBackedUpAndCreated:
			return true
		}
	}
	return false
}

// EntryClass is the typed classification of a filesystem entry that drives
// the reconcile decision procedure.
type EntryClass int

const (
	// EntryAbsent means nothing exists at the path.
	EntryAbsent EntryClass = iota

	// EntrySymlink is an existing symlink, trusted without re-validating
	// its destination.
	EntrySymlink

	// EntryDir is a real (non-symlink) directory.
	EntryDir

	// EntryOther is any other occupant, e.g. a regular file.
	EntryOther
)

// String returns the class name for logs and errors.
func (c EntryClass) String() string {
	switch c {
	case EntryAbsent:
		return "absent"
	case EntrySymlink:
		return "symlink"
	case EntryDir:
		return "directory"
	default:
		return "other"
	}
}

// FS abstracts filesystem operations so the reconciler's branches can be
// exercised against in-memory filesystems in tests.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Rename(oldpath, newpath string) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Remove(name string) error
}
