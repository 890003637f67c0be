package reconciler

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/skilldock/skilldock/pkg/types"
)

// StatusEntry is the read-only state of one target path.
type StatusEntry struct {
	Target types.Target
	Class  types.EntryClass

	// LinkDest is the symlink destination, set only for EntrySymlink.
	LinkDest string

	// PointsToShared reports whether an existing symlink resolves to the
	// shared directory. Reconciliation never acts on this (existing links
	// are trusted as-is); status only surfaces it so stale links are
	// visible.
	PointsToShared bool

	// Missing marks a versioned family whose root does not exist.
	Missing bool
}

// Status classifies every target without mutating anything.
func (r *Reconciler) Status(sharedDir string, targets []types.Target) []StatusEntry {
	var entries []StatusEntry
	for _, target := range targets {
		switch target.Kind {
		case types.KindVersionedParent:
			entries = append(entries, r.statusVersioned(target, sharedDir)...)
		default:
			entries = append(entries, r.statusOne(target, sharedDir))
		}
	}
	return entries
}

func (r *Reconciler) statusOne(target types.Target, sharedDir string) StatusEntry {
	entry := StatusEntry{Target: target}

	class, err := Classify(r.fs, target.Path)
	if err != nil {
		entry.Class = types.EntryOther
		return entry
	}
	entry.Class = class

	if class == types.EntrySymlink {
		if dest, err := r.fs.Readlink(target.Path); err == nil {
			entry.LinkDest = dest
			entry.PointsToShared = filepath.Clean(dest) == filepath.Clean(sharedDir)
		}
	}
	return entry
}

func (r *Reconciler) statusVersioned(target types.Target, sharedDir string) []StatusEntry {
	entries, err := r.fs.ReadDir(target.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []StatusEntry{{Target: target, Class: types.EntryAbsent, Missing: true}}
		}
		return []StatusEntry{{Target: target, Class: types.EntryOther}}
	}

	var out []StatusEntry
	for _, entry := range entries {
		if !entry.IsDir() && entry.Type()&fs.ModeSymlink == 0 {
			continue
		}
		if strings.HasSuffix(entry.Name(), BackupSuffix) {
			continue
		}
		child := types.Target{
			Path:  filepath.Join(target.Path, entry.Name()),
			Kind:  types.KindSimple,
			Label: target.Label + "/" + entry.Name(),
		}
		out = append(out, r.statusOne(child, sharedDir))
	}
	if len(out) == 0 {
		out = append(out, StatusEntry{Target: target, Class: types.EntryDir})
	}
	return out
}
