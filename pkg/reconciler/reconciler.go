package reconciler

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/skilldock/skilldock/pkg/errors"
	"github.com/skilldock/skilldock/pkg/logging"
	"github.com/skilldock/skilldock/pkg/types"
)

// BackupSuffix is appended to a real directory's path when it is moved
// aside before the symlink is installed in its place.
const BackupSuffix = ".backup"

// Skip reasons, stable for reporting and tests.
const (
	ReasonBackupExists   = "backup path already exists"
	ReasonUnexpectedType = "unexpected file type"
	ReasonHostMissing    = "host directory not present"
)

// Options configures a Reconciler.
type Options struct {
	// DryRun reports what would happen without mutating the filesystem.
	DryRun bool
}

// Reconciler guarantees that consumer targets are symlinks resolving to the
// shared directory, without ever deleting non-symlink content.
type Reconciler struct {
	fs     types.FS
	logger zerolog.Logger
	dryRun bool
}

// New creates a Reconciler operating on the given filesystem.
func New(fsys types.FS, opts Options) *Reconciler {
	return &Reconciler{
		fs:     fsys,
		logger: logging.GetLogger("reconciler"),
		dryRun: opts.DryRun,
	}
}

// Run validates the shared directory and reconciles every target in
// declaration order. A missing or non-directory shared dir is fatal and
// aborts before any target is touched; everything else is recovered per
// target, so the returned report always holds one result per evaluated
// path.
func (r *Reconciler) Run(sharedDir string, targets []types.Target) (*types.Report, error) {
	if err := r.validateSharedDir(sharedDir); err != nil {
		return nil, err
	}

	report := &types.Report{SharedDir: sharedDir}

	for _, target := range targets {
		switch target.Kind {
		case types.KindVersionedParent:
			for _, res := range r.reconcileVersioned(target, sharedDir) {
				report.Add(res)
			}
		default:
			report.Add(r.Reconcile(target, sharedDir))
		}
	}

	r.logger.Info().
		Str("sharedDir", sharedDir).
		Int("results", len(report.Results)).
		Bool("dryRun", r.dryRun).
		Msg("reconciliation run completed")

	return report, nil
}

// validateSharedDir checks the precondition that the shared directory
// exists and is a directory. The reconciler never creates it.
func (r *Reconciler) validateSharedDir(sharedDir string) error {
	info, err := r.fs.Stat(sharedDir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrSharedDirAbsent,
				"shared directory %s does not exist", sharedDir)
		}
		return errors.Wrapf(err, errors.ErrFileAccess,
			"failed to stat shared directory %s", sharedDir)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrSharedDirNotDir,
			"shared directory %s is not a directory", sharedDir)
	}
	return nil
}

// Classify resolves a path into the typed filesystem-entry classification
// that drives the reconcile decision.
func Classify(fsys types.FS, path string) (types.EntryClass, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.EntryAbsent, nil
		}
		return types.EntryOther, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to lstat %s", path)
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return types.EntrySymlink, nil
	case info.IsDir():
		return types.EntryDir, nil
	default:
		return types.EntryOther, nil
	}
}

// Reconcile ensures a single path is a symlink to the shared directory.
// Every call yields exactly one result; failures are folded into skips so
// other targets still proceed.
func (r *Reconciler) Reconcile(target types.Target, sharedDir string) types.Result {
	logger := r.logger.With().
		Str("label", target.Label).
		Str("path", target.Path).
		Logger()

	class, err := Classify(r.fs, target.Path)
	if err != nil {
		logger.Error().Err(err).Msg("failed to classify target")
		return r.skip(target, err.Error())
	}

	switch class {
	case types.EntryAbsent:
		if err := r.createLink(target.Path, sharedDir); err != nil {
			logger.Error().Err(err).Msg("failed to create symlink")
			return r.skip(target, err.Error())
		}
		logger.Info().Str("sharedDir", sharedDir).Bool("dryRun", r.dryRun).Msg("created symlink")
		return r.result(target, types.OutcomeCreated, "", "")

	case types.EntrySymlink:
		// Existing symlinks are trusted without re-validating their
		// destination, even if they point elsewhere.
		logger.Debug().Msg("already a symlink, left untouched")
		return r.result(target, types.OutcomeAlreadyLinked, "", "")

	case types.EntryDir:
		backup := target.Path + BackupSuffix
		if _, err := r.fs.Lstat(backup); err == nil {
			logger.Warn().Str("backup", backup).Msg("backup path already exists, skipping target")
			return r.skip(target, ReasonBackupExists)
		} else if !os.IsNotExist(err) {
			logger.Error().Err(err).Str("backup", backup).Msg("failed to check backup path")
			return r.skip(target, err.Error())
		}

		// Backup strictly before link creation: a crash in between
		// leaves the path absent, which is safe to re-run.
		if err := r.moveAside(target.Path, backup); err != nil {
			logger.Error().Err(err).Msg("failed to move directory to backup")
			return r.skip(target, err.Error())
		}
		if err := r.createLink(target.Path, sharedDir); err != nil {
			logger.Error().Err(err).Msg("failed to create symlink after backup")
			return r.skip(target, err.Error())
		}
		logger.Info().Str("backup", backup).Bool("dryRun", r.dryRun).Msg("backed up directory and created symlink")
		return r.result(target, types.OutcomeBackedUpAndCreated, "", backup)

	default:
		logger.Warn().Msg("unexpected file type, left untouched")
		return r.skip(target, ReasonUnexpectedType)
	}
}

// reconcileVersioned enumerates the immediate version subdirectories of a
// family root and reconciles each as an independent simple target. A
// missing root is not an error: the consumer tool is simply not installed.
func (r *Reconciler) reconcileVersioned(target types.Target, sharedDir string) []types.Result {
	logger := r.logger.With().
		Str("label", target.Label).
		Str("root", target.Path).
		Logger()

	entries, err := r.fs.ReadDir(target.Path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info().Msg("host directory not present, skipping family")
			return []types.Result{r.skip(target, ReasonHostMissing)}
		}
		logger.Error().Err(err).Msg("failed to enumerate versioned family")
		return []types.Result{r.skip(target, err.Error())}
	}

	var results []types.Result
	for _, entry := range entries {
		// Version identifiers are directories (or links left by a
		// previous run); stray files in the cache root are ignored.
		if !entry.IsDir() && entry.Type()&fs.ModeSymlink == 0 {
			logger.Debug().Str("name", entry.Name()).Msg("ignoring non-directory entry")
			continue
		}
		// Backups made by a previous run are not version directories;
		// re-linking them would cascade backups on every run.
		if strings.HasSuffix(entry.Name(), BackupSuffix) {
			logger.Debug().Str("name", entry.Name()).Msg("ignoring backup entry")
			continue
		}
		child := types.Target{
			Path:  filepath.Join(target.Path, entry.Name()),
			Kind:  types.KindSimple,
			Label: target.Label + "/" + entry.Name(),
		}
		results = append(results, r.Reconcile(child, sharedDir))
	}

	if len(results) == 0 {
		logger.Debug().Msg("versioned family has no version subdirectories")
	}
	return results
}

func (r *Reconciler) createLink(path, sharedDir string) error {
	if r.dryRun {
		return nil
	}
	if err := r.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"failed to create parent directory for %s", path)
	}
	if err := r.fs.Symlink(sharedDir, path); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate,
			"failed to create symlink %s", path)
	}
	return nil
}

func (r *Reconciler) moveAside(path, backup string) error {
	if r.dryRun {
		return nil
	}
	if err := r.fs.Rename(path, backup); err != nil {
		return errors.Wrapf(err, errors.ErrRename,
			"failed to rename %s to %s", path, backup)
	}
	return nil
}

func (r *Reconciler) result(target types.Target, outcome types.Outcome, reason, backup string) types.Result {
	return types.Result{
		Target:  target,
		Outcome: outcome,
		Reason:  reason,
		Backup:  backup,
		DryRun:  r.dryRun,
	}
}

func (r *Reconciler) skip(target types.Target, reason string) types.Result {
	return r.result(target, types.OutcomeSkipped, reason, "")
}
