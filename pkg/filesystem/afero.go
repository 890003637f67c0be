package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/skilldock/skilldock/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS implements types.FS using afero. Afero's MemMapFs has no native
// symlink support, so links are simulated: the link target is stored as
// file content and the link paths are tracked so Lstat can classify them.
type aferoFS struct {
	fs    afero.Fs
	links map[string]string
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(afs afero.Fs) types.FS {
	return &aferoFS{fs: afs, links: make(map[string]string)}
}

// NewMemory creates an in-memory filesystem for tests
func NewMemory() types.FS {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if target, ok := a.links[name]; ok {
		return &linkInfo{name: name, target: target}, nil
	}
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	dirEntries := make([]fs.DirEntry, len(entries))
	for i, entry := range entries {
		dirEntries[i] = fs.FileInfoToDirEntry(entry)
	}
	return dirEntries, nil
}

func (a *aferoFS) Symlink(oldname, newname string) error {
	if _, err := a.Lstat(newname); err == nil {
		return &fs.PathError{Op: "symlink", Path: newname, Err: fs.ErrExist}
	}
	if err := afero.WriteFile(a.fs, newname, []byte(oldname), 0777); err != nil {
		return err
	}
	a.links[newname] = oldname
	return nil
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if target, ok := a.links[name]; ok {
		return target, nil
	}
	return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	if err := a.fs.Rename(oldpath, newpath); err != nil {
		return err
	}
	if target, ok := a.links[oldpath]; ok {
		delete(a.links, oldpath)
		a.links[newpath] = target
	}
	return nil
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) Remove(name string) error {
	if err := a.fs.Remove(name); err != nil {
		return err
	}
	delete(a.links, name)
	return nil
}

// linkInfo is the FileInfo reported for simulated symlinks
type linkInfo struct {
	name   string
	target string
}

func (l *linkInfo) Name() string       { return filepath.Base(l.name) }
func (l *linkInfo) Size() int64        { return int64(len(l.target)) }
func (l *linkInfo) Mode() fs.FileMode  { return 0777 | os.ModeSymlink }
func (l *linkInfo) ModTime() time.Time { return time.Time{} }
func (l *linkInfo) IsDir() bool        { return false }
func (l *linkInfo) Sys() interface{}   { return nil }
