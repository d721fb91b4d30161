// Package storage provides the disk abstraction internalized assets are
// written to. The engine only talks to the Disk interface; LocalDisk backs
// it with a directory on an afero filesystem so tests can run against an
// in-memory disk.
package storage

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Disk is the storage backend contract consumed by the internalization
// engine. Put reports failure via its boolean instead of an error; the
// engine converts a false into an Invalid outcome.
type Disk interface {
	// Exists reports whether content is present at the relative path.
	Exists(relativePath string) bool
	// Put writes contents at the relative path, creating parent
	// directories. Returns false on any write failure.
	Put(relativePath string, contents []byte) bool
	// URL returns the absolute public URL for the relative path.
	URL(relativePath string) string
	// Path returns the absolute local filesystem path for the relative
	// path. Used for archive output targets.
	Path(relativePath string) string
	// BaseURL returns the public URL the disk root is served under.
	BaseURL() string

	DeleteDirectory(relativePath string) error
	MakeDirectory(relativePath string) error
}

// LocalDisk serves a directory on a local (or in-memory) filesystem.
type LocalDisk struct {
	fs      afero.Fs
	root    string
	baseURL string
}

var _ Disk = (*LocalDisk)(nil)

// NewLocalDisk creates a disk rooted at root, publicly served at baseURL.
func NewLocalDisk(fs afero.Fs, root, baseURL string) *LocalDisk {
	return &LocalDisk{
		fs:      fs,
		root:    filepath.Clean(root),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (d *LocalDisk) Exists(relativePath string) bool {
	ok, err := afero.Exists(d.fs, d.Path(relativePath))

	return err == nil && ok
}

func (d *LocalDisk) Put(relativePath string, contents []byte) bool {
	target := d.Path(relativePath)

	if err := d.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false
	}

	return afero.WriteFile(d.fs, target, contents, 0o644) == nil
}

func (d *LocalDisk) URL(relativePath string) string {
	return d.baseURL + "/" + strings.TrimLeft(path.Clean("/"+relativePath), "/")
}

func (d *LocalDisk) Path(relativePath string) string {
	return filepath.Join(d.root, filepath.FromSlash(relativePath))
}

func (d *LocalDisk) BaseURL() string {
	return d.baseURL
}

func (d *LocalDisk) DeleteDirectory(relativePath string) error {
	return d.fs.RemoveAll(d.Path(relativePath))
}

func (d *LocalDisk) MakeDirectory(relativePath string) error {
	return d.fs.MkdirAll(d.Path(relativePath), 0o755)
}
