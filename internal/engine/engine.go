// Package engine implements the asset internalization engine: the decision
// procedure that, given an asset identifier, determines whether the asset
// is already available locally, fetches or copies it when it is not,
// records the mapping persistently, and guarantees the work happens at
// most once per identifier per run.
//
// The checks are strictly ordered and short-circuiting: in-memory loaded
// set, then persistent cache map, then a storage existence probe, and only
// then a network or filesystem fetch. Repeated requests within a run cost
// one slice scan; repeated requests across runs cost one existence check;
// only the first materialization pays the fetch.
package engine

import (
	"context"
	"path"
	"strings"

	"github.com/conneroisu/basset/internal/archive"
	"github.com/conneroisu/basset/internal/cachemap"
	"github.com/conneroisu/basset/internal/config"
	"github.com/conneroisu/basset/internal/errors"
	"github.com/conneroisu/basset/internal/fetcher"
	"github.com/conneroisu/basset/internal/logging"
	"github.com/conneroisu/basset/internal/storage"
	"github.com/conneroisu/basset/internal/validation"
	"github.com/spf13/afero"
)

// Internalizer owns all per-run state: the loaded set and the cache map
// handle. There is no package-level state; two Internalizers never share
// anything.
type Internalizer struct {
	disk         storage.Disk
	fetch        *fetcher.Client
	fs           afero.Fs
	cache        *cachemap.Map
	loaded       *LoadedSet
	logger       logging.Logger
	appRoot      string
	basePath     string
	cacheBusting string
}

// New constructs an engine. All configuration is resolved before this
// point; the engine never reads ambient state. appRoot is the absolute
// project root stripped from local identifiers.
func New(cfg *config.Config, disk storage.Disk, fetch *fetcher.Client, fs afero.Fs, cache *cachemap.Map, logger logging.Logger, appRoot string) *Internalizer {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	return &Internalizer{
		disk:         disk,
		fetch:        fetch,
		fs:           fs,
		cache:        cache,
		loaded:       NewLoadedSet(),
		logger:       logger.WithComponent("engine"),
		appRoot:      appRoot,
		basePath:     cfg.Assets.Path,
		cacheBusting: cfg.Assets.CacheBusting,
	}
}

// Loaded returns the resolved paths processed so far this run, in order.
func (in *Internalizer) Loaded() []string {
	return in.loaded.Loaded()
}

// Flush persists the cache map if it was mutated. Called once at the end
// of a run.
func (in *Internalizer) Flush() error {
	return in.cache.Save()
}

// Script internalizes a single script asset and emits its script tag.
// On failure the tag references the original identifier so the page keeps
// working.
func (in *Internalizer) Script(identifier string, attrs Attributes) Result {
	return in.internalizeFile(identifier, "",
		func(url string) string { return ScriptTag(url, attrs, in.cacheBusting) },
		ScriptTag(identifier, attrs, ""))
}

// StyleSheet internalizes a single stylesheet asset and emits its link
// tag, falling back to the original reference on failure.
func (in *Internalizer) StyleSheet(identifier string, attrs Attributes) Result {
	return in.internalizeFile(identifier, "",
		func(url string) string { return LinkTag(url, attrs, in.cacheBusting) },
		LinkTag(identifier, attrs, ""))
}

// File internalizes a single asset without emitting markup. output, when
// non-empty, overrides the storage path derived from the identifier.
func (in *Internalizer) File(identifier, output string) Result {
	return in.internalizeFile(identifier, output,
		func(url string) string { return url },
		identifier)
}

// internalizeFile is the shared single-file pipeline (spec'd checks in
// strict order: loaded set, cache map, disk existence, acquire).
func (in *Internalizer) internalizeFile(identifier, output string, emit func(url string) string, fallback string) Result {
	ctx := context.Background()
	resolved := in.resolve(identifier, output)

	if in.loaded.IsLoaded(resolved) {
		return Result{Status: StatusLoaded}
	}
	// Marked before any fetch: a failed asset is not retried within the
	// same run.
	in.loaded.MarkAsLoaded(resolved)

	if url, ok := in.cache.Get(identifier); ok {
		in.logger.Debug(ctx, "cache map hit", "asset", identifier, "url", url)

		return Result{Status: StatusInCache, URL: url, Output: emit(url)}
	}

	if in.disk.Exists(resolved) {
		url := in.disk.URL(resolved)
		in.cache.Add(identifier, url)
		in.logger.Debug(ctx, "already on disk", "asset", identifier, "path", resolved)

		return Result{Status: StatusInCache, URL: url, Output: emit(url)}
	}

	if !in.internalizable(identifier) {
		// Raw passthrough: still renderable, but nothing to fetch.
		in.logger.Debug(ctx, "identifier not internalizable", "asset", identifier)

		return Result{Status: StatusInvalid, Output: fallback}
	}

	content, err := in.acquire(identifier)
	if err != nil {
		in.logger.Warn(ctx, err, "asset fetch failed, emitting original reference", "asset", identifier)

		return Result{Status: StatusInvalid, Output: fallback}
	}

	content = StripSourceMap(content)

	if !in.disk.Put(resolved, content) {
		err := errors.NewWriteError("put_failed", "storage write refused").WithAsset(identifier)
		in.logger.Warn(ctx, err, "asset write failed, emitting original reference", "asset", identifier)

		return Result{Status: StatusInvalid, Output: fallback}
	}

	url := in.disk.URL(resolved)
	in.cache.Add(identifier, url)
	in.logger.Info(ctx, "asset internalized", "asset", identifier, "path", resolved)

	return Result{Status: StatusInternalized, URL: url, Output: emit(url)}
}

// ScriptBlock internalizes an inline script block under the given key and
// emits a script tag referencing the stored file. On failure the raw code
// is emitted so the block still runs inline.
func (in *Internalizer) ScriptBlock(key, code string, attrs Attributes) Result {
	return in.internalizeBlock(key, code, ".js",
		func(url string) string { return ScriptTag(url, attrs, in.cacheBusting) })
}

// StyleBlock internalizes an inline style block under the given key and
// emits a link tag, falling back to the raw code on failure.
func (in *Internalizer) StyleBlock(key, code string, attrs Attributes) Result {
	return in.internalizeBlock(key, code, ".css",
		func(url string) string { return LinkTag(url, attrs, in.cacheBusting) })
}

func (in *Internalizer) internalizeBlock(key, code, ext string, emit func(url string) string) Result {
	ctx := context.Background()

	if path.Ext(key) == "" {
		key += ext
	}
	resolved := in.resolve(key, "")

	if in.loaded.IsLoaded(resolved) {
		return Result{Status: StatusLoaded}
	}
	in.loaded.MarkAsLoaded(resolved)

	if url, ok := in.cache.Get(key); ok {
		return Result{Status: StatusInCache, URL: url, Output: emit(url)}
	}

	if in.disk.Exists(resolved) {
		url := in.disk.URL(resolved)
		in.cache.Add(key, url)

		return Result{Status: StatusInCache, URL: url, Output: emit(url)}
	}

	cleaned := CleanBlock(code)

	if !in.disk.Put(resolved, []byte(cleaned)) {
		err := errors.NewWriteError("put_failed", "storage write refused").WithAsset(key)
		in.logger.Warn(ctx, err, "block write failed, emitting inline code", "asset", key)

		return Result{Status: StatusInvalid, Output: code}
	}

	url := in.disk.URL(resolved)
	in.cache.Add(key, url)
	in.logger.Info(ctx, "block internalized", "asset", key, "path", resolved)

	return Result{Status: StatusInternalized, URL: url, Output: emit(url)}
}

// Archive internalizes every file of an archive (local path or URL) under
// the output directory. The cache map records presence only; nothing is
// emitted.
func (in *Internalizer) Archive(identifier, output string) Result {
	ctx := context.Background()
	resolved := in.resolve(identifier, output)
	resolved = trimArchiveExt(resolved)

	if in.loaded.IsLoaded(resolved) {
		return Result{Status: StatusLoaded}
	}
	in.loaded.MarkAsLoaded(resolved)

	if in.cache.Has(identifier) {
		return Result{Status: StatusInCache}
	}

	if in.disk.Exists(resolved) {
		in.cache.Add(identifier, "")

		return Result{Status: StatusInCache}
	}

	src, cleanup, err := in.localArchive(identifier)
	if err != nil {
		in.logger.Warn(ctx, err, "archive unavailable", "asset", identifier)

		return Result{Status: StatusInvalid}
	}
	defer cleanup()

	tmpDir, err := afero.TempDir(in.fs, "", "basset-extract")
	if err != nil {
		in.logger.Warn(ctx, err, "cannot create extraction directory", "asset", identifier)

		return Result{Status: StatusInvalid}
	}
	defer in.fs.RemoveAll(tmpDir)

	if err := archive.Unpack(in.fs, src, tmpDir); err != nil {
		in.logger.Warn(ctx, err, "archive extraction failed", "asset", identifier)

		return Result{Status: StatusInvalid}
	}

	if err := in.copyTree(tmpDir, resolved); err != nil {
		in.logger.Warn(ctx, err, "archive copy failed", "asset", identifier)

		return Result{Status: StatusInvalid}
	}

	in.cache.Add(identifier, "")
	in.logger.Info(ctx, "archive internalized", "asset", identifier, "path", resolved)

	return Result{Status: StatusInternalized}
}

// Directory internalizes every file under a local source directory,
// preserving the relative layout. The cache map records presence only.
func (in *Internalizer) Directory(identifier, output string) Result {
	ctx := context.Background()
	resolved := in.resolve(identifier, output)

	if in.loaded.IsLoaded(resolved) {
		return Result{Status: StatusLoaded}
	}
	in.loaded.MarkAsLoaded(resolved)

	if in.cache.Has(identifier) {
		return Result{Status: StatusInCache}
	}

	if in.disk.Exists(resolved) {
		in.cache.Add(identifier, "")

		return Result{Status: StatusInCache}
	}

	isDir, err := afero.DirExists(in.fs, identifier)
	if err != nil || !isDir {
		srcErr := errors.NewSourceError("not_a_directory", "source is not a directory").WithAsset(identifier)
		in.logger.Warn(ctx, srcErr, "directory unavailable", "asset", identifier)

		return Result{Status: StatusInvalid}
	}

	if err := in.copyTree(identifier, resolved); err != nil {
		in.logger.Warn(ctx, err, "directory copy failed", "asset", identifier)

		return Result{Status: StatusInvalid}
	}

	in.cache.Add(identifier, "")
	in.logger.Info(ctx, "directory internalized", "asset", identifier, "path", resolved)

	return Result{Status: StatusInternalized}
}

// RefreshDirectory force-re-internalizes a local directory: the stale
// internalized tree and cache entry are dropped first, so the copy runs
// even when earlier runs materialized it. Used by the watch loop.
func (in *Internalizer) RefreshDirectory(identifier, output string) Result {
	resolved := in.resolve(identifier, output)

	in.disk.DeleteDirectory(resolved)
	in.cache.Remove(identifier)

	return in.Directory(identifier, output)
}

// resolve computes the storage-relative path for an identifier, honoring
// an explicit output override.
func (in *Internalizer) resolve(identifier, output string) string {
	if output != "" {
		return validation.SanitizePath(output, in.appRoot, in.basePath)
	}

	return validation.SanitizePath(identifier, in.appRoot, in.basePath)
}

// internalizable reports whether the identifier names something that can
// be fetched or read: a URL, a protocol-relative reference, or a local
// absolute path. Anything else is raw passthrough content.
func (in *Internalizer) internalizable(identifier string) bool {
	return isRemote(identifier) || strings.HasPrefix(identifier, "/")
}

func isRemote(identifier string) bool {
	return strings.HasPrefix(identifier, "http://") ||
		strings.HasPrefix(identifier, "https://") ||
		strings.HasPrefix(identifier, "//") ||
		strings.Contains(identifier, "://")
}

// acquire obtains the asset bytes: over HTTP for remote identifiers, from
// the local filesystem otherwise.
func (in *Internalizer) acquire(identifier string) ([]byte, error) {
	if isRemote(identifier) {
		return in.fetch.Get(identifier)
	}

	data, err := afero.ReadFile(in.fs, identifier)
	if err != nil {
		return nil, errors.NewFetchError("read_failed", "read local asset", err).WithAsset(identifier)
	}

	return data, nil
}

// localArchive returns a local path holding the archive, downloading
// remote archives to a temporary file first. cleanup removes the download
// on both success and failure paths.
func (in *Internalizer) localArchive(identifier string) (string, func(), error) {
	if !isRemote(identifier) {
		ok, err := afero.Exists(in.fs, identifier)
		if err != nil || !ok {
			return "", func() {}, errors.NewSourceError("missing_archive", "archive not found").WithAsset(identifier)
		}

		return identifier, func() {}, nil
	}

	data, err := in.fetch.Get(identifier)
	if err != nil {
		return "", func() {}, err
	}

	tmp, err := afero.TempFile(in.fs, "", "basset-download-*"+archiveExt(identifier))
	if err != nil {
		return "", func() {}, errors.NewFetchError("temp_file", "create download file", err).WithAsset(identifier)
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		in.fs.Remove(name)

		return "", func() {}, errors.NewFetchError("temp_write", "write download file", err).WithAsset(identifier)
	}
	tmp.Close()

	return name, func() { in.fs.Remove(name) }, nil
}

// copyTree writes every file under src into storage under dest, keeping
// the relative layout. The first failed write aborts the copy.
func (in *Internalizer) copyTree(src, dest string) error {
	files, err := listAllFiles(in.fs, src)
	if err != nil {
		return err
	}

	for _, file := range files {
		rel := strings.TrimPrefix(strings.TrimPrefix(file, src), "/")

		data, err := afero.ReadFile(in.fs, file)
		if err != nil {
			return errors.NewFetchError("read_failed", "read source file", err).WithAsset(file)
		}

		if !in.disk.Put(dest+"/"+rel, data) {
			return errors.NewWriteError("put_failed", "storage write refused").WithAsset(file)
		}
	}

	return nil
}

func trimArchiveExt(p string) string {
	for _, ext := range []string{".tar.gz", ".tgz", ".zip", ".tar"} {
		if strings.HasSuffix(strings.ToLower(p), ext) {
			return p[:len(p)-len(ext)]
		}
	}

	return p
}

func archiveExt(identifier string) string {
	for _, ext := range []string{".tar.gz", ".tgz", ".zip", ".tar"} {
		if strings.HasSuffix(strings.ToLower(identifier), ext) {
			return ext
		}
	}

	return path.Ext(identifier)
}
