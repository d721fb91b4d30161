// Package archive extracts asset archives (.zip, .tar.gz, .tgz) into a
// destination directory on an afero filesystem.
package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"path/filepath"
	"strings"

	"github.com/conneroisu/basset/internal/errors"
	"github.com/spf13/afero"
)

// Supported reports whether the file name looks like an archive Unpack can
// handle.
func Supported(name string) bool {
	lower := strings.ToLower(name)

	return strings.HasSuffix(lower, ".zip") ||
		strings.HasSuffix(lower, ".tar.gz") ||
		strings.HasSuffix(lower, ".tgz") ||
		strings.HasSuffix(lower, ".tar")
}

// Unpack extracts the archive at src into destDir, creating it if needed.
// Entries escaping destDir are rejected.
func Unpack(fs afero.Fs, src, destDir string) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return errors.NewArchiveError("read_archive", "read archive", err).WithAsset(src)
	}

	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return unpackZip(fs, data, destDir, src)
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return errors.NewArchiveError("open_gzip", "open gzip stream", err).WithAsset(src)
		}
		defer gz.Close()

		return unpackTar(fs, gz, destDir, src)
	case strings.HasSuffix(lower, ".tar"):
		return unpackTar(fs, bytes.NewReader(data), destDir, src)
	default:
		return errors.NewArchiveError("unsupported", "unsupported archive format", nil).WithAsset(src)
	}
}

func unpackZip(fs afero.Fs, data []byte, destDir, src string) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return errors.NewArchiveError("open_zip", "open zip archive", err).WithAsset(src)
	}

	for _, file := range zr.File {
		if file.FileInfo().IsDir() {
			continue
		}

		target, err := secureJoin(destDir, file.Name)
		if err != nil {
			return err
		}

		rc, err := file.Open()
		if err != nil {
			return errors.NewArchiveError("open_entry", "open zip entry", err).WithAsset(file.Name)
		}
		contents, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return errors.NewArchiveError("read_entry", "read zip entry", err).WithAsset(file.Name)
		}

		if err := writeEntry(fs, target, contents); err != nil {
			return err
		}
	}

	return nil
}

func unpackTar(fs afero.Fs, r io.Reader, destDir, src string) error {
	tr := tar.NewReader(r)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.NewArchiveError("read_tar", "read tar archive", err).WithAsset(src)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}

		target, err := secureJoin(destDir, header.Name)
		if err != nil {
			return err
		}

		contents, err := io.ReadAll(tr)
		if err != nil {
			return errors.NewArchiveError("read_entry", "read tar entry", err).WithAsset(header.Name)
		}

		if err := writeEntry(fs, target, contents); err != nil {
			return err
		}
	}
}

// secureJoin joins an archive entry name onto destDir, rejecting entries
// that would escape it.
func secureJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))

	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(filepath.Separator)) {
		return "", errors.NewArchiveError("entry_escape",
			"archive entry escapes destination directory", nil).WithAsset(name)
	}

	return target, nil
}

func writeEntry(fs afero.Fs, target string, contents []byte) error {
	if err := fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.NewArchiveError("write_entry", "create entry directory", err).WithAsset(target)
	}
	if err := afero.WriteFile(fs, target, contents, 0o644); err != nil {
		return errors.NewArchiveError("write_entry", "write entry", err).WithAsset(target)
	}

	return nil
}
