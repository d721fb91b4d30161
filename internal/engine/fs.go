package engine

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// listAllFiles returns every regular file under dir, recursively, with
// forward-slash paths.
func listAllFiles(fs afero.Fs, dir string) ([]string, error) {
	var files []string

	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		files = append(files, filepath.ToSlash(path))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
