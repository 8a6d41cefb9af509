// Package bundle packages a run's artifact directory for download.
package bundle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mholt/archiver/v3"
)

// TarDirectory writes a tar with every artifact rooted at path. Entries are
// named relative to the run directory's parent so the archive unpacks into a
// single directory carrying the run ID.
func TarDirectory(w io.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	t := archiver.NewTar()
	if err := t.Create(w); err != nil {
		return err
	}
	defer t.Close()

	baseDir := filepath.Dir(path)
	return filepath.Walk(path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		relPath, err := filepath.Rel(baseDir, path)
		if err != nil {
			return err
		}

		return t.Write(archiver.File{
			FileInfo: archiver.FileInfo{
				FileInfo:   info,
				CustomName: relPath,
			},
			ReadCloser: file,
		})
	})
}

// Filename is the tarball name for a given run ID.
func Filename(runID string) string {
	return runID + ".tar"
}
