// Package extract unpacks the zstd-compressed tar archives PDK releases
// ship as.
package extract

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Archive extracts the .tar.zst at src into destDir, creating it if needed.
// Entries that would escape destDir are rejected.
func Archive(src, destDir string) error {
	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer file.Close()

	zr, err := zstd.NewReader(file)
	if err != nil {
		return fmt.Errorf("decompressing archive: %w", err)
	}
	defer zr.Close()

	destDir = filepath.Clean(destDir)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	tarReader := tar.NewReader(zr)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}

		target, err := sanitizePath(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("creating file: %w", err)
			}
			if _, err := io.Copy(f, tarReader); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", header.Name, err)
			}
			f.Close()
		case tar.TypeSymlink:
			// A link target outside destDir would let later entries
			// write through it and escape.
			resolved := header.Linkname
			if !filepath.IsAbs(resolved) {
				resolved = filepath.Join(filepath.Dir(target), header.Linkname)
			}
			if !within(destDir, resolved) {
				return fmt.Errorf("archive symlink %q escapes destination directory", header.Name)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}
			os.Remove(target)
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf("creating symlink %s: %w", header.Name, err)
			}
		}
	}
	return nil
}

// sanitizePath joins an archive entry name onto destDir, rejecting entries
// that resolve outside it.
func sanitizePath(destDir, name string) (string, error) {
	target := filepath.Join(destDir, name)
	if !within(destDir, target) {
		return "", fmt.Errorf("archive entry %q escapes destination directory", name)
	}
	return target, nil
}

// within reports whether path stays inside destDir. destDir must already be
// cleaned.
func within(destDir, path string) bool {
	path = filepath.Clean(path)
	return path == destDir || strings.HasPrefix(path, destDir+string(os.PathSeparator))
}
