// Package extract unpacks a downloaded asset into the scratch directory.
//
// Dispatch is purely by file extension. Archives are unpacked in full so
// the locator can search the tree; a standalone compressed or raw file is
// written under the configured binary name. Failures are never retried:
// a corrupt archive cannot be fixed by downloading it again.
package extract

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazuruo/binget/internal/errors"
)

// Extract unpacks archivePath into destDir. Non-archive files (standalone
// .bz2 or anything unrecognized) are written as destDir/binaryName.
func Extract(archivePath, destDir, binaryName string) error {
	name := filepath.Base(archivePath)

	var err error
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		err = extractTar(archivePath, destDir, gzipReader)
	case strings.HasSuffix(name, ".tar.bz2"):
		err = extractTar(archivePath, destDir, bzip2Reader)
	case strings.HasSuffix(name, ".zip"):
		err = extractZip(archivePath, destDir)
	case strings.HasSuffix(name, ".bz2"):
		err = decompressBzip2(archivePath, filepath.Join(destDir, binaryName))
	default:
		// Already an uncompressed binary.
		err = copyFile(archivePath, filepath.Join(destDir, binaryName))
	}

	if err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrExtraction, name, err)
	}
	return nil
}

func gzipReader(r io.Reader) (io.Reader, error) {
	return gzip.NewReader(r)
}

func bzip2Reader(r io.Reader) (io.Reader, error) {
	return bzip2.NewReader(r), nil
}

// extractTar unpacks a tar stream wrapped in the given decompressor.
func extractTar(archivePath, destDir string, decompress func(io.Reader) (io.Reader, error)) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	dr, err := decompress(f)
	if err != nil {
		return fmt.Errorf("read compressed stream: %w", err)
	}
	if c, ok := dr.(io.Closer); ok {
		defer c.Close()
	}

	tr := tar.NewReader(dr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}

		target, err := securePath(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("create parent dir for %s: %w", target, err)
			}
			if err := writeFile(tr, target, os.FileMode(header.Mode)); err != nil {
				return err
			}
		default:
			// Symlinks, devices, and the rest are irrelevant to binary
			// location.
			continue
		}
	}
}

// extractZip unpacks a zip archive.
func extractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := securePath(destDir, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("create parent dir for %s: %w", target, err)
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open file in zip: %w", err)
		}
		if err := writeFile(rc, target, f.Mode()); err != nil {
			rc.Close()
			return err
		}
		rc.Close()
	}

	return nil
}

// decompressBzip2 inflates a standalone .bz2 file straight to the binary
// name, since there is no archive structure to preserve.
func decompressBzip2(archivePath, destPath string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	return writeFile(bzip2.NewReader(f), destPath, 0755)
}

func copyFile(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	return writeFile(src, destPath, 0755)
}

func writeFile(src io.Reader, destPath string, mode os.FileMode) error {
	f, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}

	_, copyErr := io.Copy(f, src)
	if closeErr := f.Close(); copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		return fmt.Errorf("write %s: %w", destPath, copyErr)
	}
	return nil
}

// securePath joins an archive entry name onto destDir, rejecting entries
// that would escape it. Entries like "./" (GNU tar archives built from "."
// carry one) resolve to destDir itself and are legal.
func securePath(destDir, entryName string) (string, error) {
	target := filepath.Join(destDir, entryName)
	clean := filepath.Clean(destDir)
	if target == clean {
		return target, nil
	}
	if !strings.HasPrefix(target, clean+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal entry path: %s", entryName)
	}
	return target, nil
}
