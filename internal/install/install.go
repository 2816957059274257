// Package install places the located binary into its final directory.
//
// System directories like /usr/local/bin are usually not writable by the
// invoking user, so the installer resolves an elevation mechanism once per
// run and routes the directory creation and the copy through it when plain
// filesystem access fails. An unwritable directory with no elevation at all
// is the single recoverable failure in the pipeline: the caller retries
// into a user-owned directory.
package install

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/chazuruo/binget/internal/errors"
)

// Installer copies a binary into a target directory, elevating when the
// directory is not writable by the current user.
type Installer struct {
	dir      string
	elevator *Elevator
}

// New creates an installer for dir. The elevation mechanism is resolved
// immediately so every operation in the run uses the same one.
func New(dir string) *Installer {
	return &Installer{dir: dir, elevator: ResolveElevator()}
}

// NewWithElevator creates an installer with a fixed elevation mechanism
// (useful for testing).
func NewWithElevator(dir string, elevator *Elevator) *Installer {
	return &Installer{dir: dir, elevator: elevator}
}

// Dir returns the target directory.
func (i *Installer) Dir() string { return i.dir }

// UserLocalDir returns the per-user fallback install directory.
func UserLocalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home directory")
	}
	return filepath.Join(home, ".local", "bin"), nil
}

// Install makes srcPath executable and copies it into the target directory
// as binaryName, returning the installed path. When the directory cannot be
// created or written and no elevation mechanism works, the error wraps
// ErrPermission so the caller can retry elsewhere.
func (i *Installer) Install(ctx context.Context, srcPath, binaryName string) (string, error) {
	if err := os.Chmod(srcPath, 0755); err != nil {
		return "", errors.Wrap(err, "mark binary executable")
	}

	if err := i.ensureDir(ctx); err != nil {
		return "", err
	}

	dest := filepath.Join(i.dir, binaryName)
	if dirWritable(i.dir) {
		if err := copyFile(srcPath, dest); err != nil {
			return "", errors.Wrap(err, "copy binary")
		}
		return dest, nil
	}

	if i.elevator.Mode == ModeNone {
		return "", fmt.Errorf("%w: %s is not writable and no elevation mechanism is available", errors.ErrPermission, i.dir)
	}
	// An elevation mechanism existed and was tried; its failure is fatal,
	// not the recoverable no-elevation case.
	if err := i.elevator.Run(ctx, "cp", srcPath, dest); err != nil {
		return "", fmt.Errorf("elevated copy to %s: %w", dest, err)
	}
	if err := i.elevator.Run(ctx, "chmod", "755", dest); err != nil {
		return "", fmt.Errorf("elevated chmod of %s: %w", dest, err)
	}
	return dest, nil
}

// ensureDir creates the target directory, trying an unprivileged mkdir
// before reaching for elevation.
func (i *Installer) ensureDir(ctx context.Context) error {
	if info, err := os.Stat(i.dir); err == nil {
		if !info.IsDir() {
			return errors.Validationf("install target %s is not a directory", i.dir)
		}
		return nil
	}

	if err := os.MkdirAll(i.dir, 0755); err == nil {
		return nil
	}

	if i.elevator.Mode == ModeNone {
		return fmt.Errorf("%w: cannot create %s and no elevation mechanism is available", errors.ErrPermission, i.dir)
	}
	if err := i.elevator.Run(ctx, "mkdir", "-p", i.dir); err != nil {
		return fmt.Errorf("elevated mkdir of %s: %w", i.dir, err)
	}
	return nil
}

// Verify runs the installed binary with common version flags until one
// succeeds. A failure here is advisory: some binaries have no version flag
// at all, so the caller warns instead of failing the install.
func Verify(ctx context.Context, path string) error {
	flags := []string{"--version", "-version", "version", "-V", "-v"}

	var lastErr error
	for _, flag := range flags {
		cmd := exec.CommandContext(ctx, path, flag)
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
		if err := cmd.Run(); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return fmt.Errorf("binary did not respond to any version flag: %w", lastErr)
}

// dirWritable probes write access by creating and removing a temp file,
// which is more reliable than permission-bit arithmetic (ACLs, root
// squashing, read-only mounts).
func dirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".binget-write-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

func copyFile(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	f, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
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
