package cli

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/chazuruo/binget/internal/asset"
	"github.com/chazuruo/binget/internal/config"
	"github.com/chazuruo/binget/internal/download"
	"github.com/chazuruo/binget/internal/errors"
	"github.com/chazuruo/binget/internal/extract"
	"github.com/chazuruo/binget/internal/install"
	"github.com/chazuruo/binget/internal/locate"
	"github.com/chazuruo/binget/internal/release"
	"github.com/chazuruo/binget/internal/ui"
)

// newInstaller is swapped out in tests to pin the elevation mechanism.
var newInstaller = install.New

// runInstall drives the full pipeline: resolve, fetch, match, score,
// download, extract, locate, install.
func runInstall(ctx context.Context, in config.Inputs) error {
	defaults, err := config.LoadDefaults(config.DetectDefaultsPath())
	if err != nil {
		return err
	}
	cfg, err := config.New(in, defaults)
	if err != nil {
		return err
	}

	printer := ui.New(cfg.Quiet, cfg.Debug)

	// A binary already reachable on PATH is good enough unless forced;
	// installed-vs-latest freshness is deliberately not compared.
	if !cfg.Force {
		if path, err := exec.LookPath(cfg.BinaryName); err == nil {
			printer.Infof("%s is already installed at %s (use --force to reinstall)", cfg.BinaryName, path)
			return nil
		}
	}

	client, err := release.NewClient(cfg.Host)
	if err != nil {
		return err
	}

	printer.Infof("resolving %s...", cfg.RepoSpec())
	version, err := client.ResolveVersion(ctx, cfg.Owner, cfg.Repo, cfg.Version)
	if err != nil {
		return err
	}
	printer.Debugf("resolved version %s", version)

	assets, err := client.FetchAssets(ctx, cfg.Owner, cfg.Repo, version)
	if err != nil {
		return err
	}
	printer.Debugf("release has %d assets", len(assets))

	matched, err := asset.NewMatcher(cfg.Platform, cfg.Pattern).Match(assets)
	if err != nil {
		return err
	}
	chosen, err := asset.Select(matched)
	if err != nil {
		return err
	}
	printer.Infof("selected asset %s", chosen.Name)

	scratch, err := makeScratchDir()
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	archivePath := filepath.Join(scratch, chosen.Name)
	printer.Infof("downloading %s...", chosen.URL)
	size, err := download.New().Fetch(ctx, chosen.URL, archivePath)
	if err != nil {
		return err
	}
	printer.Debugf("downloaded %d bytes", size)

	extractDir := filepath.Join(scratch, "extracted")
	if err := os.Mkdir(extractDir, 0700); err != nil {
		return errors.Wrap(err, "create extraction directory")
	}
	if err := extract.Extract(archivePath, extractDir, cfg.BinaryName); err != nil {
		return err
	}

	binPath, err := locate.Locate(extractDir, cfg.BinaryName, cfg.ArchivePath)
	if err != nil {
		return err
	}
	printer.Debugf("located binary at %s", binPath)

	installed, err := installBinary(ctx, cfg, printer, binPath)
	if err != nil {
		return err
	}

	if err := install.Verify(ctx, installed); err != nil {
		printer.Warnf("installed, but %s", err)
	}

	printer.Successf("installed %s %s to %s", cfg.BinaryName, version, installed)
	printer.Resultf("%s", version)
	return nil
}

// installBinary installs into the configured directory, falling back to the
// per-user directory when the system one is unwritable and cannot be
// elevated into.
func installBinary(ctx context.Context, cfg *config.Config, printer *ui.Printer, binPath string) (string, error) {
	installed, err := newInstaller(cfg.InstallDir).Install(ctx, binPath, cfg.BinaryName)
	if err == nil || !errors.IsPermission(err) {
		return installed, err
	}

	userDir, dirErr := install.UserLocalDir()
	if dirErr != nil {
		return "", err
	}
	printer.Warnf("cannot write to %s, installing to %s instead", cfg.InstallDir, userDir)

	installed, err = newInstaller(userDir).Install(ctx, binPath, cfg.BinaryName)
	if err != nil {
		return "", err
	}
	if !onPath(userDir) {
		printer.Warnf("%s is not on PATH; add it to your shell profile", userDir)
	}
	return installed, nil
}

// makeScratchDir creates the run-scoped working directory. The random
// suffix keeps concurrent runs apart and the 0700 mode keeps the downloaded
// payload private until it is installed.
func makeScratchDir() (string, error) {
	dir := filepath.Join(os.TempDir(), "binget-"+uuid.NewString())
	if err := os.Mkdir(dir, 0700); err != nil {
		return "", errors.Wrap(err, "create scratch directory")
	}
	return dir, nil
}

func onPath(dir string) bool {
	clean := filepath.Clean(dir)
	for _, entry := range strings.Split(os.Getenv("PATH"), string(os.PathListSeparator)) {
		if entry != "" && filepath.Clean(entry) == clean {
			return true
		}
	}
	return false
}
