// Package config provides the immutable run configuration for binget.
//
// A Config is constructed exactly once from command-line inputs (layered on
// top of the optional TOML defaults file) and threaded explicitly through
// every pipeline stage; no stage reads ambient or global state.
package config

import (
	"regexp"
	"strings"

	"github.com/chazuruo/binget/internal/errors"
	"github.com/chazuruo/binget/internal/platform"
)

// DefaultInstallDir is the system-wide install directory used when neither
// the flag nor the defaults file names one.
const DefaultInstallDir = "/usr/local/bin"

// DefaultHost is the default release feed API host.
const DefaultHost = "https://api.github.com"

var (
	repoRegexp = regexp.MustCompile(`^[\w.-]+/[\w.-]+$`)
	nameRegexp = regexp.MustCompile(`^[\w.-]+$`)
)

// Config is the immutable configuration for one run.
type Config struct {
	// Owner and Repo identify the upstream repository.
	Owner string
	Repo  string

	// BinaryName is the name of the executable to locate and install.
	// Defaults to Repo.
	BinaryName string

	// Version is the explicit version to install; empty means latest.
	Version string

	// Platform is the canonicalized target platform.
	Platform platform.Spec

	// ArchivePath is an explicit in-archive subdirectory holding the
	// binary; empty enables the heuristic search.
	ArchivePath string

	// InstallDir is the target install directory.
	InstallDir string

	// Pattern is a required case-sensitive asset-name substring.
	Pattern string

	// Host is the release feed API base URL.
	Host string

	// Force reinstalls even when the binary is already on PATH.
	Force bool

	// Quiet suppresses progress output on stderr.
	Quiet bool

	// Debug enables verbose diagnostic tracing on stderr.
	Debug bool
}

// Inputs carries the raw command-line values a Config is built from.
type Inputs struct {
	RepoSpec    string // positional owner/repo
	BinaryName  string
	Version     string
	OS          string
	Arch        string
	ArchivePath string
	InstallDir  string
	Pattern     string
	Host        string
	Force       bool
	Quiet       bool
	Debug       bool
}

// New validates the raw inputs against the file defaults and builds the run
// configuration. Validation failures are reported before any network
// activity happens.
func New(in Inputs, defaults *Defaults) (*Config, error) {
	if !repoRegexp.MatchString(in.RepoSpec) {
		return nil, errors.Validationf("invalid repository %q, expected owner/repo", in.RepoSpec)
	}
	owner, repo, _ := strings.Cut(in.RepoSpec, "/")

	name := in.BinaryName
	if name == "" {
		name = repo
	}
	if !nameRegexp.MatchString(name) {
		return nil, errors.Validationf("invalid binary name %q", name)
	}

	spec := platform.Current()
	if in.OS != "" {
		spec.OS = platform.CanonicalOS(in.OS)
	}
	if in.Arch != "" {
		spec.Arch = platform.CanonicalArch(in.Arch)
	}

	cfg := &Config{
		Owner:       owner,
		Repo:        repo,
		BinaryName:  name,
		Version:     strings.TrimPrefix(in.Version, "v"),
		Platform:    spec,
		ArchivePath: in.ArchivePath,
		InstallDir:  in.InstallDir,
		Pattern:     in.Pattern,
		Host:        in.Host,
		Force:       in.Force,
		Quiet:       in.Quiet,
		Debug:       in.Debug,
	}

	if defaults != nil {
		if cfg.InstallDir == "" {
			cfg.InstallDir = defaults.InstallDir
		}
		if cfg.Host == "" {
			cfg.Host = defaults.Host
		}
		cfg.Quiet = cfg.Quiet || defaults.Quiet
	}
	if cfg.InstallDir == "" {
		cfg.InstallDir = DefaultInstallDir
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}

	return cfg, nil
}

// RepoSpec returns the owner/repo identifier.
func (c *Config) RepoSpec() string {
	return c.Owner + "/" + c.Repo
}
