// Package cli provides Cobra command definitions for binget.
package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chazuruo/binget/internal/config"
	"github.com/chazuruo/binget/internal/errors"
	"github.com/chazuruo/binget/internal/ui"
)

// NewRootCommand creates the root command. Running it with a repository
// argument performs the install; subcommands hang off it.
func NewRootCommand(version, commit, date string) *cobra.Command {
	in := &config.Inputs{}

	cmd := &cobra.Command{
		Use:   "binget <owner>/<repo>",
		Short: "Install release binaries from GitHub-style release feeds",
		Long: `binget resolves a project's release feed, picks the asset built for this
machine, downloads it, digs the binary out of the archive, and installs it
into a directory on PATH.

The resolved version is printed to stdout; all progress and diagnostics go
to stderr, so the output composes in scripts.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.RepoSpec = args[0]

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := runInstall(ctx, *in)
			if err != nil {
				reportError(ui.New(in.Quiet, in.Debug), err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&in.BinaryName, "name", "n", "", "binary name when it differs from the repository name")
	flags.StringVarP(&in.Version, "tag", "t", "", "release version to install (default: latest)")
	flags.StringVar(&in.OS, "os", "", "target operating system (default: current)")
	flags.StringVar(&in.Arch, "arch", "", "target architecture (default: current)")
	flags.StringVar(&in.ArchivePath, "path", "", "subdirectory inside the archive holding the binary")
	flags.StringVarP(&in.InstallDir, "dir", "d", "", "install directory (default: "+config.DefaultInstallDir+")")
	flags.StringVarP(&in.Pattern, "pattern", "p", "", "required substring in the asset name")
	flags.StringVar(&in.Host, "host", "", "release feed API base URL (default: "+config.DefaultHost+")")
	flags.BoolVarP(&in.Force, "force", "f", false, "reinstall even when the binary is already on PATH")
	flags.BoolVarP(&in.Quiet, "quiet", "q", false, "suppress progress output")
	flags.BoolVar(&in.Debug, "debug", false, "enable diagnostic tracing")

	cmd.AddCommand(NewUpgradeCommand())
	cmd.AddCommand(NewVersionCommand(version, commit, date))

	return cmd
}

// reportError renders a failure on stderr, attaching remediation context
// where the error carries any.
func reportError(printer *ui.Printer, err error) {
	printer.Errorf("%s", err)

	if ne, ok := errors.AsNoMatchError(err); ok && len(ne.Available) > 0 {
		printer.AssetTable("assets published by this release:", ne.Available)
		printer.Infof("hint: relax the filter with --os, --arch, or --pattern")
	}
	if errors.IsLocate(err) {
		printer.Infof("hint: name the binary with --name or point at its directory with --path")
	}
}
