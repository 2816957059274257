package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chazuruo/binget/internal/config"
	"github.com/chazuruo/binget/internal/errors"
)

// selfRepo is the repository binget installs itself from.
const selfRepo = "chazuruo/binget"

// NewUpgradeCommand creates the upgrade command, which runs the regular
// install pipeline against binget's own repository, replacing the running
// executable in place.
func NewUpgradeCommand() *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:           "upgrade",
		Short:         "Upgrade binget to the latest release",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			exe, err := os.Executable()
			if err != nil {
				return errors.Wrap(err, "resolve running executable")
			}

			return runInstall(cmd.Context(), config.Inputs{
				RepoSpec:   selfRepo,
				BinaryName: filepath.Base(exe),
				Version:    tag,
				InstallDir: filepath.Dir(exe),
				Force:      true,
			})
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "release version to upgrade to (default: latest)")

	return cmd
}
