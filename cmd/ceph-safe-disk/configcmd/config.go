package configcmd

import (
	"errors"
	"fmt"
	"os"

	"cephsafedisk/cmd/ceph-safe-disk/cmdutil"
	"cephsafedisk/cmd/ceph-safe-disk/ui"
	"cephsafedisk/config"

	"github.com/spf13/cobra"
)

func Cmd(opts *cmdutil.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(showCmd(opts))
	cmd.AddCommand(initCmd(opts))
	return cmd
}

func showCmd(opts *cmdutil.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := opts.Config.Marshal()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Muted("# "+opts.Config.Path()))
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func initCmd(opts *cmdutil.Options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.Config.Path()
			_, err := os.Stat(path)
			switch {
			case err == nil && !force:
				return fmt.Errorf("config %q already exists (use --force to overwrite)", path)
			case err == nil:
				fmt.Fprintln(cmd.ErrOrStderr(), ui.WarnMsg("Overwriting %s", path))
			case !errors.Is(err, os.ErrNotExist):
				return fmt.Errorf("stat config %q: %w", path, err)
			}

			cfg := config.Default()
			cfg.SetPath(path)
			if err := cfg.Save(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMsg("Wrote %s", path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
