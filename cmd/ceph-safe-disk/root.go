package main

import (
	"errors"
	"fmt"

	"cephsafedisk/cmd/ceph-safe-disk/cmdutil"
	configcmd "cephsafedisk/cmd/ceph-safe-disk/configcmd"
	exhaustivecmd "cephsafedisk/cmd/ceph-safe-disk/exhaustive"
	quickcmd "cephsafedisk/cmd/ceph-safe-disk/quick"
	"cephsafedisk/cmd/ceph-safe-disk/ui"
	"cephsafedisk/internal/buildinfo"
	"cephsafedisk/internal/logging"

	"github.com/spf13/cobra"
)

const long = `Check whether an OSD can be removed from a Ceph cluster without losing
data availability.

Exit statuses:
  0: Safe to remove an OSD
  1: Not safe to remove an OSD
  2: General error, or placement groups still pending`

var errNoMode = errors.New("one of --quick or --exhaustive is required")

func newRoot(opts *cmdutil.Options) *cobra.Command {
	var quick, exhaustive bool

	root := &cobra.Command{
		Use:           name + " [-q | -e] [-f pretty|json]",
		Short:         "Check whether an OSD can be removed from a Ceph cluster",
		Long:          long,
		Version:       buildinfo.String(),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.Resolve(cmd.Flags().Changed); err != nil {
				return err
			}
			if err := logging.Configure(logging.Options{Level: opts.LogLevel, Format: opts.LogFormat}); err != nil {
				return err
			}
			ui.ConfigureInteraction(opts.NoInteraction)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case quick:
				return quickcmd.Run(cmd.Context(), opts, cmd.OutOrStdout())
			case exhaustive:
				return exhaustivecmd.Run(cmd.Context(), opts, cmd.OutOrStdout())
			default:
				_ = cmd.Usage()
				return &cmdutil.CodeError{Code: cmdutil.ExitError, Err: errNoMode}
			}
		},
	}
	root.Flags().BoolVarP(&quick, "quick", "q", false, "Give a quick, non-exhaustive status of removable OSDs")
	root.Flags().BoolVarP(&exhaustive, "exhaustive", "e", false, "Give an exhaustive status of removable OSDs")
	opts.Bind(root)

	root.AddCommand(quickcmd.Cmd(opts))
	root.AddCommand(exhaustivecmd.Cmd(opts))
	root.AddCommand(configcmd.Cmd(opts))
	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Printing the version needs neither the config file nor logging.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), name, buildinfo.String())
		},
	}
}
