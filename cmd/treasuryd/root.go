package main

import (
	"fmt"
	"io"

	"github.com/iov-one/treasury"
	"github.com/spf13/cobra"
)

// run executes the command line given by args. The store opened by the
// command is closed even if the command fails.
func run(args []string, stdout io.Writer) error {
	e := &env{}
	root := newRootCmd(e)
	root.SetArgs(args)
	root.SetOut(stdout)
	err := root.Execute()
	if cerr := e.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd(e *env) *cobra.Command {
	v := newViper()

	root := &cobra.Command{
		Use:           "treasuryd",
		Short:         "Programmable treasury vaults",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(v, cmd)
		},
	}
	fl := root.PersistentFlags()
	fl.String(keyHome, defaultHome(), "directory to store keys and data under")
	fl.String(keyBackend, "iavl", "store backend: iavl, bolt or memory")
	fl.String(keyLogLevel, "info", "log level: debug, info, warn or error")
	fl.Bool(keyDebug, false, "print full error details")
	fl.String(keyBech32, "", "human readable part used to print bech32 addresses")
	if err := v.BindPFlags(fl); err != nil {
		panic(err)
	}

	root.AddCommand(
		versionCmd(),
		keysCmd(e),
		initCmd(e),
		vaultCmd(e),
		withdrawalCmd(e),
		cashCmd(e),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), treasury.Version())
			return err
		},
	}
}

