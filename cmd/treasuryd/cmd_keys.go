package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/treasury/crypto"
	"github.com/iov-one/treasury/errors"
	"github.com/spf13/cobra"
)

func keysCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage local signing keys",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "generate NAME",
			Short: "Generate a new ed25519 key",
			Long: `Generate a new private key and store it in the home directory.

This command fails if a key with the same name already exists. Keys are
never overwritten.`,
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return keyGenerate(cmd, e, args[0])
			},
		},
		&cobra.Command{
			Use:   "show NAME",
			Short: "Print the address of a key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := e.loadKey(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), e.display(key.PublicKey().Address()))
				return err
			},
		},
	)
	return cmd
}

func keyGenerate(cmd *cobra.Command, e *env, name string) error {
	path := e.keyPath(name)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.Wrapf(errors.ErrDuplicate, "key file %q already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create key directory: %s", err)
	}

	key := crypto.GenPrivKeyEd25519()
	raw, err := key.MarshalText()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot write key: %s", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), e.display(key.PublicKey().Address()))
	return err
}
