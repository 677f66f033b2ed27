package main

import (
	"fmt"

	tapp "github.com/iov-one/treasury/app"
	"github.com/iov-one/treasury/cmd/treasuryd/app"
	"github.com/spf13/cobra"
)

func initCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init GENESIS_FILE",
		Short: "Initialize the store from a genesis file",
		Long: `Initialize the store from a genesis file.

The genesis file declares the chain id and the initial state:

  {
    "chain_id": "treasury-dev",
    "app_state": {
      "cash": [{"address": "<hex>", "balance": 1000}],
      "vaults": [{"owner": "<hex>", "name": "operations", ...}]
    }
  }

A store can be initialized only once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := tapp.LoadGenesis(args[0])
			if err != nil {
				return err
			}
			svc, err := e.service()
			if err != nil {
				return err
			}
			if err := svc.InitChain(gen, app.Initializers()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), gen.ChainID)
			return err
		},
	}
}
