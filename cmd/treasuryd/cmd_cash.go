package main

import (
	"fmt"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/x/cash"
	"github.com/spf13/cobra"
)

func cashCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cash",
		Short: "Move funds and inspect balances",
	}
	cmd.AddCommand(cashSendCmd(e), cashBalanceCmd(e))
	return cmd
}

func cashSendCmd(e *env) *cobra.Command {
	var (
		msg  = cash.SendMsg{Metadata: &treasury.Metadata{Schema: 1}}
		to   string
		from string
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send funds from a local key",
		Long: `Send funds from a local key.

Funding a vault is a send to the address printed by "vault show".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := e.loadKey(from)
			if err != nil {
				return err
			}
			if msg.Destination, err = e.address(to); err != nil {
				return err
			}
			msg.Source = key.PublicKey().Address()
			_, err = e.deliver(cmd, &msg, []string{from})
			return err
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&to, "to", "", "Key name or address receiving the funds.")
	fl.Uint64Var(&msg.Amount, "amount", 0, "Amount to send.")
	fl.StringVar(&msg.Memo, "memo", "", "Optional memo.")
	fl.StringVar(&from, "from", "", "Name of the key sending the funds.")
	for _, name := range []string{"to", "amount", "from"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func cashBalanceCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "balance ADDRESS",
		Short: "Print the balance of a key or an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := e.address(args[0])
			if err != nil {
				return err
			}
			var balance uint64
			err = e.view(func(db treasury.ReadOnlyKVStore) error {
				var err error
				balance, err = cash.NewController(cash.NewBucket()).Balance(db, addr)
				return err
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), balance)
			return err
		},
	}
}
