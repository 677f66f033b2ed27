package main

import (
	"fmt"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/x/withdrawal"
	"github.com/spf13/cobra"
)

type withdrawalView struct {
	ID         string                        `json:"id"`
	Withdrawal *withdrawal.WithdrawalRequest `json:"withdrawal"`
}

func withdrawalCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdrawal",
		Short: "Request, approve and execute withdrawals",
	}
	cmd.AddCommand(
		withdrawalRequestCmd(e),
		withdrawalApproveCmd(e),
		withdrawalExecuteCmd(e),
		withdrawalShowCmd(e),
		withdrawalListCmd(e),
	)
	return cmd
}

func withdrawalRequestCmd(e *env) *cobra.Command {
	var (
		msg  = withdrawal.RequestMsg{Metadata: &treasury.Metadata{Schema: 1}}
		to   string
		from []string
	)
	cmd := &cobra.Command{
		Use:   "request VAULT_ID",
		Short: "Request a withdrawal from the vault",
		Long: `Request a withdrawal from the vault.

The first signer that is a staff member of the vault becomes the
requester. The printed id is used to approve and execute the request.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if msg.Destination, err = e.address(to); err != nil {
				return err
			}
			msg.VaultID = id
			res, err := e.deliver(cmd, &msg, from)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatID(res.Data))
			return err
		},
	}
	fl := cmd.Flags()
	fl.Uint64Var(&msg.Amount, "amount", 0, "Amount to withdraw.")
	fl.StringVar(&to, "to", "", "Key name or address receiving the funds.")
	fl.StringVar(&msg.Reason, "reason", "", "Human readable justification.")
	fl.StringSliceVar(&from, "from", nil, "Names of the keys signing the transaction.")
	for _, name := range []string{"amount", "to", "from"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func withdrawalApproveCmd(e *env) *cobra.Command {
	var from []string
	cmd := &cobra.Command{
		Use:   "approve WITHDRAWAL_ID",
		Short: "Approve a pending withdrawal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			msg := &withdrawal.ApproveMsg{Metadata: &treasury.Metadata{Schema: 1}, WithdrawalID: id}
			res, err := e.deliver(cmd, msg, from)
			if err != nil {
				return err
			}
			// Log carries the status after the approval.
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Log)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&from, "from", nil, "Names of the keys signing the transaction.")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func withdrawalExecuteCmd(e *env) *cobra.Command {
	var from []string
	cmd := &cobra.Command{
		Use:   "execute WITHDRAWAL_ID",
		Short: "Transfer the funds of an approved withdrawal",
		Long: `Transfer the funds of an approved withdrawal to its destination.

Anyone can execute a withdrawal, a signature is optional.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			msg := &withdrawal.ExecuteMsg{Metadata: &treasury.Metadata{Schema: 1}, WithdrawalID: id}
			_, err = e.deliver(cmd, msg, from)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&from, "from", nil, "Names of the keys signing the transaction.")
	return cmd
}

func withdrawalShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show WITHDRAWAL_ID",
		Short: "Print a withdrawal request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var w *withdrawal.WithdrawalRequest
			err = e.view(func(db treasury.ReadOnlyKVStore) error {
				var err error
				w, err = withdrawal.Load(db, withdrawal.NewBucket(), id)
				return err
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, withdrawalView{ID: formatID(id), Withdrawal: w})
		},
	}
}

func withdrawalListCmd(e *env) *cobra.Command {
	var (
		status string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "list VAULT_ID",
		Short: "List withdrawals of the vault, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st := withdrawal.StatusInvalid
			if status != "" {
				if st, err = withdrawal.ParseStatus(status); err != nil {
					return err
				}
			}
			var views []withdrawalView
			err = e.view(func(db treasury.ReadOnlyKVStore) error {
				found, keys, err := withdrawal.ByVault(db, withdrawal.NewBucket(), id, st, limit)
				if err != nil {
					return err
				}
				for i, w := range found {
					views = append(views, withdrawalView{ID: formatID(keys[i]), Withdrawal: w})
				}
				return nil
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, views)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only list withdrawals with given status (pending, approved, executed).")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of withdrawals listed.")
	return cmd
}
