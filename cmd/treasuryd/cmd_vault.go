package main

import (
	"fmt"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/x/cash"
	"github.com/iov-one/treasury/x/policy"
	"github.com/iov-one/treasury/x/vault"
	"github.com/spf13/cobra"
)

// vaultView is the JSON presentation of a vault together with its balance.
type vaultView struct {
	ID      string       `json:"id"`
	Balance uint64       `json:"balance"`
	Vault   *vault.Vault `json:"vault"`
}

func vaultCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Create, inspect and manage vaults",
	}
	cmd.AddCommand(
		vaultCreateCmd(e),
		vaultShowCmd(e),
		vaultListCmd(e),
		vaultRolesCmd(e),
		vaultMemberCmd(e, "add-approver", "Add an approver to the vault", func(id []byte, addr treasury.Address) treasury.Msg {
			return &vault.AddApproverMsg{Metadata: &treasury.Metadata{Schema: 1}, VaultID: id, Approver: addr}
		}),
		vaultMemberCmd(e, "remove-approver", "Remove an approver from the vault", func(id []byte, addr treasury.Address) treasury.Msg {
			return &vault.RemoveApproverMsg{Metadata: &treasury.Metadata{Schema: 1}, VaultID: id, Approver: addr}
		}),
		vaultMemberCmd(e, "add-staff", "Add a staff member to the vault", func(id []byte, addr treasury.Address) treasury.Msg {
			return &vault.AddStaffMsg{Metadata: &treasury.Metadata{Schema: 1}, VaultID: id, Staff: addr}
		}),
		vaultMemberCmd(e, "remove-staff", "Remove a staff member from the vault", func(id []byte, addr treasury.Address) treasury.Msg {
			return &vault.RemoveStaffMsg{Metadata: &treasury.Metadata{Schema: 1}, VaultID: id, Staff: addr}
		}),
		vaultFlagCmd(e, "freeze", "Block new withdrawal requests", func(id []byte) treasury.Msg {
			return &vault.FreezeMsg{Metadata: &treasury.Metadata{Schema: 1}, VaultID: id}
		}),
		vaultFlagCmd(e, "unfreeze", "Accept withdrawal requests again", func(id []byte) treasury.Msg {
			return &vault.UnfreezeMsg{Metadata: &treasury.Metadata{Schema: 1}, VaultID: id}
		}),
	)
	return cmd
}

func vaultCreateCmd(e *env) *cobra.Command {
	var (
		msg  = vault.CreateMsg{Metadata: &treasury.Metadata{Schema: 1}}
		from []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new vault owned by the first signer",
		Long: `Create a new vault owned by the first signer.

The vault is created without approvers and staff. Use add-approver and
add-staff to set them up. The printed id is used by all other vault and
withdrawal commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := e.deliver(cmd, &msg, from)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatID(res.Data))
			return err
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&msg.Name, "name", "", "Unique name of the vault among the vaults of the owner.")
	fl.Uint32Var(&msg.ApprovalThreshold, "threshold", 1, "Number of approvals required to release a withdrawal.")
	fl.Uint64Var(&msg.DailyLimit, "daily-limit", 0, "Daily spending limit.")
	fl.Uint64Var(&msg.TxLimit, "tx-limit", 0, "Maximum amount of a single withdrawal.")
	fl.Uint64Var(&msg.LargeWithdrawalThreshold, "large-threshold", 0, "Withdrawals of at least this amount are delayed.")
	fl.Uint64Var(&msg.DelayHours, "delay-hours", 0, "Delay applied to large withdrawals.")
	fl.StringSliceVar(&from, "from", nil, "Names of the keys signing the transaction.")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func vaultShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show VAULT_ID",
		Short: "Print the vault and its balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var view vaultView
			err = e.view(func(db treasury.ReadOnlyKVStore) error {
				v, err := vault.Load(db, vault.NewBucket(), id)
				if err != nil {
					return err
				}
				balance, err := cash.NewController(cash.NewBucket()).Balance(db, v.Address)
				if err != nil {
					return err
				}
				view = vaultView{ID: formatID(id), Balance: balance, Vault: v}
				return nil
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		},
	}
}

func vaultListCmd(e *env) *cobra.Command {
	var owner, member string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List vaults by owner or by member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (owner == "") == (member == "") {
				return errors.Wrap(errors.ErrInput, "exactly one of --owner and --member is required")
			}
			var (
				addr treasury.Address
				err  error
			)
			if owner != "" {
				addr, err = e.address(owner)
			} else {
				addr, err = e.address(member)
			}
			if err != nil {
				return err
			}

			var views []vaultView
			err = e.view(func(db treasury.ReadOnlyKVStore) error {
				var vaults []*vault.Vault
				var err error
				if owner != "" {
					vaults, err = vault.ByOwner(db, vault.NewBucket(), addr)
				} else {
					vaults, err = vault.ByMember(db, vault.NewBucket(), addr)
				}
				if err != nil {
					return err
				}
				ctrl := cash.NewController(cash.NewBucket())
				for _, v := range vaults {
					balance, err := ctrl.Balance(db, v.Address)
					if err != nil {
						return err
					}
					views = append(views, vaultView{ID: formatID(v.Key()), Balance: balance, Vault: v})
				}
				return nil
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, views)
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Key name or address of the owner.")
	cmd.Flags().StringVar(&member, "member", "", "Key name or address of any member.")
	return cmd
}

func vaultRolesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "roles VAULT_ID ADDRESS",
		Short: "Print the roles an address holds in the vault",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			addr, err := e.address(args[1])
			if err != nil {
				return err
			}
			var role policy.Role
			err = e.view(func(db treasury.ReadOnlyKVStore) error {
				v, err := vault.Load(db, vault.NewBucket(), id)
				if err != nil {
					return err
				}
				role = policy.Roles(v, addr)
				return nil
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), role)
			return err
		},
	}
}

func vaultMemberCmd(e *env, use, short string, build func([]byte, treasury.Address) treasury.Msg) *cobra.Command {
	var from []string
	cmd := &cobra.Command{
		Use:   use + " VAULT_ID ADDRESS",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			addr, err := e.address(args[1])
			if err != nil {
				return err
			}
			_, err = e.deliver(cmd, build(id, addr), from)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&from, "from", nil, "Names of the keys signing the transaction.")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func vaultFlagCmd(e *env, use, short string, build func([]byte) treasury.Msg) *cobra.Command {
	var from []string
	cmd := &cobra.Command{
		Use:   use + " VAULT_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = e.deliver(cmd, build(id), from)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&from, "from", nil, "Names of the keys signing the transaction.")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}
