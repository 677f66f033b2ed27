package vault

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

const optKey = "vaults"

// GenesisVault is a vault declared in the genesis file.
type GenesisVault struct {
	Owner                    treasury.Address   `json:"owner"`
	Name                     string             `json:"name"`
	Approvers                []treasury.Address `json:"approvers"`
	Staff                    []treasury.Address `json:"staff"`
	ApprovalThreshold        uint32             `json:"approval_threshold"`
	DailyLimit               uint64             `json:"daily_limit"`
	TxLimit                  uint64             `json:"tx_limit"`
	LargeWithdrawalThreshold uint64             `json:"large_withdrawal_threshold"`
	DelayHours               uint64             `json:"delay_hours"`
	Frozen                   bool               `json:"frozen"`
	CreatedAt                treasury.UnixTime  `json:"created_at"`
}

// Initializer fulfils the Initializer interface to load vaults from the
// genesis file.
type Initializer struct{}

var _ treasury.Initializer = Initializer{}

// FromGenesis stores all declared vaults. Declaring the same owner and name
// twice is an error.
func (Initializer) FromGenesis(opts treasury.Options, kv treasury.KVStore) error {
	var vaults []GenesisVault
	if err := opts.ReadOptions(optKey, &vaults); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, g := range vaults {
		key := Key(g.Owner, g.Name)
		switch err := bucket.Has(kv, key); {
		case err == nil:
			return errors.Wrapf(errors.ErrDuplicate, "vault %d: %q", i, g.Name)
		case !errors.ErrNotFound.Is(err):
			return err
		}
		v := &Vault{
			Metadata:                 &treasury.Metadata{Schema: 1},
			Owner:                    g.Owner,
			Name:                     g.Name,
			Approvers:                g.Approvers,
			Staff:                    g.Staff,
			ApprovalThreshold:        g.ApprovalThreshold,
			DailyLimit:               g.DailyLimit,
			TxLimit:                  g.TxLimit,
			LargeWithdrawalThreshold: g.LargeWithdrawalThreshold,
			DelayHours:               g.DelayHours,
			Frozen:                   g.Frozen,
			CreatedAt:                g.CreatedAt,
			Address:                  Authority(key).Address(),
		}
		if err := bucket.Put(kv, key, v); err != nil {
			return errors.Wrapf(err, "vault %d", i)
		}
	}
	return nil
}
