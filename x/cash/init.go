package cash

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use treasury.Address, so address in hex, not base64
type GenesisAccount struct {
	Address treasury.Address `json:"address"`
	Balance uint64           `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ treasury.Initializer = Initializer{}

// FromGenesis issues the initial balances declared in the genesis file.
// Issuing twice to the same address adds up.
func (Initializer) FromGenesis(opts treasury.Options, kv treasury.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController(NewBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := ctrl.Issue(kv, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
