package vault

import (
	"sort"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/orm"
)

// ByOwner returns all vaults owned by given address, ordered by name.
func ByOwner(db treasury.ReadOnlyKVStore, bucket orm.ModelBucket, owner treasury.Address) ([]*Vault, error) {
	var vaults []*Vault
	if _, err := bucket.ByIndex(db, "owner", owner, &vaults); err != nil {
		return nil, err
	}
	sort.Slice(vaults, func(i, j int) bool { return vaults[i].Name < vaults[j].Name })
	return vaults, nil
}

// ByMember returns all vaults in which given address is the owner, an
// approver or a staff member.
func ByMember(db treasury.ReadOnlyKVStore, bucket orm.ModelBucket, member treasury.Address) ([]*Vault, error) {
	var vaults []*Vault
	if _, err := bucket.ByIndex(db, "member", member, &vaults); err != nil {
		return nil, err
	}
	return vaults, nil
}
