package withdrawal

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
)

// ByVault returns requests of a vault, newest first, together with their
// keys. StatusInvalid matches any status. A limit of zero returns all.
func ByVault(db treasury.ReadOnlyKVStore, bucket orm.ModelBucket, vaultID []byte, status Status, limit int) ([]*WithdrawalRequest, [][]byte, error) {
	var (
		it  orm.ModelIterator
		err error
	)
	if status == StatusInvalid {
		it, err = bucket.IndexScan(db, "vault", vaultID, true)
	} else {
		it, err = bucket.IndexScan(db, "status", statusIndexValue(vaultID, status), true)
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "scan")
	}
	models, keys, err := orm.Collect(it, func() orm.Model { return &WithdrawalRequest{} }, limit)
	if err != nil {
		return nil, nil, err
	}
	res := make([]*WithdrawalRequest, len(models))
	for i, m := range models {
		if res[i], err = asWithdrawal(m); err != nil {
			return nil, nil, err
		}
	}
	return res, keys, nil
}
