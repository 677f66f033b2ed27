package cash

import (
	"math"
	"testing"

	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/iov-one/treasury/treasurytest/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfer(t *testing.T) {
	a := treasurytest.NewAddress()
	b := treasurytest.NewAddress()

	cases := map[string]struct {
		issueA   uint64
		issueB   uint64
		amount   uint64
		wantErr  *errors.Error
		wantA    uint64
		wantB    uint64
		sameDest bool
	}{
		"full balance": {
			issueA: 100, amount: 100, wantA: 0, wantB: 100,
		},
		"partial": {
			issueA: 100, issueB: 5, amount: 30, wantA: 70, wantB: 35,
		},
		"insufficient funds": {
			issueA: 10, amount: 11, wantErr: errors.ErrInsufficientBalance, wantA: 10,
		},
		"empty account": {
			amount: 1, wantErr: errors.ErrInsufficientBalance,
		},
		"zero amount": {
			issueA: 10, amount: 0, wantErr: errors.ErrAmount, wantA: 10,
		},
		"recipient overflow": {
			issueA: 10, issueB: math.MaxUint64 - 5, amount: 6,
			wantErr: errors.ErrOverflow, wantA: 10, wantB: math.MaxUint64 - 5,
		},
		"send to self": {
			issueA: 10, amount: 10, sameDest: true, wantA: 10,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			require.NoError(t, ctrl.Issue(db, a, tc.issueA))
			require.NoError(t, ctrl.Issue(db, b, tc.issueB))

			dest := b
			if tc.sameDest {
				dest = a
			}
			err := ctrl.Transfer(db, a, dest, tc.amount)
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}

			balA, err := ctrl.Balance(db, a)
			require.NoError(t, err)
			assert.Equal(t, tc.wantA, balA)
			if !tc.sameDest {
				balB, err := ctrl.Balance(db, b)
				require.NoError(t, err)
				assert.Equal(t, tc.wantB, balB)
			}
		})
	}
}

func TestTransferInvalidAddress(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	a := treasurytest.NewAddress()
	require.NoError(t, ctrl.Issue(db, a, 10))

	assert.IsErr(t, errors.ErrInput, ctrl.Transfer(db, a, []byte("short"), 1))
	assert.IsErr(t, errors.ErrInput, ctrl.Transfer(db, nil, a, 1))
}

func TestEmptyWalletIsRemoved(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()
	ctrl := NewController(bucket)
	a := treasurytest.NewAddress()
	b := treasurytest.NewAddress()

	require.NoError(t, ctrl.Issue(db, a, 10))
	assert.Nil(t, bucket.Has(db, a))
	require.NoError(t, ctrl.Transfer(db, a, b, 10))
	assert.IsErr(t, errors.ErrNotFound, bucket.Has(db, a))
	assert.Nil(t, bucket.Has(db, b))
}

func TestIssueOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	a := treasurytest.NewAddress()

	require.NoError(t, ctrl.Issue(db, a, math.MaxUint64))
	assert.IsErr(t, errors.ErrOverflow, ctrl.Issue(db, a, 1))

	bal, err := ctrl.Balance(db, a)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), bal)
}
