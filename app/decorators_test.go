package app

import (
	"context"
	"testing"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writingHandler sets a key and then returns the configured error.
type writingHandler struct {
	err error
}

func (h writingHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if err := db.Set([]byte("check"), []byte("1")); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, h.err
}

func (h writingHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	if err := db.Set([]byte("deliver"), []byte("1")); err != nil {
		return nil, err
	}
	return &treasury.DeliverResult{}, h.err
}

func TestSavepoint(t *testing.T) {
	cases := map[string]struct {
		savepoint   Savepoint
		err         error
		wantCheck   bool
		wantDeliver bool
	}{
		"no savepoint keeps partial writes": {
			savepoint:   NewSavepoint(),
			err:         errors.ErrHuman,
			wantCheck:   true,
			wantDeliver: true,
		},
		"deliver savepoint discards on failure": {
			savepoint: NewSavepoint().OnDeliver(),
			err:       errors.ErrHuman,
			wantCheck: true,
		},
		"both savepoints discard on failure": {
			savepoint: NewSavepoint().OnCheck().OnDeliver(),
			err:       errors.ErrHuman,
		},
		"success is written": {
			savepoint:   NewSavepoint().OnCheck().OnDeliver(),
			wantCheck:   true,
			wantDeliver: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			h := treasurytest.Decorate(writingHandler{err: tc.err}, tc.savepoint)
			tx := &treasurytest.Tx{}

			_, err := h.Check(context.Background(), db, tx)
			assert.Equal(t, tc.err, err)
			_, err = h.Deliver(context.Background(), db, tx)
			assert.Equal(t, tc.err, err)

			has, err := db.Has([]byte("check"))
			require.NoError(t, err)
			assert.Equal(t, tc.wantCheck, has)
			has, err = db.Has([]byte("deliver"))
			require.NoError(t, err)
			assert.Equal(t, tc.wantDeliver, has)
		})
	}
}
