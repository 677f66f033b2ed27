package withdrawal

import (
	"testing"
	"time"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/iov-one/treasury/x/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest(t *testing.T) {
	dest := treasurytest.NewCondition().Address()

	cases := map[string]struct {
		signer  func(*fixture) treasury.Condition
		frozen  bool
		amount  uint64
		wantErr *errors.Error
	}{
		"staff within limit": {
			signer: func(f *fixture) treasury.Condition { return f.staff[1] },
			amount: 1000,
		},
		"not staff": {
			signer:  func(f *fixture) treasury.Condition { return f.approvers[1] },
			amount:  10,
			wantErr: errors.ErrUnauthorized,
		},
		"owner is not staff": {
			signer:  func(f *fixture) treasury.Condition { return f.owner },
			amount:  10,
			wantErr: errors.ErrUnauthorized,
		},
		"frozen vault": {
			signer:  func(f *fixture) treasury.Condition { return f.staff[1] },
			frozen:  true,
			amount:  10,
			wantErr: errors.ErrVaultFrozen,
		},
		"not staff of a frozen vault": {
			signer:  func(f *fixture) treasury.Condition { return f.approvers[1] },
			frozen:  true,
			amount:  10,
			wantErr: errors.ErrUnauthorized,
		},
		"zero amount": {
			signer:  func(f *fixture) treasury.Condition { return f.staff[1] },
			wantErr: errors.ErrInvalidLimit,
		},
		"above transaction limit": {
			signer:  func(f *fixture) treasury.Condition { return f.staff[1] },
			amount:  1001,
			wantErr: errors.ErrExceedsLimit,
		},
		"frozen vault and above limit": {
			signer:  func(f *fixture) treasury.Condition { return f.staff[1] },
			frozen:  true,
			amount:  1001,
			wantErr: errors.ErrVaultFrozen,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			if tc.frozen {
				_, err := f.deliver(f.ctx(f.owner), &vault.FreezeMsg{Metadata: meta, VaultID: f.vaultID})
				require.NoError(t, err)
			}

			key, err := f.deliver(f.ctx(tc.signer(f)), &RequestMsg{
				Metadata:    meta,
				VaultID:     f.vaultID,
				Amount:      tc.amount,
				Destination: dest,
			})
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				assert.EqualValues(t, 0, f.loadVault(t).WithdrawalCount)
				return
			}
			require.NoError(t, err)

			w := f.load(t, key)
			assert.Equal(t, StatusPending, w.Status)
			assert.Equal(t, tc.signer(f).Address(), w.Requester)
			assert.Equal(t, dest, w.Destination)
			assert.Empty(t, w.Approvals)
			assert.Equal(t, treasury.AsUnixTime(f.now), w.CreatedAt)
		})
	}
}

func TestRequestExplicitRequester(t *testing.T) {
	f := newFixture(t)
	dest := treasurytest.NewCondition().Address()

	msg := &RequestMsg{
		Metadata:    meta,
		VaultID:     f.vaultID,
		Requester:   f.staff[0].Address(),
		Amount:      10,
		Destination: dest,
	}
	_, err := f.deliver(f.ctx(f.staff[1]), msg)
	assert.True(t, errors.ErrUnauthorized.Is(err), "requester did not sign: %+v", err)

	key, err := f.deliver(f.ctx(f.staff[1], f.staff[0]), msg)
	require.NoError(t, err)
	assert.Equal(t, f.staff[0].Address(), f.load(t, key).Requester)
}

func TestRequestSequence(t *testing.T) {
	f := newFixture(t)
	dest := treasurytest.NewCondition().Address()

	first := f.request(t, 10, dest)
	second := f.request(t, 20, dest)

	assert.Equal(t, Key(f.vaultID, 0), first)
	assert.Equal(t, Key(f.vaultID, 1), second)
	assert.EqualValues(t, 2, f.loadVault(t).WithdrawalCount)

	seq, err := Sequence(second)
	require.NoError(t, err)
	assert.EqualValues(t, 1, seq)
}

func TestRequestDelay(t *testing.T) {
	f := newFixture(t)
	dest := treasurytest.NewCondition().Address()

	small := f.load(t, f.request(t, 499, dest))
	assert.True(t, small.DelayUntil.IsZero())

	large := f.load(t, f.request(t, 500, dest))
	assert.Equal(t, treasury.AsUnixTime(f.now.Add(24*time.Hour)), large.DelayUntil)
}

func TestApprove(t *testing.T) {
	f := newFixture(t)
	dest := treasurytest.NewCondition().Address()
	key := f.request(t, 100, dest)

	err := f.approve(f.owner, key)
	assert.True(t, errors.ErrUnauthorized.Is(err), "owner is not an approver: %+v", err)

	require.NoError(t, f.approve(f.approvers[1], key))
	w := f.load(t, key)
	assert.Equal(t, StatusPending, w.Status)
	assert.Equal(t, []treasury.Address{f.approvers[1].Address()}, w.Approvals)

	err = f.approve(f.approvers[1], key)
	assert.True(t, errors.ErrAlreadyApproved.Is(err), "second approval: %+v", err)

	require.NoError(t, f.approve(f.approvers[2], key))
	w = f.load(t, key)
	assert.Equal(t, StatusApproved, w.Status)
	assert.Len(t, w.Approvals, 2)

	err = f.approve(f.approvers[0], key)
	assert.True(t, errors.ErrInvalidStatus.Is(err), "approve approved: %+v", err)
}

func TestApproveSelf(t *testing.T) {
	f := newFixture(t)
	dest := treasurytest.NewCondition().Address()

	// The first approver is also staff and requests a withdrawal.
	key, err := f.deliver(f.ctx(f.approvers[0]), &RequestMsg{
		Metadata:    meta,
		VaultID:     f.vaultID,
		Amount:      100,
		Destination: dest,
	})
	require.NoError(t, err)

	err = f.approve(f.approvers[0], key)
	assert.True(t, errors.ErrSelfApproval.Is(err), "self approval: %+v", err)
	assert.Empty(t, f.load(t, key).Approvals)

	require.NoError(t, f.approve(f.approvers[1], key))
	require.NoError(t, f.approve(f.approvers[2], key))
	assert.Equal(t, StatusApproved, f.load(t, key).Status)
}

func TestRemovedApproverCannotApprove(t *testing.T) {
	f := newFixture(t)
	dest := treasurytest.NewCondition().Address()
	key := f.request(t, 100, dest)

	extra := treasurytest.NewCondition()
	_, err := f.deliver(f.ctx(f.owner), &vault.AddApproverMsg{Metadata: meta, VaultID: f.vaultID, Approver: extra.Address()})
	require.NoError(t, err)
	_, err = f.deliver(f.ctx(f.owner), &vault.RemoveApproverMsg{Metadata: meta, VaultID: f.vaultID, Approver: f.approvers[2].Address()})
	require.NoError(t, err)

	err = f.approve(f.approvers[2], key)
	assert.True(t, errors.ErrUnauthorized.Is(err), "unexpected error: %+v", err)

	require.NoError(t, f.approve(extra, key))
	require.NoError(t, f.approve(f.approvers[1], key))
	assert.Equal(t, StatusApproved, f.load(t, key).Status)
}

func TestExecute(t *testing.T) {
	dest := treasurytest.NewCondition().Address()
	anyone := treasurytest.NewCondition()

	t.Run("pending", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1000)
		key := f.request(t, 100, dest)

		_, err := f.deliver(f.ctx(anyone), &ExecuteMsg{Metadata: meta, WithdrawalID: key})
		assert.True(t, errors.ErrInvalidStatus.Is(err), "unexpected error: %+v", err)
	})

	t.Run("approved", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1000)
		key := f.request(t, 100, dest)
		require.NoError(t, f.approve(f.approvers[0], key))
		require.NoError(t, f.approve(f.approvers[1], key))

		_, err := f.deliver(f.ctx(anyone), &ExecuteMsg{Metadata: meta, WithdrawalID: key})
		require.NoError(t, err)

		w := f.load(t, key)
		assert.Equal(t, StatusExecuted, w.Status)
		assert.Equal(t, treasury.AsUnixTime(f.now), w.ExecutedAt)
		assertBalance(t, f, f.loadVault(t).Address, 900)
		assertBalance(t, f, dest, 100)

		_, err = f.deliver(f.ctx(anyone), &ExecuteMsg{Metadata: meta, WithdrawalID: key})
		assert.True(t, errors.ErrInvalidStatus.Is(err), "executed twice: %+v", err)
		assertBalance(t, f, dest, 100)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 50)
		key := f.request(t, 100, dest)
		require.NoError(t, f.approve(f.approvers[0], key))
		require.NoError(t, f.approve(f.approvers[1], key))

		_, err := f.deliver(f.ctx(anyone), &ExecuteMsg{Metadata: meta, WithdrawalID: key})
		assert.True(t, errors.ErrInsufficientBalance.Is(err), "unexpected error: %+v", err)
		assert.Equal(t, StatusApproved, f.load(t, key).Status)
		assertBalance(t, f, f.loadVault(t).Address, 50)
	})

	t.Run("delayed", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1000)
		key := f.request(t, 600, dest)
		require.NoError(t, f.approve(f.approvers[0], key))
		require.NoError(t, f.approve(f.approvers[1], key))

		f.now = f.now.Add(24*time.Hour - time.Second)
		_, err := f.deliver(f.ctx(anyone), &ExecuteMsg{Metadata: meta, WithdrawalID: key})
		assert.True(t, errors.ErrDelayNotPassed.Is(err), "unexpected error: %+v", err)

		f.now = f.now.Add(time.Second)
		_, err = f.deliver(f.ctx(anyone), &ExecuteMsg{Metadata: meta, WithdrawalID: key})
		require.NoError(t, err)
		assertBalance(t, f, dest, 600)
	})

	t.Run("unknown withdrawal", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.deliver(f.ctx(anyone), &ExecuteMsg{Metadata: meta, WithdrawalID: Key(f.vaultID, 7)})
		assert.True(t, errors.ErrNotFound.Is(err), "unexpected error: %+v", err)
	})
}

// Execution does not check the frozen flag. A vault frozen after approval
// still pays out.
func TestExecuteFrozenVault(t *testing.T) {
	f := newFixture(t)
	dest := treasurytest.NewCondition().Address()
	f.fund(t, 1000)
	key := f.request(t, 100, dest)
	require.NoError(t, f.approve(f.approvers[0], key))
	require.NoError(t, f.approve(f.approvers[1], key))

	_, err := f.deliver(f.ctx(f.owner), &vault.FreezeMsg{Metadata: meta, VaultID: f.vaultID})
	require.NoError(t, err)

	_, err = f.deliver(f.ctx(f.owner), &ExecuteMsg{Metadata: meta, WithdrawalID: key})
	require.NoError(t, err)
	assertBalance(t, f, dest, 100)
}

func assertBalance(t testing.TB, f *fixture, addr treasury.Address, want uint64) {
	t.Helper()
	got, err := f.cash.Balance(f.db, addr)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
