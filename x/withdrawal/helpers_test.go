package withdrawal

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/store"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/iov-one/treasury/x/cash"
	"github.com/iov-one/treasury/x/vault"
	"github.com/stretchr/testify/require"
)

var meta = &treasury.Metadata{Schema: 1}

type routes map[string]treasury.Handler

func (r routes) Handle(m treasury.Msg, h treasury.Handler) {
	r[m.Path()] = h
}

// fixture is a vault named "operations" requiring two approvals out of
// three approvers. The first approver is also a staff member.
type fixture struct {
	db     treasury.CacheableKVStore
	auth   *treasurytest.CtxAuth
	routes routes
	cash   cash.Controller
	now    time.Time

	owner     treasury.Condition
	approvers []treasury.Condition
	staff     []treasury.Condition
	vaultID   []byte
}

func newFixture(t testing.TB) *fixture {
	t.Helper()

	f := &fixture{
		db:        store.MemStore(),
		auth:      &treasurytest.CtxAuth{Key: "auth"},
		routes:    make(routes),
		cash:      cash.NewController(cash.NewBucket()),
		now:       time.Date(2019, 6, 1, 12, 0, 0, 0, time.UTC),
		owner:     treasurytest.NewCondition(),
		approvers: []treasury.Condition{treasurytest.NewCondition(), treasurytest.NewCondition(), treasurytest.NewCondition()},
	}
	f.staff = []treasury.Condition{f.approvers[0], treasurytest.NewCondition()}
	vault.RegisterRoutes(f.routes, f.auth)
	RegisterRoutes(f.routes, f.auth, f.cash)

	var err error
	f.vaultID, err = f.deliver(f.ctx(f.owner), &vault.CreateMsg{
		Metadata:                 meta,
		Name:                     "operations",
		ApprovalThreshold:        2,
		DailyLimit:               10000,
		TxLimit:                  1000,
		LargeWithdrawalThreshold: 500,
		DelayHours:               24,
	})
	require.NoError(t, err)
	for _, a := range f.approvers {
		_, err := f.deliver(f.ctx(f.owner), &vault.AddApproverMsg{Metadata: meta, VaultID: f.vaultID, Approver: a.Address()})
		require.NoError(t, err)
	}
	for _, s := range f.staff {
		_, err := f.deliver(f.ctx(f.owner), &vault.AddStaffMsg{Metadata: meta, VaultID: f.vaultID, Staff: s.Address()})
		require.NoError(t, err)
	}
	return f
}

func (f *fixture) ctx(signers ...treasury.Condition) treasury.Context {
	ctx := treasury.WithBlockTime(context.Background(), f.now)
	return f.auth.SetConditions(ctx, signers...)
}

func (f *fixture) deliver(ctx treasury.Context, msg treasury.Msg) ([]byte, error) {
	h, ok := f.routes[msg.Path()]
	if !ok {
		panic("no route for " + msg.Path())
	}
	tx := &treasurytest.Tx{Msg: msg}
	if _, err := h.Check(ctx, f.db, tx); err != nil {
		return nil, err
	}
	res, err := h.Deliver(ctx, f.db, tx)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (f *fixture) loadVault(t testing.TB) *vault.Vault {
	t.Helper()
	v, err := vault.Load(f.db, vault.NewBucket(), f.vaultID)
	require.NoError(t, err)
	return v
}

// fund issues amount to the vault authority.
func (f *fixture) fund(t testing.TB, amount uint64) {
	t.Helper()
	require.NoError(t, f.cash.Issue(f.db, f.loadVault(t).Address, amount))
}

// request creates a withdrawal signed by the second staff member, who is
// not an approver.
func (f *fixture) request(t testing.TB, amount uint64, dest treasury.Address) []byte {
	t.Helper()
	key, err := f.deliver(f.ctx(f.staff[1]), &RequestMsg{
		Metadata:    meta,
		VaultID:     f.vaultID,
		Amount:      amount,
		Destination: dest,
		Reason:      "payroll",
	})
	require.NoError(t, err)
	return key
}

func (f *fixture) approve(signer treasury.Condition, key []byte) error {
	_, err := f.deliver(f.ctx(signer), &ApproveMsg{Metadata: meta, WithdrawalID: key})
	return err
}

func (f *fixture) load(t testing.TB, key []byte) *WithdrawalRequest {
	t.Helper()
	w, err := Load(f.db, NewBucket(), key)
	require.NoError(t, err)
	return w
}
