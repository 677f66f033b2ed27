package vault

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/store"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/stretchr/testify/require"
)

var (
	meta = &treasury.Metadata{Schema: 1}
	now  = time.Date(2019, 6, 1, 12, 0, 0, 0, time.UTC)
)

// routes is a minimal treasury.Registry.
type routes map[string]treasury.Handler

func (r routes) Handle(m treasury.Msg, h treasury.Handler) {
	r[m.Path()] = h
}

type fixture struct {
	db     treasury.CacheableKVStore
	auth   *treasurytest.CtxAuth
	routes routes
}

func newFixture() *fixture {
	f := &fixture{
		db:     store.MemStore(),
		auth:   &treasurytest.CtxAuth{Key: "auth"},
		routes: make(routes),
	}
	RegisterRoutes(f.routes, f.auth)
	return f
}

// ctx returns a context authenticated by given signers.
func (f *fixture) ctx(signers ...treasury.Condition) treasury.Context {
	ctx := treasury.WithBlockTime(context.Background(), now)
	return f.auth.SetConditions(ctx, signers...)
}

// deliver runs the check and then the deliver phase of the message. It
// returns the first error and the delivered data.
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

func (f *fixture) create(t testing.TB, owner treasury.Condition, name string, threshold uint32) []byte {
	t.Helper()
	key, err := f.deliver(f.ctx(owner), &CreateMsg{
		Metadata:                 meta,
		Name:                     name,
		ApprovalThreshold:        threshold,
		DailyLimit:               10000,
		TxLimit:                  1000,
		LargeWithdrawalThreshold: 500,
		DelayHours:               24,
	})
	require.NoError(t, err)
	return key
}

func (f *fixture) load(t testing.TB, key []byte) *Vault {
	t.Helper()
	v, err := Load(f.db, NewBucket(), key)
	require.NoError(t, err)
	return v
}

func addresses(conds ...treasury.Condition) []treasury.Address {
	out := make([]treasury.Address, len(conds))
	for i, c := range conds {
		out[i] = c.Address()
	}
	return out
}
