package x

import (
	"context"
	"testing"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/iov-one/treasury/treasurytest/assert"
)

func TestAuth(t *testing.T) {
	a := treasurytest.NewCondition()
	b := treasurytest.NewCondition()
	c := treasurytest.NewCondition()

	ctx1 := &treasurytest.CtxAuth{Key: "foo"}
	ctx2 := &treasurytest.CtxAuth{Key: "bar"}

	cases := map[string]struct {
		ctx          treasury.Context
		auth         Authenticator
		mainSigner   treasury.Condition
		wantInCtx    treasury.Condition
		wantNotInCtx treasury.Condition
		wantAll      []treasury.Condition
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &treasurytest.Auth{},
			wantNotInCtx: b,
		},
		"signer a": {
			ctx:          context.Background(),
			auth:         &treasurytest.Auth{Signer: a},
			mainSigner:   a,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []treasury.Condition{a},
		},
		"chain keeps order": {
			ctx: context.Background(),
			auth: ChainAuth(
				&treasurytest.Auth{Signer: b},
				&treasurytest.Auth{Signer: a}),
			mainSigner:   b,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []treasury.Condition{b, a},
		},
		"chain removes duplicates": {
			ctx: context.Background(),
			auth: ChainAuth(
				&treasurytest.Auth{Signer: a},
				&treasurytest.Auth{Signers: []treasury.Condition{a, b}}),
			mainSigner:   a,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []treasury.Condition{a, b},
		},
		"ctxAuth checks what is set by same key": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx1,
			mainSigner:   a,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []treasury.Condition{a, b},
		},
		"ctxAuth with different key sees nothing": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx2,
			wantNotInCtx: a,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.mainSigner, MainSigner(tc.ctx, tc.auth))
			if tc.wantInCtx != nil && !tc.auth.HasAddress(tc.ctx, tc.wantInCtx.Address()) {
				t.Fatal("condition address that was expected in context not found")
			}
			if tc.wantNotInCtx != nil && tc.auth.HasAddress(tc.ctx, tc.wantNotInCtx.Address()) {
				t.Fatal("condition address that was expected not to be in context found")
			}

			all := tc.auth.GetConditions(tc.ctx)
			assert.Equal(t, tc.wantAll, all)

			addrs := GetAddresses(tc.ctx, tc.auth)
			if !HasAllAddresses(tc.ctx, tc.auth, addrs) {
				t.Fatal("has all addresses check failed")
			}
			missing := tc.wantNotInCtx.Address()
			if HasAllAddresses(tc.ctx, tc.auth, append(addrs, missing)) {
				t.Fatal("has all addresses succeeded after adding non existing address")
			}
			if got := AnyAddress(tc.ctx, tc.auth, []treasury.Address{missing}); got != nil {
				t.Fatalf("unexpected address: %s", got)
			}
			if len(addrs) > 0 {
				got := AnyAddress(tc.ctx, tc.auth, []treasury.Address{missing, addrs[0]})
				assert.Equal(t, addrs[0], got)
			}
		})
	}
}
