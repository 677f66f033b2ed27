package policy

import (
	"testing"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/stretchr/testify/assert"
)

type membership struct {
	owner     treasury.Address
	approvers []treasury.Address
	staff     []treasury.Address
}

func (m membership) GetOwner() treasury.Address       { return m.owner }
func (m membership) GetApprovers() []treasury.Address { return m.approvers }
func (m membership) GetStaff() []treasury.Address     { return m.staff }

func TestRoles(t *testing.T) {
	owner := treasurytest.NewAddress()
	approver := treasurytest.NewAddress()
	clerk := treasurytest.NewAddress()
	both := treasurytest.NewAddress()
	stranger := treasurytest.NewAddress()

	m := membership{
		owner:     owner,
		approvers: []treasury.Address{approver, both},
		staff:     []treasury.Address{clerk, both, owner},
	}

	cases := map[string]struct {
		addr treasury.Address
		want Role
	}{
		"owner that is also staff": {addr: owner, want: Owner | Staff},
		"approver":                 {addr: approver, want: Approver},
		"staff":                    {addr: clerk, want: Staff},
		"approver and staff":       {addr: both, want: Approver | Staff},
		"stranger":                 {addr: stranger, want: Public},
		"empty address":            {addr: nil, want: Public},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, Roles(m, tc.addr))
		})
	}
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "public", Public.String())
	assert.Equal(t, "owner", Owner.String())
	assert.Equal(t, "owner|approver|staff", (Owner | Approver | Staff).String())
	assert.Equal(t, "approver|staff", (Staff | Approver).String())
}

func TestRoleHas(t *testing.T) {
	r := Owner | Staff
	assert.True(t, r.Has(Owner))
	assert.True(t, r.Has(Owner|Staff))
	assert.False(t, r.Has(Approver))
	assert.True(t, r.Has(Public))
}

func TestPermissions(t *testing.T) {
	owner := treasurytest.NewAddress()
	approver := treasurytest.NewAddress()
	clerk := treasurytest.NewAddress()

	m := membership{
		owner:     owner,
		approvers: []treasury.Address{approver, clerk},
		staff:     []treasury.Address{clerk},
	}

	assert.True(t, CanManage(m, owner))
	assert.False(t, CanManage(m, approver))
	assert.False(t, CanManage(m, nil))

	assert.True(t, CanRequest(m, clerk))
	assert.False(t, CanRequest(m, owner), "owner must be staff to request")
	assert.False(t, CanRequest(m, approver))

	assert.True(t, CanApprove(m, clerk, approver))
	assert.False(t, CanApprove(m, clerk, clerk), "self approval")
	assert.False(t, CanApprove(m, clerk, owner), "owner is not an approver")
	assert.True(t, CanApprove(m, owner, clerk))
}

func TestEmptyOwnerIsNobody(t *testing.T) {
	m := membership{}
	assert.False(t, IsOwner(m, nil))
	assert.False(t, IsOwner(m, treasury.Address{}))
}
