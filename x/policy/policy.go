package policy

import (
	"strings"

	"github.com/iov-one/treasury"
)

// Membership is implemented by anything that declares an owner together
// with the approver and staff lists, usually a vault.
type Membership interface {
	GetOwner() treasury.Address
	GetApprovers() []treasury.Address
	GetStaff() []treasury.Address
}

// Role is a bit set of the functions a principal holds in a vault. A single
// address can be the owner and an approver at the same time.
type Role uint8

const (
	Owner Role = 1 << iota
	Approver
	Staff

	// Public is the zero value, held by anyone without a function.
	Public Role = 0
)

// Has returns true if all bits of r are set.
func (role Role) Has(r Role) bool {
	return role&r == r
}

func (role Role) String() string {
	if role == Public {
		return "public"
	}
	var names []string
	if role.Has(Owner) {
		names = append(names, "owner")
	}
	if role.Has(Approver) {
		names = append(names, "approver")
	}
	if role.Has(Staff) {
		names = append(names, "staff")
	}
	return strings.Join(names, "|")
}

// Roles returns all functions given address holds in m.
func Roles(m Membership, addr treasury.Address) Role {
	role := Public
	if IsOwner(m, addr) {
		role |= Owner
	}
	if IsApprover(m, addr) {
		role |= Approver
	}
	if IsStaff(m, addr) {
		role |= Staff
	}
	return role
}

// IsOwner returns true if addr owns m. An empty address is never an owner.
func IsOwner(m Membership, addr treasury.Address) bool {
	return len(addr) != 0 && m.GetOwner().Equals(addr)
}

// IsApprover returns true if addr is one of the approvers of m.
func IsApprover(m Membership, addr treasury.Address) bool {
	return contains(m.GetApprovers(), addr)
}

// IsStaff returns true if addr is one of the staff members of m.
func IsStaff(m Membership, addr treasury.Address) bool {
	return contains(m.GetStaff(), addr)
}

// CanManage returns true if addr may change the membership or the frozen
// flag of m.
func CanManage(m Membership, addr treasury.Address) bool {
	return IsOwner(m, addr)
}

// CanRequest returns true if addr may request a withdrawal from m. Being the
// owner is not enough, the owner must add itself to the staff.
func CanRequest(m Membership, addr treasury.Address) bool {
	return IsStaff(m, addr)
}

// CanApprove returns true if addr may vote on a withdrawal requested by
// requester. Nobody approves their own request.
func CanApprove(m Membership, requester, addr treasury.Address) bool {
	return IsApprover(m, addr) && !requester.Equals(addr)
}

func contains(list []treasury.Address, addr treasury.Address) bool {
	if len(addr) == 0 {
		return false
	}
	for _, a := range list {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}
