package vault

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

const (
	MaxApprovers = 10
	MaxStaff     = 20
)

// Roster is an ordered set of addresses with a fixed capacity. Each roster
// reports its failures using its own root errors so that a client can tell
// an approver problem from a staff one.
type Roster struct {
	Capacity     int
	ErrFull      *errors.Error
	ErrDuplicate *errors.Error
	ErrMissing   *errors.Error
}

var (
	approverRoster = Roster{
		Capacity:     MaxApprovers,
		ErrFull:      errors.ErrMaxApprovers,
		ErrDuplicate: errors.ErrDuplicateApprover,
		ErrMissing:   errors.ErrApproverNotFound,
	}
	staffRoster = Roster{
		Capacity:     MaxStaff,
		ErrFull:      errors.ErrMaxStaff,
		ErrDuplicate: errors.ErrDuplicateStaff,
		ErrMissing:   errors.ErrStaffNotFound,
	}
)

// Add returns a new list with addr appended. The capacity is checked
// before the uniqueness.
func (r Roster) Add(list []treasury.Address, addr treasury.Address) ([]treasury.Address, error) {
	if len(list) >= r.Capacity {
		return nil, errors.Wrapf(r.ErrFull, "limit is %d", r.Capacity)
	}
	if indexOf(list, addr) >= 0 {
		return nil, errors.Wrapf(r.ErrDuplicate, "%s", addr)
	}
	out := make([]treasury.Address, 0, len(list)+1)
	out = append(out, list...)
	return append(out, addr.Clone()), nil
}

// Remove returns a new list without addr. Order of the remaining elements is
// preserved.
func (r Roster) Remove(list []treasury.Address, addr treasury.Address) ([]treasury.Address, error) {
	i := indexOf(list, addr)
	if i < 0 {
		return nil, errors.Wrapf(r.ErrMissing, "%s", addr)
	}
	out := make([]treasury.Address, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...), nil
}

// Validate returns an error if the list exceeds the capacity, contains an
// invalid address or the same address twice.
func (r Roster) Validate(list []treasury.Address) error {
	if len(list) > r.Capacity {
		return errors.Wrapf(r.ErrFull, "%d elements, limit is %d", len(list), r.Capacity)
	}
	for i, a := range list {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
		if indexOf(list[:i], a) >= 0 {
			return errors.Wrapf(r.ErrDuplicate, "element %d", i)
		}
	}
	return nil
}

func indexOf(list []treasury.Address, addr treasury.Address) int {
	for i, a := range list {
		if a.Equals(addr) {
			return i
		}
	}
	return -1
}
