package errors

// Treasury errors take codes 1000 to 1099. Each one names a single violated
// rule of the vault or withdrawal lifecycle so that a client can act on it
// without parsing the message.

// Validation.
var (
	ErrInvalidName      = Register(1000, "invalid name")
	ErrInvalidThreshold = Register(1001, "invalid threshold")
	ErrInvalidLimit     = Register(1002, "invalid limit")
)

// Authorization.
var (
	ErrSelfApproval = Register(1010, "self approval not allowed")
)

// Capacity.
var (
	ErrMaxApprovers = Register(1020, "max approvers reached")
	ErrMaxStaff     = Register(1021, "max staff reached")
)

// Duplication.
var (
	ErrDuplicateApprover = Register(1030, "duplicate approver")
	ErrDuplicateStaff    = Register(1031, "duplicate staff")
	ErrAlreadyApproved   = Register(1032, "already approved")
)

// State conflict.
var (
	ErrInvalidStatus       = Register(1040, "invalid status")
	ErrVaultFrozen         = Register(1041, "vault frozen")
	ErrDelayNotPassed      = Register(1042, "delay not passed")
	ErrExceedsLimit        = Register(1043, "exceeds limit")
	ErrInsufficientBalance = Register(1044, "insufficient balance")
)

// Not found.
var (
	ErrApproverNotFound = Register(1050, "approver not found")
	ErrStaffNotFound    = Register(1051, "staff not found")
)

// Class groups root errors the way a client is expected to react to them.
type Class string

const (
	ClassValidation    Class = "validation"
	ClassAuthorization Class = "authorization"
	ClassCapacity      Class = "capacity"
	ClassDuplication   Class = "duplication"
	ClassStateConflict Class = "state conflict"
	ClassNotFound      Class = "not found"
	ClassInternal      Class = "internal"
)

var classes = map[*Error]Class{
	ErrInvalidName:         ClassValidation,
	ErrInvalidThreshold:    ClassValidation,
	ErrInvalidLimit:        ClassValidation,
	ErrMsg:                 ClassValidation,
	ErrInput:               ClassValidation,
	ErrUnauthorized:        ClassAuthorization,
	ErrSelfApproval:        ClassAuthorization,
	ErrMaxApprovers:        ClassCapacity,
	ErrMaxStaff:            ClassCapacity,
	ErrDuplicateApprover:   ClassDuplication,
	ErrDuplicateStaff:      ClassDuplication,
	ErrAlreadyApproved:     ClassDuplication,
	ErrDuplicate:           ClassDuplication,
	ErrInvalidStatus:       ClassStateConflict,
	ErrVaultFrozen:         ClassStateConflict,
	ErrDelayNotPassed:      ClassStateConflict,
	ErrExceedsLimit:        ClassStateConflict,
	ErrInsufficientBalance: ClassStateConflict,
	ErrApproverNotFound:    ClassNotFound,
	ErrStaffNotFound:       ClassNotFound,
	ErrNotFound:            ClassNotFound,
}

// ClassOf returns the class of the root error that err wraps. Errors that do
// not wrap a classified root error are internal.
func ClassOf(err error) Class {
	for root, class := range classes {
		if root.Is(err) {
			return class
		}
	}
	return ClassInternal
}
