/*
Package withdrawal implements the lifecycle of a withdrawal request.

A staff member of a vault requests a withdrawal. Approvers of the vault vote
on it and once the number of approvals reaches the approval threshold of the
vault the request is approved. Anyone can then execute it, which transfers
the funds from the vault authority to the destination. Large withdrawals
cannot be executed before their delay passed.

	Pending -> Approved -> Executed

A request is stored under the key of its vault followed by the big endian
sequence taken from the withdrawal counter of the vault.
*/
package withdrawal
