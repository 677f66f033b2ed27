/*
Package treasury defines the interfaces used throughout the treasury, such as
storage, messages, handlers and identities.

A treasury is a set of vaults. Each vault is governed by an owner, approvers
that vote on withdrawals and staff that request them. Extensions under x/
implement the vault registry, the withdrawal lifecycle and the ledger. They
are glued together by the app package, which delivers messages against a
store with all-or-nothing semantics.

Look into this package to get a brief overview of the building blocks every
extension relies on.
*/
package treasury
