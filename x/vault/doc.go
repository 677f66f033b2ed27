/*
Package vault implements the vault registry.

A vault is identified by its owner and name. The owner manages two bounded
lists: approvers, who vote on withdrawals, and staff, who request them. The
owner can also freeze the vault to stop new withdrawal requests.

Funds of a vault are held by the address of its authority condition (see
Authority). Only the withdrawal extension spends from that address, after a
withdrawal collected enough approvals.
*/
package vault
