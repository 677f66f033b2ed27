/*
Package policy answers who may do what with a vault.

All functions are stateless predicates over the membership of a vault. The
vault and withdrawal handlers use them to authorize messages and clients use
Roles to decide which actions to offer to a principal.
*/
package policy
