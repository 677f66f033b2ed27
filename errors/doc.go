/*
Package errors implements coded errors used across the treasury.

Every failure that a caller can act on wraps one of the registered root
errors. Root errors are declared with Register(code, description) and tested
with the Is method, which unwraps any number of Wrap, Field and Append layers:

	if errors.ErrVaultFrozen.Is(err) {
		...
	}

Treasury specific root errors use codes from 1000 to 1099 and are grouped
into classes (validation, authorization, capacity, duplication, state
conflict, not found), see ClassOf.

Wrapping attaches a stack trace once, at the most inner layer. Use fmt to get
more context
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
