/*
Package cash is the ledger of the treasury. It keeps a single balance per
address and moves funds between addresses.

Other extensions depend on the Gateway interface only. A vault holds its funds
under the address of its authority condition and a withdrawal is executed as
a Transfer from that address.
*/
package cash
