/*
Command treasuryd manages treasury vaults kept in a local store.

Every command opens the store in the home directory, runs a single
operation and closes it again. Run "treasuryd init" with a genesis file
first.
*/
package main

import (
	"fmt"
	"os"

	"github.com/iov-one/treasury/errors"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		code, log := errors.Info(err, debugErrors())
		fmt.Fprintf(os.Stderr, "Error (code %d): %s\n", code, log)
		os.Exit(1)
	}
}
