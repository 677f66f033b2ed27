package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Declare errors upfront so that DeepEqual can be used for comparison.
	var (
		unauthorizedNameErr = Field("Name", ErrUnauthorized, "a")
		invalidNameErr      = Field("Name", ErrInvalidName, "b")
		zeroLimitErr        = Field("TxLimit", ErrInvalidLimit, "limit is required")
		vaultMultiErr       = Field("Vault", Append(
			invalidNameErr,
			Append(zeroLimitErr, ErrState),
		), "vault data invalid")

		zeroLimitWrapErr = Field("TxLimit", zeroLimitErr, "outer")
	)

	cases := map[string]struct {
		Err   error
		Field string
		Want  []error
	}{
		"a single error found by the name": {
			Err:   unauthorizedNameErr,
			Field: "Name",
			Want:  []error{unauthorizedNameErr},
		},
		"two error found by the name": {
			Err: Append(
				unauthorizedNameErr,
				invalidNameErr,
			),
			Field: "Name",
			Want: []error{
				unauthorizedNameErr,
				invalidNameErr,
			},
		},
		"field can contain a multierror": {
			Err:   vaultMultiErr,
			Field: "Vault",
			Want:  []error{vaultMultiErr},
		},
		"field can inspect errors tree to find match (Name)": {
			Err:   vaultMultiErr,
			Field: "Name",
			Want:  []error{invalidNameErr},
		},
		"field can inspect errors tree to find match (limit)": {
			Err:   vaultMultiErr,
			Field: "TxLimit",
			Want:  []error{zeroLimitErr},
		},
		"nil error returns nothing": {
			Err:   nil,
			Field: "foo",
			Want:  nil,
		},
		"error not found by the field name": {
			Err:   ErrUnauthorized,
			Field: "foo",
			Want:  nil,
		},
		"error not found by the wrong field name": {
			Err:   Field("a-name", ErrUnauthorized, "a description"),
			Field: "foo",
			Want:  nil,
		},
		"field is wrapped": {
			Err:   Wrap(Wrap(invalidNameErr, "inner"), "outer"),
			Field: "Name",
			Want:  []error{invalidNameErr},
		},
		"multi error field is wrapped (limit)": {
			Err:   Wrap(Wrap(vaultMultiErr, "inner"), "outer"),
			Field: "TxLimit",
			Want:  []error{zeroLimitErr},
		},
		"multi error field is wrapped (Name)": {
			Err:   Wrap(Wrap(vaultMultiErr, "inner"), "outer"),
			Field: "Name",
			Want:  []error{invalidNameErr},
		},
		"multi error field is wrapped, no match": {
			Err:   Wrap(Wrap(vaultMultiErr, "inner"), "outer"),
			Field: "unknown-name",
			Want:  nil,
		},
		"multiple field wrap with most inner as the result": {
			Err:   Field("a", Field("b", invalidNameErr, "b desc"), "a desc"),
			Field: "Name",
			Want:  []error{invalidNameErr},
		},
		"multiple field wrap with the same field return the most outside only": {
			Err:   zeroLimitWrapErr,
			Field: "TxLimit",
			Want:  []error{zeroLimitWrapErr},
		},
		"complex error with multiple results": {
			Err: Wrap(Append(
				Wrap(unauthorizedNameErr, "a"),
				Wrap(invalidNameErr, "b"),
				Wrap(zeroLimitErr, "c"),
			), "outer"),
			Field: "Name",
			Want:  []error{unauthorizedNameErr, invalidNameErr},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.Err, tc.Field)
			if !reflect.DeepEqual(tc.Want, got) {
				t.Logf("want: %#v", tc.Want)
				t.Logf(" got: %#v", got)
				t.Fatal("unexpected result")
			}
		})
	}
}
