package treasury

import "github.com/iov-one/treasury/errors"

// Validate returns an error if the metadata is missing or declares an
// unknown schema version.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema must be at least 1")
	}
	return nil
}

// Copy returns a copy of this object. This is used when implementing model
// copies.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
