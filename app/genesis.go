package app

import (
	"encoding/json"
	"os"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

// Genesis file format.
type Genesis struct {
	ChainID  string           `json:"chain_id"`
	AppState treasury.Options `json:"app_state"`
}

// Validate returns an error if the chain id is not valid.
func (g Genesis) Validate() error {
	if !treasury.IsValidChainID(g.ChainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", g.ChainID)
	}
	return nil
}

// LoadGenesis reads and validates the genesis file at given path.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(err, "loading genesis file")
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return gen, gen.Validate()
}

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...treasury.Initializer) treasury.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []treasury.Initializer
}

// FromGenesis will pass opts to all Initializers in the list, aborting at
// the first error.
func (c chainInitializer) FromGenesis(opts treasury.Options, kv treasury.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

//------- storing chainID ---------

const chainIDKey = "_i.chain_id"

// loadChainID returns the chain id stored if any.
func loadChainID(kv treasury.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store. Returns error if already
// set, or invalid name.
func saveChainID(kv treasury.KVStore, chainID string) error {
	if !treasury.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	if ok, err := kv.Has(k); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	} else if ok {
		return errors.Wrap(errors.ErrImmutable, "chain id already set")
	}
	return kv.Set(k, []byte(chainID))
}
