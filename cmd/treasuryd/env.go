package main

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/iov-one/treasury"
	tapp "github.com/iov-one/treasury/app"
	"github.com/iov-one/treasury/cmd/treasuryd/app"
	"github.com/iov-one/treasury/crypto"
	"github.com/iov-one/treasury/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// env holds what commands share: the configuration, the logger and the
// lazily opened service.
type env struct {
	cfg    config
	logger *zap.Logger

	svc     *tapp.Service
	release func() error
}

func (e *env) setup(v *viper.Viper, cmd *cobra.Command) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.logger = logger.With(zap.String("command", cmd.CommandPath()))
	return nil
}

func (e *env) close() error {
	var err error
	if e.release != nil {
		err = e.release()
		e.release = nil
		e.svc = nil
	}
	if e.logger != nil {
		_ = e.logger.Sync()
	}
	return err
}

// service opens the store and returns the service using it.
func (e *env) service() (*tapp.Service, error) {
	if e.svc != nil {
		return e.svc, nil
	}
	kv, release, err := app.OpenStore(e.cfg.Backend, e.cfg.Home)
	if err != nil {
		return nil, err
	}
	svc, err := app.NewService(kv, tapp.SystemClock, newTMLogger(e.logger))
	if err != nil {
		release()
		return nil, err
	}
	e.logger.Debug("store opened", zap.String("backend", e.cfg.Backend), zap.String("chain_id", svc.ChainID()))
	e.svc, e.release = svc, release
	return svc, nil
}

// deliver signs the message with the keys of given names and executes it.
func (e *env) deliver(cmd *cobra.Command, msg treasury.Msg, signers []string) (*treasury.DeliverResult, error) {
	keys := make([]crypto.Signer, 0, len(signers))
	for _, name := range signers {
		k, err := e.loadKey(name)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	svc, err := e.service()
	if err != nil {
		return nil, err
	}
	tx, err := app.SignTx(svc, msg, keys...)
	if err != nil {
		return nil, err
	}
	res, err := svc.Deliver(cmd.Context(), tx)
	if err != nil {
		e.logger.Debug("delivery failed", zap.String("path", msg.Path()), zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (e *env) view(fn func(db treasury.ReadOnlyKVStore) error) error {
	svc, err := e.service()
	if err != nil {
		return err
	}
	return svc.View(fn)
}

func (e *env) keyPath(name string) string {
	return filepath.Join(e.cfg.Home, "keys", name+".key")
}

func (e *env) loadKey(name string) (*crypto.PrivateKey, error) {
	raw, err := os.ReadFile(e.keyPath(name))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "key %q: %s", name, err)
	}
	var key crypto.PrivateKey
	if err := key.UnmarshalText(raw); err != nil {
		return nil, errors.Wrapf(err, "key %q", name)
	}
	return &key, nil
}

// address resolves the name of a local key or an encoded address.
func (e *env) address(nameOrAddr string) (treasury.Address, error) {
	if key, err := e.loadKey(nameOrAddr); err == nil {
		return key.PublicKey().Address(), nil
	}
	addr, err := treasury.ParseAddress(nameOrAddr)
	if err != nil {
		return nil, err
	}
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%q is neither a key name nor an address", nameOrAddr)
	}
	return addr, nil
}

// display returns the address in the configured format.
func (e *env) display(addr treasury.Address) string {
	if e.cfg.Bech32Prefix != "" {
		if s, err := addr.Bech32(e.cfg.Bech32Prefix); err == nil {
			return s
		}
	}
	return addr.String()
}

func parseID(s string) ([]byte, error) {
	id, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "id %q is not hex encoded", s)
	}
	return id, nil
}

func formatID(id []byte) string {
	return hex.EncodeToString(id)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
