// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/stakepool/stsol/kv"
	"github.com/stakepool/stsol/sol"
)

// Account is the ledger representation of an account.
// RLP encoded objects are stored in the accounts bucket.
type Account struct {
	Lamports uint64
	Owner    sol.Pubkey
	Data     []byte
}

// IsEmpty returns if an account is empty.
// An empty account holds no lamports, no data and has no owner.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 && len(a.Data) == 0 && a.Owner.IsZero()
}

// Copy returns a deep copy.
func (a *Account) Copy() *Account {
	cpy := *a
	cpy.Data = bytes.Clone(a.Data)
	return &cpy
}

var emptyAccount = Account{}

// loadAccount load an account object by address from the store.
// An empty account is returned when the address is unknown.
func loadAccount(store kv.Getter, addr sol.Pubkey) (*Account, error) {
	data, err := store.Get(addr[:])
	if err != nil {
		if store.IsNotFound(err) {
			return &emptyAccount, nil
		}
		return nil, errors.Wrapf(err, "load account %v", addr)
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, errors.Wrapf(err, "decode account %v", addr)
	}
	return &a, nil
}

// saveAccount saves account into the store, deleting it when empty.
func saveAccount(store kv.Putter, addr sol.Pubkey, a *Account) error {
	if a.IsEmpty() {
		return store.Delete(addr[:])
	}
	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return errors.Wrapf(err, "encode account %v", addr)
	}
	return store.Put(addr[:], data)
}
