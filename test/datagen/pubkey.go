// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/stakepool/stsol/sol"
)

func RandomPubkey() sol.Pubkey {
	var key sol.Pubkey

	rand.Read(key[:])
	return key
}

func RandomPubkeys(n int) []sol.Pubkey {
	keys := make([]sol.Pubkey, n)
	for i := range keys {
		keys[i] = RandomPubkey()
	}
	return keys
}

func RandomBytes(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}
