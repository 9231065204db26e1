// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sol

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// PubkeyLength length of public key in bytes.
const PubkeyLength = 32

// Pubkey is an account address or an identity key.
type Pubkey [PubkeyLength]byte

var (
	_ json.Marshaler   = (*Pubkey)(nil)
	_ json.Unmarshaler = (*Pubkey)(nil)
)

// String implements stringer
func (p Pubkey) String() string {
	return "0x" + hex.EncodeToString(p[:])
}

// AbbrevString returns abbrev string presentation.
func (p Pubkey) AbbrevString() string {
	return fmt.Sprintf("0x%x…%x", p[:4], p[28:])
}

// Bytes returns byte slice form of Pubkey.
func (p Pubkey) Bytes() []byte {
	return p[:]
}

// IsZero returns if Pubkey has all zero bytes.
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// Compare orders keys by their bytes.
func (p Pubkey) Compare(other Pubkey) int {
	return bytes.Compare(p[:], other[:])
}

// MarshalJSON implements json.Marshaler.
func (p *Pubkey) MarshalJSON() ([]byte, error) {
	if p == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Pubkey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePubkey(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler, so keys can be used as yaml scalars and map keys.
func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pubkey) UnmarshalText(text []byte) error {
	parsed, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePubkey convert string presented into Pubkey type
func ParsePubkey(s string) (Pubkey, error) {
	if len(s) == PubkeyLength*2 {
	} else if len(s) == PubkeyLength*2+2 {
		if strings.ToLower(s[:2]) != "0x" {
			return Pubkey{}, errors.New("invalid prefix")
		}
		s = s[2:]
	} else {
		return Pubkey{}, errors.New("invalid length")
	}

	var p Pubkey
	if _, err := hex.Decode(p[:], []byte(s)); err != nil {
		return Pubkey{}, err
	}
	return p, nil
}

// MustParsePubkey convert string presented into Pubkey type, panic on error.
func MustParsePubkey(s string) Pubkey {
	p, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return p
}

// BytesToPubkey converts bytes slice into Pubkey.
// If b is larger than Pubkey length, b will be cropped (from the left).
// If b is smaller than Pubkey length, b will be extended (from the left).
func BytesToPubkey(b []byte) Pubkey {
	return Pubkey(common.BytesToHash(b))
}
