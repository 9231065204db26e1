// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Category groups revert codes by how the caller is expected to react.
type Category uint8

const (
	// DataIntegrity reverts mean an account buffer is malformed. Never retried.
	DataIntegrity Category = iota + 1
	// Precondition reverts name the condition the caller must satisfy first.
	Precondition
	// InvariantBreach reverts require manual investigation.
	InvariantBreach
	// RateLimit reverts succeed when retried in a later epoch.
	RateLimit
)

func (c Category) String() string {
	switch c {
	case DataIntegrity:
		return "data-integrity"
	case Precondition:
		return "precondition"
	case InvariantBreach:
		return "invariant-breach"
	case RateLimit:
		return "rate-limit"
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

type ErrRevert struct {
	code    Code
	message string
}

func New(code Code, message string) *ErrRevert {
	return &ErrRevert{
		code:    code,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Code returns the revert reason.
func (e *ErrRevert) Code() Code {
	return e.code
}

// Category returns the class of the revert reason.
func (e *ErrRevert) Category() Category {
	return e.code.Category()
}

// Is reports reverts with the same code as equal, regardless of message.
func (e *ErrRevert) Is(target error) bool {
	t, ok := target.(*ErrRevert)
	return ok && t.code == e.code
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// CodeOf extracts the revert code carried by err.
func CodeOf(err error) (Code, bool) {
	var ve *ErrRevert
	if !errors.As(err, &ve) {
		return 0, false
	}
	return ve.code, true
}

// IsRetryable reports whether err is expected to clear by itself in a later epoch.
func IsRetryable(err error) bool {
	code, ok := CodeOf(err)
	return ok && code.Category() == RateLimit
}
