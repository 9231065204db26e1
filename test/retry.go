// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package test holds helpers shared by tests that talk to running servers.
package test

import (
	"time"

	"github.com/pkg/errors"
)

// Eventually calls fn every period until it succeeds or maxWait elapses,
// returning the first successful result or the last error.
func Eventually[T any](fn func() (T, error), period, maxWait time.Duration) (T, error) {
	deadline := time.Now().Add(maxWait)
	for {
		v, err := fn()
		if err == nil {
			return v, nil
		}
		if time.Now().After(deadline) {
			return v, errors.WithMessage(err, "retry timeout")
		}
		time.Sleep(period)
	}
}
