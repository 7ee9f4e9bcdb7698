// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package parafollow

import (
	"math/rand"
	"time"
)

// DefaultConfig contains sane settings for running the driver against a
// relay chain with a six second slot duration (the original Polkadot/
// Kusama default this subsystem was built against).
var DefaultConfig = Config{
	RelayChainSlotDuration:  6 * time.Second,
	RecoveryConcurrencyHint: 8,
}

// Config carries the driver's tunables, including the Go-native additions
// that have no equivalent in the reference protocol (a randomness source
// for deterministic tests chief among them).
type Config struct {
	// RelayChainSlotDuration is the upper bound T on the uniform recovery
	// start jitter drawn for each newly pending candidate.
	RelayChainSlotDuration time.Duration

	// RecoveryConcurrencyHint documents the expected number of concurrent
	// in-flight recoveries for metrics/dashboard purposes; it does not
	// bound anything at runtime, since every candidate always gets exactly
	// one outstanding recovery request.
	RecoveryConcurrencyHint int

	// Rand is the randomness source used to draw each candidate's jitter.
	// If nil, every draw uses a fresh source seeded from the current time.
	// Tests inject
	// a seeded *rand.Rand for reproducibility.
	Rand *rand.Rand
}

func (c Config) rng() *rand.Rand {
	if c.Rand != nil {
		return c.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
