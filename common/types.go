// Copyright 2015 The go-ethereum Authors
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

// Package common holds the small set of shared primitive types used across
// the parafollow driver and its collaborator interfaces: block hashes and
// the session/para identifiers the relay chain deals in.
package common

import (
	"encoding/hex"
	"fmt"
)

// HashLength is the expected length of a parachain block hash in bytes.
const HashLength = 32

// Hash represents the opaque identity hash of a parachain block header.
type Hash [HashLength]byte

// BytesToHash sets b to Hash, left-padding if b is shorter than HashLength
// and truncating from the left if it is longer.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// HexToHash sets byte representation of s to Hash. It accepts an optional
// "0x" prefix; an odd number of hex digits is read as if it had a leading
// zero digit.
func HexToHash(s string) Hash {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return BytesToHash(b)
}

// Bytes returns the byte representation of h.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns a "0x"-prefixed hex string representation of h.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool { return h == Hash{} }

// Format implements fmt.Formatter so Hash prints sensibly in log key/value
// pairs without callers needing to call Hex() themselves.
func (h Hash) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "%s", h.Hex())
}

// ParaID identifies a parachain on the relay chain.
type ParaID uint32

// SessionIndex is the monotonically increasing validator-set period on the
// relay chain that a candidate receipt was backed in.
type SessionIndex uint32
