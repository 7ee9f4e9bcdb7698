// Copyright 2021 The go-ethereum Authors
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

import "github.com/parastream/parafollow/common"

// CandidateReceipt is forwarded verbatim to the availability-recovery
// subsystem; this driver never inspects its contents.
type CandidateReceipt []byte

// PendingCandidate is a relay-chain announcement that a parachain block has
// been backed and is awaiting availability, as delivered by
// RelaychainClient.PendingCandidates. HeadData is the opaque committed head
// data a HeaderDecoder turns into a Header to recover the candidate's
// parachain block hash and number.
type PendingCandidate struct {
	Receipt      CandidateReceipt
	SessionIndex common.SessionIndex
	HeadData     []byte
}

// RelaychainClient is the narrow capability this driver needs from the
// relay-chain client: every method here is something a test double can
// implement directly, and the three stream methods are treated as
// infallible — errors show up as items that fail header decoding, never as
// a channel-level error value.
type RelaychainClient interface {
	// NewBestHeads yields opaque parachain header bytes each time the relay
	// chain acquires a new best block that includes paraID. The channel is
	// closed when the underlying relay-chain subscription ends.
	NewBestHeads(paraID common.ParaID) <-chan []byte

	// FinalizedHeads yields opaque parachain header bytes for every relay
	// chain finalized block. The channel is closed on subscription end.
	FinalizedHeads(paraID common.ParaID) <-chan []byte

	// PendingCandidates yields pending-availability candidates backed for
	// paraID. The channel is closed on subscription end.
	PendingCandidates(paraID common.ParaID) <-chan PendingCandidate
}
