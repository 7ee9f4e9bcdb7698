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

import (
	"context"

	"github.com/parastream/parafollow/common"
)

// BlockStatus describes what the local parachain client knows about a
// given block hash.
type BlockStatus int

const (
	// StatusUnknown means the client has never seen this block.
	StatusUnknown BlockStatus = iota
	// StatusInChainWithState means the block is imported and its state is
	// available, so it is safe to promote to best or finalize.
	StatusInChainWithState
	// StatusInChainPruned means the block was imported once but its state
	// has since been pruned; the relay chain pointing at it indicates
	// divergence and is never acted on.
	StatusInChainPruned
)

func (s BlockStatus) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusInChainWithState:
		return "in-chain-with-state"
	case StatusInChainPruned:
		return "in-chain-pruned"
	default:
		return "invalid"
	}
}

// BlockOrigin records who produced a locally imported block.
type BlockOrigin int

const (
	// OriginOwn marks a block this node authored itself.
	OriginOwn BlockOrigin = iota
	// OriginNetworkBroadcast marks a block gossiped in by a peer.
	OriginNetworkBroadcast
	// OriginConsensusBroadcast marks a block re-imported by this driver in
	// response to a relay-chain best-head decision.
	OriginConsensusBroadcast
)

// ImportNotification is delivered by ParachainClient.ImportNotifications
// each time the local client imports a block.
type ImportNotification struct {
	Hash       common.Hash
	Header     Header
	Origin     BlockOrigin
	IsNewBest  bool
}

// ImportParams carries the arguments for ParachainClient.ImportBlock.
type ImportParams struct {
	Header Header
	Origin BlockOrigin
	// MakeNewBest requests the custom "always best" fork-choice strategy
	// used when promoting a relay-nominated block.
	MakeNewBest bool
	// ImportExisting allows re-importing a block the client already has,
	// which is how a deferred best header is promoted once it arrives.
	ImportExisting bool
}

// UsageInfo is a snapshot-read view of the parachain client's current chain
// state.
type UsageInfo struct {
	BestHash      common.Hash
	FinalizedHash common.Hash
}

// ParachainClient is the narrow capability this driver needs from the local
// parachain node. Implementations must be safe for concurrent use; the
// driver itself never serializes calls across sub-drivers.
type ParachainClient interface {
	// BlockStatus reports what the client currently knows about hash.
	BlockStatus(hash common.Hash) (BlockStatus, error)

	// FinalizeBlock marks hash (and everything below it) finalized.
	FinalizeBlock(ctx context.Context, hash common.Hash) error

	// ImportBlock imports or re-imports a block per params.
	ImportBlock(ctx context.Context, params ImportParams) error

	// ImportNotifications returns a channel the client pushes every import
	// onto. The channel is closed when the client shuts down.
	ImportNotifications() <-chan ImportNotification

	// UsageInfo returns the client's current best/finalized snapshot.
	UsageInfo() UsageInfo
}

// Announcer tells the network layer about a block the driver has just
// caused to be imported (or observed imported) so peers that don't already
// have it can request it. data is always nil for calls this driver makes;
// the parameter exists because the underlying gossip callback always
// carries the full payload shape.
type Announcer interface {
	Announce(hash common.Hash, data []byte)
}
