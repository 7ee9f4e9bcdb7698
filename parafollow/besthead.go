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
	"time"

	"github.com/parastream/parafollow/common"
	"github.com/parastream/parafollow/log"
)

// bestHeadFollower tracks the relay chain's best head for one parachain and
// promotes the corresponding local block to best once it's safe to do so,
// announcing newly-imported blocks to the network along the way. Every
// piece of its mutable state is owned by a single goroutine.
type bestHeadFollower struct {
	paraID   common.ParaID
	relay    RelaychainClient
	client   ParachainClient
	announce Announcer
	decode   HeaderDecoder
	recovery *candidateRecovery
	log      log.Logger

	// deferred is the most recently seen relay best head whose parachain
	// block this node hasn't imported yet. At most one is ever held,
	// task-local to this goroutine.
	deferred Header
}

func newBestHeadFollower(paraID common.ParaID, relay RelaychainClient, client ParachainClient, announcer Announcer, decode HeaderDecoder, recovery *candidateRecovery) *bestHeadFollower {
	return &bestHeadFollower{
		paraID:   paraID,
		relay:    relay,
		client:   client,
		announce: announcer,
		decode:   decode,
		recovery: recovery,
		log:      log.New("component", "besthead"),
	}
}

// run multiplexes the three input streams until any one of them closes,
// then returns — the caller (run.go) treats this as shutdown of the whole
// core.
func (f *bestHeadFollower) run(ctx context.Context) {
	newBest := f.relay.NewBestHeads(f.paraID)
	imports := f.client.ImportNotifications()
	pending := f.relay.PendingCandidates(f.paraID)

	for {
		select {
		case <-ctx.Done():
			return

		case raw, ok := <-newBest:
			if !ok {
				return
			}
			f.handleNewBestHead(ctx, raw)

		case notif, ok := <-imports:
			if !ok {
				return
			}
			f.handleLocalImport(ctx, notif)

		case pc, ok := <-pending:
			if !ok {
				return
			}
			f.handlePendingCandidate(ctx, pc)
		}
	}
}

func (f *bestHeadFollower) handleNewBestHead(ctx context.Context, raw []byte) {
	start := time.Now()
	defer bestHeadLatencyTimer.UpdateSince(start)

	header, err := f.decode(raw)
	if err != nil {
		bestHeadDecodeErrorMeter.Mark(1)
		f.log.Warn("Failed to decode relay best head", "err", err)
		return
	}
	hash := header.Hash()

	if hash == f.client.UsageInfo().BestHash {
		return
	}

	status, err := f.client.BlockStatus(hash)
	if err != nil {
		f.log.Warn("Failed to query block status for relay best head", "hash", hash, "err", err)
		return
	}

	switch status {
	case StatusInChainWithState:
		f.deferred = nil
		f.importAsNewBest(ctx, header)

	case StatusInChainPruned:
		bestHeadPrunedMeter.Mark(1)
		f.log.Error("Relay chain best head points at a pruned local block", "hash", hash, "number", header.Number())

	case StatusUnknown:
		f.deferred = header
		bestHeadDeferredMeter.Mark(1)
		f.log.Debug("Deferring relay best head, block not yet imported", "hash", hash, "number", header.Number())

	default:
		f.log.Warn("Unexpected block status for relay best head", "hash", hash, "status", status)
	}
}

func (f *bestHeadFollower) handleLocalImport(ctx context.Context, notif ImportNotification) {
	if notif.Origin != OriginOwn {
		f.announce.Announce(notif.Hash, nil)
		announceMeter.Mark(1)
	}

	f.recovery.onBlockImported(ctx, notif.Hash)

	if notif.IsNewBest || f.deferred == nil {
		return
	}

	u := f.deferred
	switch {
	case notif.Header.Number() < u.Number():
		// Still waiting for a higher block to arrive.
		return

	case notif.Header.Number() == u.Number():
		if notif.Hash != u.Hash() {
			// Different fork at the same height; keep waiting.
			return
		}

	case notif.Header.Number() > u.Number():
		// The deferred head's ancestor arrived; promoting U will walk up to it.
	}

	f.promoteDeferred(ctx, u)
}

func (f *bestHeadFollower) promoteDeferred(ctx context.Context, u Header) {
	status, err := f.client.BlockStatus(u.Hash())
	if err != nil {
		f.log.Warn("Failed to re-check deferred best head", "hash", u.Hash(), "err", err)
		return
	}
	if status != StatusInChainWithState {
		return
	}
	f.deferred = nil
	f.importAsNewBest(ctx, u)
}

func (f *bestHeadFollower) importAsNewBest(ctx context.Context, header Header) {
	err := f.client.ImportBlock(ctx, ImportParams{
		Header:         header,
		Origin:         OriginConsensusBroadcast,
		MakeNewBest:    true,
		ImportExisting: true,
	})
	if err != nil {
		f.log.Warn("Failed to promote relay-nominated block to best", "hash", header.Hash(), "err", err)
		return
	}
	bestHeadPromotedMeter.Mark(1)
}

func (f *bestHeadFollower) handlePendingCandidate(ctx context.Context, pc PendingCandidate) {
	header, err := f.decode(pc.HeadData)
	if err != nil {
		f.log.Warn("Failed to decode pending candidate head data", "err", err)
		return
	}
	hash := header.Hash()

	status, err := f.client.BlockStatus(hash)
	if err != nil {
		f.log.Warn("Failed to query block status for pending candidate", "hash", hash, "err", err)
		return
	}
	if status != StatusUnknown {
		candidateDroppedMeter.Mark(1)
		return
	}

	if err := f.recovery.insert(ctx, hash, header.Number(), pc.Receipt, pc.SessionIndex); err != nil {
		f.log.Debug("Candidate recovery insert cancelled", "hash", hash, "err", err)
	}
}
