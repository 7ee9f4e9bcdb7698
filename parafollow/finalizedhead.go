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
	"errors"

	"github.com/parastream/parafollow/common"
	"github.com/parastream/parafollow/log"
)

// finalizedHeadFollower is a single goroutine driving finalize_block calls
// as the relay chain's own finality stream advances.
type finalizedHeadFollower struct {
	paraID   common.ParaID
	relay    RelaychainClient
	client   ParachainClient
	decode   HeaderDecoder
	recovery *candidateRecovery
	log      log.Logger
}

func newFinalizedHeadFollower(paraID common.ParaID, relay RelaychainClient, client ParachainClient, decode HeaderDecoder, recovery *candidateRecovery) *finalizedHeadFollower {
	return &finalizedHeadFollower{
		paraID:   paraID,
		relay:    relay,
		client:   client,
		decode:   decode,
		recovery: recovery,
		log:      log.New("component", "finalizedhead"),
	}
}

// run drives the finalized-head stream until it closes, then returns —
// treated by the caller as shutdown of the whole core, same as the
// best-head follower.
func (f *finalizedHeadFollower) run(ctx context.Context) {
	finalized := f.relay.FinalizedHeads(f.paraID)

	for {
		select {
		case <-ctx.Done():
			return

		case raw, ok := <-finalized:
			if !ok {
				return
			}
			f.handleFinalizedHead(ctx, raw)
		}
	}
}

func (f *finalizedHeadFollower) handleFinalizedHead(ctx context.Context, raw []byte) {
	header, err := f.decode(raw)
	if err != nil {
		finalizedDecodeErrorMeter.Mark(1)
		f.log.Warn("Failed to decode relay finalized head", "err", err)
		return
	}
	hash := header.Hash()

	if hash == f.client.UsageInfo().FinalizedHash {
		return
	}

	if err := f.client.FinalizeBlock(ctx, hash); err != nil {
		switch {
		case errors.Is(err, ErrUnknownBlock):
			finalizedUnknownMeter.Mark(1)
			f.log.Debug("Relay chain finalized a block we haven't imported yet", "hash", hash, "number", header.Number())
		default:
			finalizedErrorMeter.Mark(1)
			f.log.Warn("Failed to finalize block", "hash", hash, "err", err)
		}
		return
	}

	finalizedOKMeter.Mark(1)
	f.recovery.onBlockFinalized(ctx, header.Number())
}
