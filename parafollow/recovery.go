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

// AvailableData is the reconstructed body of a backed candidate. This
// driver deliberately does not act on it: delivering a recovered block
// into the import pipeline is a collaborator's job, not this core's.
type AvailableData []byte

// AvailabilityRecovery requests that a backed candidate's body be
// reconstructed from the validator set's erasure-coded shards. The
// backing-group hint is always the full validator set, so it isn't part of
// this signature.
type AvailabilityRecovery interface {
	RecoverAvailableData(ctx context.Context, receipt CandidateReceipt, session common.SessionIndex) (AvailableData, error)
}

// pendingCandidate is the recovery component's bookkeeping record for one
// announced-but-not-yet-recovered candidate.
type pendingCandidate struct {
	receipt      CandidateReceipt
	sessionIndex common.SessionIndex
	blockNumber  uint64
}

type recoveryInsert struct {
	hash        common.Hash
	blockNumber uint64
	receipt     CandidateReceipt
	session     common.SessionIndex
}

type recoveryResult struct {
	hash common.Hash
	data AvailableData
	err  error
}

// candidateRecovery is a single goroutine owning pending/in-flight state,
// armed per-candidate timers for the de-stampede jitter, and a background
// goroutine per in-flight recovery so a slow recover call never blocks new
// inserts or evictions.
type candidateRecovery struct {
	cfg      Config
	recovery AvailabilityRecovery
	log      log.Logger

	insertCh    chan recoveryInsert
	importedCh  chan common.Hash
	finalizedCh chan uint64
	firedCh     chan common.Hash
	resultCh    chan recoveryResult
	snapshotCh  chan chan []common.Hash

	pending  map[common.Hash]*pendingCandidate
	inFlight map[common.Hash]struct{}
}

func newCandidateRecovery(cfg Config, recovery AvailabilityRecovery) *candidateRecovery {
	return &candidateRecovery{
		cfg:         cfg,
		recovery:    recovery,
		log:         log.New("component", "recovery"),
		insertCh:    make(chan recoveryInsert),
		importedCh:  make(chan common.Hash),
		finalizedCh: make(chan uint64),
		firedCh:     make(chan common.Hash),
		resultCh:    make(chan recoveryResult),
		snapshotCh:  make(chan chan []common.Hash),
		pending:     make(map[common.Hash]*pendingCandidate),
		inFlight:    make(map[common.Hash]struct{}),
	}
}

// insert schedules hash for recovery if it isn't already known. Blocks
// until accepted by run's select loop or ctx is done.
func (r *candidateRecovery) insert(ctx context.Context, hash common.Hash, blockNumber uint64, receipt CandidateReceipt, session common.SessionIndex) error {
	select {
	case r.insertCh <- recoveryInsert{hash, blockNumber, receipt, session}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// onBlockImported cancels any pending recovery for hash. A recovery
// already in flight is left to finish.
func (r *candidateRecovery) onBlockImported(ctx context.Context, hash common.Hash) {
	select {
	case r.importedCh <- hash:
	case <-ctx.Done():
	}
}

// onBlockFinalized drops every pending candidate at or below number.
func (r *candidateRecovery) onBlockFinalized(ctx context.Context, number uint64) {
	select {
	case r.finalizedCh <- number:
	case <-ctx.Done():
	}
}

// pendingHashes returns a snapshot of the currently pending candidate set.
// It exists for tests and diagnostics; nothing in the driver itself reads
// the pending map from outside run's goroutine.
func (r *candidateRecovery) pendingHashes(ctx context.Context) ([]common.Hash, error) {
	reply := make(chan []common.Hash, 1)
	select {
	case r.snapshotCh <- reply:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case hashes := <-reply:
		return hashes, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// run is the component's single owning goroutine; it returns when ctx is
// cancelled.
func (r *candidateRecovery) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case ins := <-r.insertCh:
			r.handleInsert(ctx, ins)

		case hash := <-r.importedCh:
			if _, ok := r.pending[hash]; ok {
				delete(r.pending, hash)
				pendingGauge.Dec(1)
				candidateEvictedMeter.Mark(1)
			}

		case number := <-r.finalizedCh:
			for hash, pc := range r.pending {
				if pc.blockNumber <= number {
					delete(r.pending, hash)
					pendingGauge.Dec(1)
					candidateEvictedMeter.Mark(1)
				}
			}

		case hash := <-r.firedCh:
			pc, ok := r.pending[hash]
			if !ok {
				// Evicted by import or finalization before the timer fired.
				continue
			}
			delete(r.pending, hash)
			pendingGauge.Dec(1)
			r.inFlight[hash] = struct{}{}
			inFlightGauge.Inc(1)
			r.startRecovery(ctx, hash, pc)

		case res := <-r.resultCh:
			delete(r.inFlight, res.hash)
			inFlightGauge.Dec(1)
			if res.err != nil {
				candidateFailedMeter.Mark(1)
				r.log.Debug("Availability recovery failed", "hash", res.hash, "err", res.err)
				continue
			}
			candidateRecoveredMeter.Mark(1)
			r.log.Debug("Availability recovery complete, discarding payload", "hash", res.hash, "bytes", len(res.data))

		case reply := <-r.snapshotCh:
			hashes := make([]common.Hash, 0, len(r.pending))
			for hash := range r.pending {
				hashes = append(hashes, hash)
			}
			reply <- hashes
		}
	}
}

func (r *candidateRecovery) handleInsert(ctx context.Context, ins recoveryInsert) {
	if _, ok := r.pending[ins.hash]; ok {
		return
	}
	if _, ok := r.inFlight[ins.hash]; ok {
		return
	}
	r.pending[ins.hash] = &pendingCandidate{
		receipt:      ins.receipt,
		sessionIndex: ins.session,
		blockNumber:  ins.blockNumber,
	}
	pendingGauge.Inc(1)
	candidateInsertedMeter.Mark(1)

	delay := time.Duration(r.cfg.rng().Float64() * float64(r.cfg.RelayChainSlotDuration))
	hash := ins.hash
	time.AfterFunc(delay, func() {
		select {
		case r.firedCh <- hash:
		case <-ctx.Done():
		}
	})
}

func (r *candidateRecovery) startRecovery(ctx context.Context, hash common.Hash, pc *pendingCandidate) {
	go func() {
		data, err := r.recovery.RecoverAvailableData(ctx, pc.receipt, pc.sessionIndex)
		if err != nil {
			r.log.Warn("Failed to start availability recovery", "hash", hash, "err", err)
		}
		select {
		case r.resultCh <- recoveryResult{hash: hash, data: data, err: err}:
		case <-ctx.Done():
		}
	}()
}
