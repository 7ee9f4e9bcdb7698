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
	"sync"

	"github.com/parastream/parafollow/common"
	"github.com/parastream/parafollow/log"
)

// Driver is a running parachain-follower instance: the three sub-drivers
// wired together and ready for Run.
type Driver struct {
	cfg      Config
	paraID   common.ParaID
	besthead *bestHeadFollower
	finhead  *finalizedHeadFollower
	recovery *candidateRecovery
}

// New wires a Driver for paraID out of the supplied capabilities. cfg may be
// the zero value, in which case DefaultConfig's tunables are used.
func New(paraID common.ParaID, relay RelaychainClient, client ParachainClient, announcer Announcer, decode HeaderDecoder, avail AvailabilityRecovery, cfg Config) *Driver {
	if cfg.RelayChainSlotDuration == 0 {
		cfg.RelayChainSlotDuration = DefaultConfig.RelayChainSlotDuration
	}
	if cfg.RecoveryConcurrencyHint == 0 {
		cfg.RecoveryConcurrencyHint = DefaultConfig.RecoveryConcurrencyHint
	}

	recovery := newCandidateRecovery(cfg, avail)
	return &Driver{
		cfg:      cfg,
		paraID:   paraID,
		besthead: newBestHeadFollower(paraID, relay, client, announcer, decode, recovery),
		finhead:  newFinalizedHeadFollower(paraID, relay, client, decode, recovery),
		recovery: recovery,
	}
}

// Run starts the three cooperating sub-drivers (the import-observer/
// announce glue lives inside the best-head loop) and blocks until ctx is
// cancelled or any one of them returns because its input stream closed —
// at which point Run cancels the others and returns, treating that as
// shutdown of the whole core.
func Run(ctx context.Context, d *Driver) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l := log.New("component", "parafollow", "paraId", d.paraID)
	l.Info("Starting parachain follower")
	defer l.Info("Parachain follower stopped")

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		defer cancel()
		d.recovery.run(ctx)
	}()

	go func() {
		defer wg.Done()
		defer cancel()
		d.besthead.run(ctx)
	}()

	go func() {
		defer wg.Done()
		defer cancel()
		d.finhead.run(ctx)
	}()

	wg.Wait()
}
