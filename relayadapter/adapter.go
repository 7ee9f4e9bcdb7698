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

// Package relayadapter derives a parafollow.RelaychainClient from a generic
// relay-chain client's raw import/finality notifications plus a handful of
// runtime queries, so an embedding node doesn't have to hand-write the
// per-parachain filtering and lookups itself. This mirrors the blanket
// `impl<T> RelaychainClient for Arc<T>` the original Cumulus source
// provides for anything that exposes the same raw notifications; it is a
// convenience layer on top of parafollow's core, not required to use it.
package relayadapter

import (
	"github.com/parastream/parafollow/common"
	"github.com/parastream/parafollow/log"
	"github.com/parastream/parafollow/parafollow"
)

// ImportEvent is a raw relay-chain block import notification.
type ImportEvent struct {
	Hash      common.Hash
	IsNewBest bool
}

// FinalityEvent is a raw relay-chain finality notification.
type FinalityEvent struct {
	Hash common.Hash
}

// RawRelayEvents is the generic notification source a relay-chain client
// exposes, independent of any particular parachain.
type RawRelayEvents interface {
	Imports() <-chan ImportEvent
	Finality() <-chan FinalityEvent
}

// RelayRuntimeQuerier is the narrow set of runtime calls needed to turn a
// raw relay-chain notification into per-parachain data: the committed
// parachain head at a relay block, the candidates currently pending
// availability, and the session a relay block falls in.
type RelayRuntimeQuerier interface {
	// ParachainHeadAt returns the opaque committed parachain head data for
	// paraID as of relayBlock, or nil if the parachain has no head
	// committed there yet.
	ParachainHeadAt(relayBlock common.Hash, paraID common.ParaID) ([]byte, error)

	// PendingAvailability returns the candidates backed for paraID that are
	// still awaiting availability as of relayBlock.
	PendingAvailability(relayBlock common.Hash, paraID common.ParaID) ([]parafollow.PendingCandidate, error)

	// SessionIndex returns the validator-set session relayBlock falls in.
	SessionIndex(relayBlock common.Hash) (common.SessionIndex, error)
}

// Adapter implements parafollow.RelaychainClient on top of a
// RelayRuntimeQuerier and a RawRelayEvents source.
type Adapter struct {
	events  RawRelayEvents
	querier RelayRuntimeQuerier
	log     log.Logger
}

// New builds an Adapter. It does not start any goroutines itself; each of
// NewBestHeads, FinalizedHeads, and PendingCandidates spawns a new
// translation goroutine on every call, scoped to that call's output
// channel and torn down when events closes.
func New(events RawRelayEvents, querier RelayRuntimeQuerier) *Adapter {
	return &Adapter{events: events, querier: querier, log: log.New("component", "relayadapter")}
}

// NewBestHeads implements parafollow.RelaychainClient.
func (a *Adapter) NewBestHeads(paraID common.ParaID) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for ev := range a.events.Imports() {
			if !ev.IsNewBest {
				continue
			}
			head, err := a.querier.ParachainHeadAt(ev.Hash, paraID)
			if err != nil {
				a.log.Warn("Failed to query parachain head at relay best block", "relayHash", ev.Hash, "paraId", paraID, "err", err)
				continue
			}
			if head == nil {
				continue
			}
			out <- head
		}
	}()
	return out
}

// FinalizedHeads implements parafollow.RelaychainClient.
func (a *Adapter) FinalizedHeads(paraID common.ParaID) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for ev := range a.events.Finality() {
			head, err := a.querier.ParachainHeadAt(ev.Hash, paraID)
			if err != nil {
				a.log.Warn("Failed to query parachain head at relay finalized block", "relayHash", ev.Hash, "paraId", paraID, "err", err)
				continue
			}
			if head == nil {
				continue
			}
			out <- head
		}
	}()
	return out
}

// PendingCandidates implements parafollow.RelaychainClient.
func (a *Adapter) PendingCandidates(paraID common.ParaID) <-chan parafollow.PendingCandidate {
	out := make(chan parafollow.PendingCandidate)
	go func() {
		defer close(out)
		for ev := range a.events.Imports() {
			candidates, err := a.querier.PendingAvailability(ev.Hash, paraID)
			if err != nil {
				a.log.Warn("Failed to query pending availability", "relayHash", ev.Hash, "paraId", paraID, "err", err)
				continue
			}
			if len(candidates) == 0 {
				continue
			}

			// Every candidate backed at the same relay block shares that
			// block's session; PendingAvailability need not fill it in.
			session, err := a.querier.SessionIndex(ev.Hash)
			if err != nil {
				a.log.Warn("Failed to query session index", "relayHash", ev.Hash, "err", err)
				continue
			}

			for _, c := range candidates {
				c.SessionIndex = session
				out <- c
			}
		}
	}()
	return out
}
