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
	"testing"
	"time"
)

func newTestBestHead(t *testing.T) (*bestHeadFollower, *fakeParachainClient, *fakeRelaychainClient, *fakeAnnouncer, *candidateRecovery, context.CancelFunc) {
	t.Helper()
	client := newFakeParachainClient()
	relay := newFakeRelaychainClient()
	announcer := &fakeAnnouncer{}
	avail := newFakeAvailabilityRecovery()
	recovery := newCandidateRecovery(DefaultConfig, avail)

	ctx, cancel := context.WithCancel(context.Background())
	go recovery.run(ctx)

	f := newBestHeadFollower(1, relay, client, announcer, decodeFakeHeader, recovery)
	return f, client, relay, announcer, recovery, cancel
}

// The block is already known with state, so the relay-nominated head is
// promoted immediately and nothing is deferred.
func TestBestHead_HappyPath(t *testing.T) {
	f, client, relay, _, _, cancel := newTestBestHead(t)
	defer cancel()

	h := mkHeader("H", 5, "")
	client.setStatus(h.Hash(), StatusInChainWithState)

	go f.run(context.Background())
	relay.newBest <- encodeFakeHeader(h)

	waitFor(t, func() bool { return len(client.importedHashes()) == 1 })

	if got := client.importedHashes(); len(got) != 1 || got[0] != h.Hash() {
		t.Fatalf("expected single import of %v, got %v", h.Hash(), got)
	}
	if f.deferred != nil {
		t.Fatalf("expected no deferred header, got %v", f.deferred)
	}
}

// An unknown relay-nominated block is deferred; once a matching import
// notification arrives and a status re-check shows the block now has
// state, it is promoted and the non-own import is announced.
func TestBestHead_DeferredThenPromoted(t *testing.T) {
	f, client, relay, announcer, _, cancel := newTestBestHead(t)
	defer cancel()

	h := mkHeader("H", 5, "")
	go f.run(context.Background())

	relay.newBest <- encodeFakeHeader(h)
	waitFor(t, func() bool { return f.deferred != nil })
	if len(client.importedHashes()) != 0 {
		t.Fatalf("expected no import yet, got %v", client.importedHashes())
	}

	client.setStatus(h.Hash(), StatusInChainWithState)
	client.pushImport(ImportNotification{
		Hash:      h.Hash(),
		Header:    h,
		Origin:    OriginNetworkBroadcast,
		IsNewBest: false,
	})

	waitFor(t, func() bool { return len(client.importedHashes()) == 1 })

	if got := announcer.hashes(); len(got) != 1 || got[0] != h.Hash() {
		t.Fatalf("expected announce(H), got %v", got)
	}
	if f.deferred != nil {
		t.Fatalf("expected deferred header cleared after promotion")
	}
}

// A pruned block status triggers no import call and leaves the deferred
// header untouched.
func TestBestHead_PrunedIsIgnored(t *testing.T) {
	f, client, relay, _, _, cancel := newTestBestHead(t)
	defer cancel()

	p := mkHeader("P", 9, "")
	client.setStatus(p.Hash(), StatusInChainPruned)

	go f.run(context.Background())
	relay.newBest <- encodeFakeHeader(p)

	time.Sleep(50 * time.Millisecond)
	if len(client.importedHashes()) != 0 {
		t.Fatalf("expected no import for pruned head, got %v", client.importedHashes())
	}
	if f.deferred != nil {
		t.Fatalf("expected deferred header to remain nil")
	}
}

// At most one deferred best header exists at any instant — a second
// unknown relay head overwrites, never appends to, the slot.
func TestBestHead_DeferredSlotIsSingular(t *testing.T) {
	f, _, relay, _, _, cancel := newTestBestHead(t)
	defer cancel()

	a := mkHeader("A", 3, "")
	b := mkHeader("B", 4, "")

	go f.run(context.Background())
	relay.newBest <- encodeFakeHeader(a)
	waitFor(t, func() bool { return f.deferred != nil && f.deferred.Hash() == a.Hash() })

	relay.newBest <- encodeFakeHeader(b)
	waitFor(t, func() bool { return f.deferred != nil && f.deferred.Hash() == b.Hash() })
}

// Announce is called exactly once per non-own imported block, and never
// for self-authored imports.
func TestBestHead_AnnouncesOnlyNonOwnImports(t *testing.T) {
	f, client, _, announcer, _, cancel := newTestBestHead(t)
	defer cancel()

	go f.run(context.Background())

	own := mkHeader("OWN", 1, "")
	other := mkHeader("OTHER", 2, "")
	client.pushImport(ImportNotification{Hash: own.Hash(), Header: own, Origin: OriginOwn, IsNewBest: true})
	client.pushImport(ImportNotification{Hash: other.Hash(), Header: other, Origin: OriginNetworkBroadcast, IsNewBest: true})

	waitFor(t, func() bool { return len(announcer.hashes()) == 1 })
	got := announcer.hashes()
	if len(got) != 1 || got[0] != other.Hash() {
		t.Fatalf("expected exactly one announce for the non-own import, got %v", got)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !cond() {
		t.Fatalf("condition not met before deadline")
	}
}
