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
	"encoding/binary"
	"sync"

	"github.com/parastream/parafollow/common"
)

// fakeHeader is the minimal Header implementation the test suite builds
// fixtures out of; its wire encoding (for decodeFakeHeader) is simply
// hash (32 bytes) || number (8 bytes) || parent hash (32 bytes).
type fakeHeader struct {
	hash   common.Hash
	number uint64
	parent common.Hash
}

func (h fakeHeader) Hash() common.Hash       { return h.hash }
func (h fakeHeader) Number() uint64          { return h.number }
func (h fakeHeader) ParentHash() common.Hash { return h.parent }

func mkHeader(name string, number uint64, parent string) fakeHeader {
	return fakeHeader{hash: common.HexToHash(nameToHex(name)), number: number, parent: common.HexToHash(nameToHex(parent))}
}

// nameToHex turns a short test fixture name into a deterministic, distinct
// 32-byte hash so test output stays readable without colliding.
func nameToHex(name string) string {
	h := common.Hash{}
	copy(h[:], name)
	return h.Hex()
}

// encodeFakeHeader is the wire encoding decodeFakeHeader reverses: hash (32
// bytes) || number (8 bytes) || parent hash (32 bytes). A real codec
// wouldn't carry the hash explicitly (it's derived from content), but
// doing so here keeps the fake self-contained with no shared test state.
func encodeFakeHeader(h fakeHeader) []byte {
	b := make([]byte, common.HashLength+8+common.HashLength)
	copy(b[:common.HashLength], h.hash.Bytes())
	binary.BigEndian.PutUint64(b[common.HashLength:common.HashLength+8], h.number)
	copy(b[common.HashLength+8:], h.parent.Bytes())
	return b
}

func decodeFakeHeader(b []byte) (Header, error) {
	if len(b) != common.HashLength+8+common.HashLength {
		return nil, errDecodeUnknown
	}
	return fakeHeader{
		hash:   common.BytesToHash(b[:common.HashLength]),
		number: binary.BigEndian.Uint64(b[common.HashLength : common.HashLength+8]),
		parent: common.BytesToHash(b[common.HashLength+8:]),
	}, nil
}

var errDecodeUnknown = &decodeError{"malformed test fixture"}

type decodeError struct{ msg string }

func (e *decodeError) Error() string { return e.msg }

// fakeParachainClient is an in-memory ParachainClient test double. All
// fields are guarded by mu; tests drive it from a single goroutine but the
// driver under test calls it from two (besthead, finalizedhead).
type fakeParachainClient struct {
	mu          sync.Mutex
	best        common.Hash
	finalized   common.Hash
	statuses    map[common.Hash]BlockStatus
	imports     chan ImportNotification
	importCalls []ImportParams
	finalizeErr map[common.Hash]error
	finalizeLog []common.Hash
}

func newFakeParachainClient() *fakeParachainClient {
	return &fakeParachainClient{
		statuses:    make(map[common.Hash]BlockStatus),
		imports:     make(chan ImportNotification, 16),
		finalizeErr: make(map[common.Hash]error),
	}
}

func (c *fakeParachainClient) BlockStatus(hash common.Hash) (BlockStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.statuses[hash]; ok {
		return s, nil
	}
	return StatusUnknown, nil
}

func (c *fakeParachainClient) setStatus(hash common.Hash, s BlockStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses[hash] = s
}

func (c *fakeParachainClient) FinalizeBlock(ctx context.Context, hash common.Hash) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finalizeLog = append(c.finalizeLog, hash)
	if err, ok := c.finalizeErr[hash]; ok {
		return err
	}
	c.finalized = hash
	return nil
}

func (c *fakeParachainClient) ImportBlock(ctx context.Context, params ImportParams) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.importCalls = append(c.importCalls, params)
	c.best = params.Header.Hash()
	return nil
}

func (c *fakeParachainClient) ImportNotifications() <-chan ImportNotification { return c.imports }

func (c *fakeParachainClient) UsageInfo() UsageInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return UsageInfo{BestHash: c.best, FinalizedHash: c.finalized}
}

func (c *fakeParachainClient) pushImport(n ImportNotification) { c.imports <- n }

func (c *fakeParachainClient) importedHashes() []common.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]common.Hash, len(c.importCalls))
	for i, p := range c.importCalls {
		out[i] = p.Header.Hash()
	}
	return out
}

// fakeRelaychainClient is an in-memory RelaychainClient test double.
type fakeRelaychainClient struct {
	newBest   chan []byte
	finalized chan []byte
	pending   chan PendingCandidate
}

func newFakeRelaychainClient() *fakeRelaychainClient {
	return &fakeRelaychainClient{
		newBest:   make(chan []byte, 16),
		finalized: make(chan []byte, 16),
		pending:   make(chan PendingCandidate, 16),
	}
}

func (c *fakeRelaychainClient) NewBestHeads(common.ParaID) <-chan []byte        { return c.newBest }
func (c *fakeRelaychainClient) FinalizedHeads(common.ParaID) <-chan []byte      { return c.finalized }
func (c *fakeRelaychainClient) PendingCandidates(common.ParaID) <-chan PendingCandidate { return c.pending }

// fakeAnnouncer records every announced hash.
type fakeAnnouncer struct {
	mu        sync.Mutex
	announced []common.Hash
}

func (a *fakeAnnouncer) Announce(hash common.Hash, data []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.announced = append(a.announced, hash)
}

func (a *fakeAnnouncer) hashes() []common.Hash {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]common.Hash, len(a.announced))
	copy(out, a.announced)
	return out
}

// fakeAvailabilityRecovery lets tests script recovery outcomes per receipt
// and observe every request made.
type fakeAvailabilityRecovery struct {
	mu       sync.Mutex
	requests []CandidateReceipt
	result   func(receipt CandidateReceipt) (AvailableData, error)
	done     chan struct{}
}

func newFakeAvailabilityRecovery() *fakeAvailabilityRecovery {
	return &fakeAvailabilityRecovery{done: make(chan struct{}, 64)}
}

func (r *fakeAvailabilityRecovery) RecoverAvailableData(ctx context.Context, receipt CandidateReceipt, session common.SessionIndex) (AvailableData, error) {
	r.mu.Lock()
	r.requests = append(r.requests, receipt)
	fn := r.result
	r.mu.Unlock()

	defer func() { r.done <- struct{}{} }()
	if fn != nil {
		return fn(receipt)
	}
	return AvailableData("recovered:" + string(receipt)), nil
}

func (r *fakeAvailabilityRecovery) requestCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}
