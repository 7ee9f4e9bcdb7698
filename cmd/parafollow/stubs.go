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

package main

import (
	"context"
	"errors"

	"github.com/parastream/parafollow/common"
	"github.com/parastream/parafollow/parafollow"
)

// stubRelaychainClient yields nothing and never closes its channels; a real
// binary replaces it with relayadapter.New(rawEvents, runtimeQuerier) or an
// equivalent hand-written RelaychainClient.
type stubRelaychainClient struct{}

func (stubRelaychainClient) NewBestHeads(common.ParaID) <-chan []byte {
	return make(chan []byte)
}

func (stubRelaychainClient) FinalizedHeads(common.ParaID) <-chan []byte {
	return make(chan []byte)
}

func (stubRelaychainClient) PendingCandidates(common.ParaID) <-chan parafollow.PendingCandidate {
	return make(chan parafollow.PendingCandidate)
}

// stubParachainClient reports everything as unknown and never imports or
// finalizes anything; a real binary replaces it with a handle into its
// actual parachain node.
type stubParachainClient struct{}

func (stubParachainClient) BlockStatus(common.Hash) (parafollow.BlockStatus, error) {
	return parafollow.StatusUnknown, nil
}

func (stubParachainClient) FinalizeBlock(context.Context, common.Hash) error {
	return errors.New("stub parachain client: not wired to a real node")
}

func (stubParachainClient) ImportBlock(context.Context, parafollow.ImportParams) error {
	return errors.New("stub parachain client: not wired to a real node")
}

func (stubParachainClient) ImportNotifications() <-chan parafollow.ImportNotification {
	return make(chan parafollow.ImportNotification)
}

func (stubParachainClient) UsageInfo() parafollow.UsageInfo {
	return parafollow.UsageInfo{}
}

type stubAnnouncer struct{}

func (stubAnnouncer) Announce(common.Hash, []byte) {}

type stubAvailabilityRecovery struct{}

func (stubAvailabilityRecovery) RecoverAvailableData(context.Context, parafollow.CandidateReceipt, common.SessionIndex) (parafollow.AvailableData, error) {
	return nil, errors.New("stub availability recovery: not wired to a real overseer")
}

// stubHeaderDecoder rejects every input; a real binary supplies its chain's
// actual header codec (SCALE, RLP, or otherwise).
func stubHeaderDecoder([]byte) (parafollow.Header, error) {
	return nil, errors.New("stub header decoder: not wired to a real codec")
}
