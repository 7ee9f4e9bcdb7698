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

// Package parafollow turns relay-chain observations into local parachain
// chain-head decisions.
//
// A parachain node keeps its own block database but delegates the question
// of which of its blocks is canonical to a relay chain. This package watches
// the relay chain's best-head, finalized-head and pending-candidate streams
// side by side with the parachain's own import notifications, and reacts by
// marking a local block as best, finalizing it, or scheduling proactive
// availability recovery of a block whose body hasn't arrived locally yet.
//
// Run starts the best-head follower, the finalized-head follower and
// candidate recovery concurrently (the import-observer/announce glue runs
// inside the best-head follower's loop); it returns when ctx is cancelled
// or when a follower observes its input channel close.
package parafollow
