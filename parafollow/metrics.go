// Copyright 2015 The go-ethereum Authors
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

// Contains the metrics collected by the parafollow driver.

package parafollow

import "github.com/parastream/parafollow/metrics"

var (
	bestHeadDecodeErrorMeter = metrics.NewRegisteredMeter("parafollow/besthead/decode/errors", nil)
	bestHeadDeferredMeter    = metrics.NewRegisteredMeter("parafollow/besthead/deferred", nil)
	bestHeadPromotedMeter    = metrics.NewRegisteredMeter("parafollow/besthead/promoted", nil)
	bestHeadPrunedMeter      = metrics.NewRegisteredMeter("parafollow/besthead/pruned", nil)
	bestHeadLatencyTimer     = metrics.NewRegisteredTimer("parafollow/besthead/latency", nil)

	announceMeter = metrics.NewRegisteredMeter("parafollow/announce", nil)

	finalizedDecodeErrorMeter = metrics.NewRegisteredMeter("parafollow/finalized/decode/errors", nil)
	finalizedUnknownMeter     = metrics.NewRegisteredMeter("parafollow/finalized/unknown", nil)
	finalizedErrorMeter       = metrics.NewRegisteredMeter("parafollow/finalized/errors", nil)
	finalizedOKMeter          = metrics.NewRegisteredMeter("parafollow/finalized/ok", nil)

	candidateInsertedMeter  = metrics.NewRegisteredMeter("parafollow/recovery/inserted", nil)
	candidateEvictedMeter   = metrics.NewRegisteredMeter("parafollow/recovery/evicted", nil)
	candidateRecoveredMeter = metrics.NewRegisteredMeter("parafollow/recovery/recovered", nil)
	candidateFailedMeter    = metrics.NewRegisteredMeter("parafollow/recovery/failed", nil)
	candidateDroppedMeter   = metrics.NewRegisteredMeter("parafollow/recovery/dropped", nil)
	pendingGauge            = metrics.NewRegisteredCounter("parafollow/recovery/pending", nil)
	inFlightGauge           = metrics.NewRegisteredCounter("parafollow/recovery/inflight", nil)
)
