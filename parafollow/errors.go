// Copyright 2017 The go-ethereum Authors
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

import "errors"

// ErrUnknownBlock is returned by ParachainClient.FinalizeBlock when the
// relay chain has finalized a parachain block that hasn't been imported
// locally yet. This is an expected race: the same fork's next
// relay-finalized head will retry finalization once the import lands.
var ErrUnknownBlock = errors.New("parafollow: unknown block")
