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

import "github.com/parastream/parafollow/common"

// Header is the minimal view this driver needs of a parachain block
// header: its identity hash and its place in the parent-hash/number chain.
// The concrete header codec (SCALE, RLP, or otherwise) is a decision for
// the embedding node, not this package.
type Header interface {
	Hash() common.Hash
	Number() uint64
	ParentHash() common.Hash
}

// HeaderDecoder decodes the opaque header bytes the relay chain hands back
// (persisted_validation_data's parent_head, or a pending candidate's
// committed head data) into a Header. A decode failure is not fatal to the
// driver: every call site logs it at warn and moves on.
type HeaderDecoder func([]byte) (Header, error)
