package engine

import (
	"sync/atomic"

	. "github.com/chers/chers/pkg/common"
)

const (
	boundLower = 1 << iota
	boundUpper
)

const boundExact = boundLower | boundUpper

const dateMask = 1<<14 - 1

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

// transEntry is 16 bytes. Writers store data and key^data without locking,
// so a slot written by two threads at once fails the key check on read.
type transEntry struct {
	keyXorData uint64
	data       uint64
}

// data layout: move 0-23, score 24-39, depth 40-47, bound 48-49, date 50-63.
func packEntry(depth, score, bound int, move Move, date uint16) uint64 {
	return uint64(uint32(move)&0xffffff) |
		uint64(uint16(int16(score)))<<24 |
		uint64(uint8(int8(depth)))<<40 |
		uint64(bound&3)<<48 |
		uint64(date&dateMask)<<50
}

func unpackEntry(data uint64) (depth, score, bound int, move Move, date uint16) {
	move = Move(data & 0xffffff)
	score = int(int16(uint16(data >> 24)))
	depth = int(int8(uint8(data >> 40)))
	bound = int((data >> 48) & 3)
	date = uint16(data >> 50)
	return
}

type transTable struct {
	megabytes int
	entries   []transEntry
	date      uint16
	mask      uint64
}

// good test: position fen 8/k7/3p4/p2P1p2/P2P1P2/8/8/K7 w - - 0 1
func newTransTable(megabytes int) *transTable {
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / 16)
	return &transTable{
		megabytes: megabytes,
		entries:   make([]transEntry, size),
		mask:      uint64(size - 1),
	}
}

func (tt *transTable) Size() int {
	return tt.megabytes
}

func (tt *transTable) IncDate() {
	tt.date = (tt.date + 1) & dateMask
}

func (tt *transTable) Clear() {
	tt.date = 0
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
}

func (tt *transTable) Read(key uint64) (depth, score, bound int, move Move, ok bool) {
	var entry = &tt.entries[key&tt.mask]
	var data = atomic.LoadUint64(&entry.data)
	if atomic.LoadUint64(&entry.keyXorData)^data != key || data == 0 {
		return
	}
	depth, score, bound, move, _ = unpackEntry(data)
	ok = true
	return
}

func (tt *transTable) Update(key uint64, depth, score, bound int, move Move) {
	var entry = &tt.entries[key&tt.mask]
	var oldData = atomic.LoadUint64(&entry.data)
	var oldKey = atomic.LoadUint64(&entry.keyXorData) ^ oldData
	var oldDepth, _, _, oldMove, oldDate = unpackEntry(oldData)

	var replace bool
	if oldKey == key {
		replace = depth >= oldDepth-3 || bound == boundExact
		if move == MoveEmpty {
			move = oldMove
		}
	} else {
		replace = oldDate != tt.date || depth >= oldDepth
	}
	if !replace {
		return
	}
	var data = packEntry(depth, score, bound, move, tt.date)
	atomic.StoreUint64(&entry.data, data)
	atomic.StoreUint64(&entry.keyXorData, key^data)
}

// noTransTable is used when the table is switched off: every read misses.
type noTransTable struct{}

func (noTransTable) Size() int {
	return 0
}

func (noTransTable) IncDate() {}

func (noTransTable) Clear() {}

func (noTransTable) Read(key uint64) (depth, score, bound int, move Move, ok bool) {
	return
}

func (noTransTable) Update(key uint64, depth, score, bound int, move Move) {}
