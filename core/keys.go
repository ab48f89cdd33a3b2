// SPDX-License-Identifier: MIT
//
// File: keys.go
// Role: Variable identifiers, the Symbol char+index packing and key formatting.
// Policy:
//   - Keys are opaque uint64 values everywhere else in the module.
//   - Formatting is injected (KeyFormatter) so renderers never guess.

package core

import (
	"sort"
	"strconv"
)

// Key identifies one variable in a factor graph. The zero value is a valid
// key; no range of keys is reserved by the engines.
type Key uint64

// symbolShift positions the tag character in the top byte of a Key, leaving
// 56 bits for the index.
const symbolShift = 56

// symbolIndexMask selects the index bits of a packed Key.
const symbolIndexMask = (Key(1) << symbolShift) - 1

// Symbol packs a one-character tag and an index into a Key, so tests, DOT
// output and error messages can speak of "x0" or "l7" instead of raw
// integers. Indices above 2^56-1 are truncated to the low 56 bits.
func Symbol(chr byte, index uint64) Key {
	return Key(chr)<<symbolShift | (Key(index) & symbolIndexMask)
}

// SymbolChr returns the tag character of a packed key, 0 when the key was
// not produced by Symbol.
func SymbolChr(k Key) byte {
	return byte(k >> symbolShift)
}

// SymbolIndex returns the index part of a packed key.
func SymbolIndex(k Key) uint64 {
	return uint64(k & symbolIndexMask)
}

// KeyFormatter renders a Key for humans. All renderers in this module take
// one; pass nil to get DefaultKeyFormatter.
type KeyFormatter func(Key) string

// DefaultKeyFormatter prints Symbol-packed keys as "<chr><index>" when the
// tag is a letter and falls back to the plain decimal value otherwise.
func DefaultKeyFormatter(k Key) string {
	chr := SymbolChr(k)
	if (chr >= 'a' && chr <= 'z') || (chr >= 'A' && chr <= 'Z') {
		return string(chr) + strconv.FormatUint(SymbolIndex(k), 10)
	}
	return strconv.FormatUint(uint64(k), 10)
}

// String implements fmt.Stringer via DefaultKeyFormatter.
func (k Key) String() string { return DefaultKeyFormatter(k) }

// SortKeys sorts keys ascending in place and returns the slice.
func SortKeys(keys []Key) []Key {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// FormatKeys renders keys as "x0 x1 l2" using the given formatter
// (DefaultKeyFormatter when nil). Shared by error messages and DOT writers.
func FormatKeys(keys []Key, format KeyFormatter) string {
	if format == nil {
		format = DefaultKeyFormatter
	}
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += " "
		}
		out += format(k)
	}
	return out
}
