// Package bitpack extracts and inserts unsigned bit fields within a 32-bit word.
//
// Bit 0 is the least significant bit. A field is described by its width and
// the position of its least significant bit (lsb), and must lie entirely
// within the word: width + lsb <= 32.
package bitpack

import (
	"fmt"
)

const WORD_BITS = 32 // Width of a word, in bits.

// Fits returns true if a field of width bits at lsb lies within a word.
func Fits(width, lsb uint) bool {
	return width <= WORD_BITS && lsb <= WORD_BITS && width+lsb <= WORD_BITS
}

// mask returns a mask of the low width bits.
func mask(width uint) uint32 {
	return uint32((uint64(1) << width) - 1)
}

func check(width, lsb uint) {
	if !Fits(width, lsb) {
		panic(fmt.Sprintf("bitpack: field width %d at lsb %d exceeds %d bits", width, lsb, WORD_BITS))
	}
}

// Extract returns the width-bit unsigned field at lsb in word.
func Extract(word uint32, width, lsb uint) uint32 {
	check(width, lsb)

	if width == 0 {
		return 0
	}

	return (word >> lsb) & mask(width)
}

// Insert returns word with the width-bit field at lsb replaced by the
// low width bits of value. All other bits are preserved.
func Insert(word uint32, width, lsb uint, value uint32) uint32 {
	check(width, lsb)

	if width == 0 {
		return word
	}

	field := mask(width) << lsb

	return (word &^ field) | ((value << lsb) & field)
}
