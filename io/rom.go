package io

import (
	"io"
	"os"

	"github.com/ezrec/um/bitpack"
)

const WORD_BYTES = 4 // Bytes per program word.

// Rom holds a program image: the words that become segment 0 at boot.
type Rom struct {
	Data []uint32
}

// Load replaces the image with the contents of r. Each group of four bytes
// is one word, most significant byte first. A trailing partial group is
// ignored.
func (rc *Rom) Load(r io.Reader) (err error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		err = &ErrRom{Path: "-", Err: err}
		return
	}

	rc.Data = Words(raw)

	return
}

// LoadFile replaces the image with the contents of the named file.
func (rc *Rom) LoadFile(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		err = &ErrRom{Path: path, Err: err}
		return
	}
	defer inf.Close()

	err = rc.Load(inf)
	if rerr, ok := err.(*ErrRom); ok {
		rerr.Path = path
	}

	return
}

// Words assembles big-endian words from raw, ignoring a trailing partial word.
func Words(raw []byte) (words []uint32) {
	words = make([]uint32, len(raw)/WORD_BYTES)
	for n := range words {
		var word uint32
		for b, lsb := 0, 24; lsb >= 0; b, lsb = b+1, lsb-8 {
			word = bitpack.Insert(word, 8, uint(lsb), uint32(raw[n*WORD_BYTES+b]))
		}
		words[n] = word
	}

	return
}

// Bytes is the inverse of Words: the big-endian image of words.
func Bytes(words []uint32) (raw []byte) {
	raw = make([]byte, 0, len(words)*WORD_BYTES)
	for _, word := range words {
		for lsb := 24; lsb >= 0; lsb -= 8 {
			raw = append(raw, byte(bitpack.Extract(word, 8, uint(lsb))))
		}
	}

	return
}
