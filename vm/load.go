package vm

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"
)

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Decompress returns a reader over the plain text of r, undoing gzip or
// zstd compression when the leading magic bytes ask for it.
func Decompress(r io.Reader) (rc io.ReadCloser, err error) {
	br := bufio.NewReader(r)

	magic, _ := br.Peek(len(magicZstd))

	switch {
	case bytes.HasPrefix(magic, magicZstd):
		var dec *zstd.Decoder
		dec, err = zstd.NewReader(br)
		if err != nil {
			err = errors.Join(ErrDecompress, err)
			return
		}
		rc = dec.IOReadCloser()
	case bytes.HasPrefix(magic, magicGzip):
		var gz *gzip.Reader
		gz, err = gzip.NewReader(br)
		if err != nil {
			err = errors.Join(ErrDecompress, err)
			return
		}
		rc = gz
	default:
		rc = io.NopCloser(br)
	}

	return
}

// Load reads a program image from a file, which may be gzip or zstd
// compressed.
func Load(path string) (prog Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	rc, err := Decompress(inf)
	if err != nil {
		return
	}
	defer rc.Close()

	return Parse(rc)
}

// Digest is the blake3 fingerprint of the program image, taken over the
// little-endian encoding of each word.
func (prog Program) Digest() (sum [32]byte) {
	h := blake3.New()

	var word [8]byte
	for _, value := range prog {
		binary.LittleEndian.PutUint64(word[:], uint64(value))
		h.Write(word[:])
	}

	copy(sum[:], h.Sum(nil))

	return
}
