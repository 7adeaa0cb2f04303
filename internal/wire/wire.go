// Package wire frames cached response bodies. The envelope carries the
// fetch timestamp so readers can tell how old a cached response is without
// trusting provider TTLs.
//
// Decoding is strict: wrong magic, wrong version, bad lengths, and trailing
// bytes are all ErrCorrupt. Callers treat ErrCorrupt as "delete and miss".
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("memoize: corrupt cache entry")
	magic4     = [...]byte{'M', 'E', 'M', 'O'}
)

const hdrLen = 4 + 1 + 8 + 4 // magic | ver | fetchedAt | blen

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Entry: magic(4) | ver(1) | fetchedAt unix nanos (u64 be) | blen(u32 be) | body(blen)
func Encode(fetchedAt time.Time, body []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(hdrLen + len(body))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], uint64(fetchedAt.UnixNano()))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(body)))
	buf.Write(u4[:])

	buf.Write(body)
	return buf.Bytes()
}

// Decode returns the fetch timestamp and the body. The body is a subslice
// of b, not a copy.
func Decode(b []byte) (fetchedAt time.Time, body []byte, err error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version {
		return time.Time{}, nil, ErrCorrupt
	}

	off := 5

	nanos := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	blen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if blen < 0 || blen != len(b)-off { // strict: no trailing bytes
		return time.Time{}, nil, ErrCorrupt
	}

	return time.Unix(0, nanos), b[off : off+blen], nil
}
