package wire

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

func mustDecode(t *testing.T, b []byte) (time.Time, []byte) {
	t.Helper()
	at, body, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return at, body
}

func TestRoundTripEmptyAndNonEmpty(t *testing.T) {
	now := time.Now()
	cases := [][]byte{
		nil,
		[]byte("hello"),
		{0, 1, 2, 3, 4},
	}
	for _, body := range cases {
		enc := Encode(now, body)
		at, got := mustDecode(t, enc)
		if at.UnixNano() != now.UnixNano() {
			t.Fatalf("fetchedAt mismatch: got %d want %d", at.UnixNano(), now.UnixNano())
		}
		if !bytes.Equal(got, body) {
			t.Fatalf("body mismatch: got %x want %x", got, body)
		}
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := Encode(time.Now(), []byte("x"))
	enc = append(enc, 0xDE, 0xAD) // add junk
	if _, _, err := Decode(enc); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestCorruptHeadersAndLengths(t *testing.T) {
	enc := Encode(time.Now(), []byte("abc"))

	// bad magic
	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, _, err := Decode(badMagic); err == nil {
		t.Fatalf("expected error on bad magic")
	}

	// wrong version
	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, _, err := Decode(badVer); err == nil {
		t.Fatalf("expected error on bad version")
	}

	// blen too large (announce more than available)
	tooLong := append([]byte(nil), enc...)
	// blen sits at offset 13..16 (4 magic + 1 ver + 8 fetchedAt)
	binary.BigEndian.PutUint32(tooLong[13:17], uint32(len("abc")+1))
	if _, _, err := Decode(tooLong); err == nil {
		t.Fatalf("expected error on blen beyond buffer")
	}

	// blen too small (leaves trailing bytes)
	tooShort := append([]byte(nil), enc...)
	binary.BigEndian.PutUint32(tooShort[13:17], uint32(len("abc")-1))
	if _, _, err := Decode(tooShort); err == nil {
		t.Fatalf("expected error on blen leaving trailing bytes")
	}

	// truncated buffer
	trunc := enc[:len(enc)-1]
	if _, _, err := Decode(trunc); err == nil {
		t.Fatalf("expected error on truncated buffer")
	}

	// header only, no room for declared body
	if _, _, err := Decode(enc[:hdrLen-1]); err == nil {
		t.Fatalf("expected error on short header")
	}
}

func TestZeroCopyBody(t *testing.T) {
	enc := Encode(time.Now(), []byte("Z"))
	_, body := mustDecode(t, enc)
	if len(body) != 1 {
		t.Fatalf("unexpected body len")
	}
	// mutate body slice. should mutate underlying enc bytes (zero-copy)
	body[0] = 'Q'
	_, body2 := mustDecode(t, enc)
	if body2[0] != 'Q' {
		t.Fatalf("expected zero-copy slice into enc buffer")
	}
}
