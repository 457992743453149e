package ase

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-aseprite/ttesting"
)

func TestReaderString(t *testing.T) {
	for _, n := range []int{0, 1, 255, 256, 4096, 65535} {
		s := strings.Repeat("x", n)
		r := newReader(cat(str(s), []byte{0xAA}), 0)
		got, err := r.string()
		if err != nil {
			t.Fatalf("length %d: %v", n, err)
		}
		ttesting.AssertEqualInt(t, "decoded length", len(got), n)
		ttesting.AssertEqualInt(t, "consumed", r.pos, 2+n)
	}
}

func TestReaderStringUTF8(t *testing.T) {
	r := newReader(str("čaša ☕"), 0)
	got, err := r.string()
	if err != nil {
		t.Fatal(err)
	}
	ttesting.AssertEqualString(t, "string", got, "čaša ☕")
}

func TestReaderStringTruncated(t *testing.T) {
	r := newReader(le(uint16(10), [4]byte{}), 100)
	_, err := r.string()
	var be *BoundsError
	if !errors.As(err, &be) {
		t.Fatalf("got error %v; want a *BoundsError", err)
	}
	ttesting.AssertEqualInt(t, "offset", be.Offset, 102)
	ttesting.AssertEqualInt(t, "want", be.Want, 10)
	ttesting.AssertEqualInt(t, "end", be.End, 106)
}

func TestReaderSubIsBounded(t *testing.T) {
	r := newReader(le(uint32(1), uint32(2), uint32(3)), 50)
	sub, err := r.sub(4)
	if err != nil {
		t.Fatal(err)
	}
	ttesting.AssertEqualInt(t, "sub offset", sub.offset(), 50)
	if v, err := sub.u32(); err != nil || v != 1 {
		t.Fatalf("got %d, %v; want 1, nil", v, err)
	}
	if _, err := sub.u8(); !errors.Is(err, ErrBounds) {
		t.Errorf("got error %v reading past a sub reader; want ErrBounds", err)
	}
	ttesting.AssertEqualInt(t, "parent offset", r.offset(), 54)
	if v, err := r.u32(); err != nil || v != 2 {
		t.Errorf("got %d, %v from parent; want 2, nil", v, err)
	}
}

func TestReaderBytesCopies(t *testing.T) {
	buf := []byte{1, 2, 3}
	b, err := newReader(buf, 0).bytes(3)
	if err != nil {
		t.Fatal(err)
	}
	buf[0] = 9
	ttesting.AssertEqualBytes(t, "copy", b, []byte{1, 2, 3})
}

func TestReaderInflate(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	r := newReader(ttesting.Zlib(data), 0)
	got, err := r.inflate(r.remaining(), -1)
	if err != nil {
		t.Fatal(err)
	}
	ttesting.AssertEqualBytes(t, "inflated", got, data)
}

func TestReaderInflateLimit(t *testing.T) {
	data := make([]byte, 1<<20)
	r := newReader(ttesting.Zlib(data), 0)
	got, err := r.inflate(r.remaining(), 16)
	if err != nil {
		t.Fatal(err)
	}
	ttesting.AssertEqualInt(t, "inflated", len(got), 16)
}

func TestReaderInflateGarbage(t *testing.T) {
	r := newReader([]byte("not zlib at all"), 0)
	if _, err := r.inflate(r.remaining(), -1); err == nil {
		t.Fatalf("inflating garbage succeeded")
	}
}
