package classfile

import (
	"errors"
	"testing"
)

func samplePool(t *testing.T) *ConstantPool {
	t.Helper()
	ci, err := ParseBytes(sampleClass())
	if err != nil {
		t.Fatalf("parsing sample class: %v", err)
	}
	return ci.Pool
}

func TestPoolDoubleWidthSlots(t *testing.T) {
	pool := samplePool(t)

	if pool.Count() != 15 {
		t.Fatalf("unexpected pool count %d", pool.Count())
	}

	c, err := pool.Get(12)
	if err != nil {
		t.Fatalf("Get(12): %v", err)
	}
	long, ok := c.(*ConstantLong)
	if !ok {
		t.Fatalf("entry 12 is not Long: %T", c)
	}
	if long.Value != 42 {
		t.Errorf("unexpected long value %d", long.Value)
	}

	if !pool.IsReserved(13) {
		t.Error("slot 13 should be reserved")
	}
	if pool.IsReserved(12) {
		t.Error("slot 12 should not be reserved")
	}

	// the entry after the reserved slot keeps its declared index
	s, err := pool.Utf8(14)
	if err != nil {
		t.Fatalf("Utf8(14): %v", err)
	}
	if s != "LineNumberTable" {
		t.Errorf("unexpected entry 14: %q", s)
	}
}

func TestPoolDerefErrors(t *testing.T) {
	pool := samplePool(t)

	for _, index := range []uint16{0, 13, 200} {
		_, err := pool.Deref(index)
		var ir *InvalidReferenceError
		if !errors.As(err, &ir) {
			t.Errorf("Deref(%d): expected InvalidReferenceError, got %v", index, err)
			continue
		}
		if ir.Index != index {
			t.Errorf("Deref(%d): error carries index %d", index, ir.Index)
		}
	}
}

func TestPoolDeref(t *testing.T) {
	pool := samplePool(t)

	// scalar passes through
	v, err := pool.Deref(12)
	if err != nil {
		t.Fatalf("Deref(12): %v", err)
	}
	if v != int64(42) {
		t.Errorf("Deref(12): got %v (%T)", v, v)
	}

	// Class resolves one hop to its name
	v, err = pool.Deref(4)
	if err != nil {
		t.Fatalf("Deref(4): %v", err)
	}
	if v != "java/lang/Object" {
		t.Errorf("Deref(4): got %v", v)
	}

	// Fieldref resolves recursively to a full tuple
	v, err = pool.Deref(10)
	if err != nil {
		t.Fatalf("Deref(10): %v", err)
	}
	ref, ok := v.(Ref)
	if !ok {
		t.Fatalf("Deref(10): got %T", v)
	}
	want := Ref{Class: "Sample", NameAndType: NameAndType{Name: "count", Descriptor: "I"}}
	if ref != want {
		t.Errorf("Deref(10): got %+v", ref)
	}
}

func TestPoolPrettyDeref(t *testing.T) {
	pool := samplePool(t)

	cases := []struct {
		index uint16
		want  string
	}{
		{1, "Sample"},
		{4, "java.lang.Object"},
		{10, "Sample.count:int"},
		{11, "count:int"},
		{12, "42"},
		{0, ""},  // invalid
		{13, ""}, // reserved slot
	}
	for _, c := range cases {
		if got := pool.PrettyDeref(c.index); got != c.want {
			t.Errorf("PrettyDeref(%d): got %q, want %q", c.index, got, c.want)
		}
	}
}

func TestPoolLongInFinalSlot(t *testing.T) {
	// a Long in the last logical slot has nowhere to reserve its
	// second index; the pool is malformed
	b := &classBuilder{}
	b.u2(2) // count: one logical entry at index 1
	b.u1(TagLong)
	b.u4(0)
	b.u4(7)

	_, err := decodeConstantPool(NewBufferUnpacker(b.bytes()))
	if err == nil {
		t.Fatal("pool with unreservable Long slot accepted")
	}
}

func TestDecodeConstantUnknownTag(t *testing.T) {
	u := NewBufferUnpacker([]byte{99, 0, 0})
	_, err := decodeConstant(u)
	var ut *UnsupportedTagError
	if !errors.As(err, &ut) {
		t.Fatalf("expected UnsupportedTagError, got %v", err)
	}
	if ut.Tag != 99 {
		t.Errorf("error carries tag %d", ut.Tag)
	}
}

func TestDecodeModifiedUTF8(t *testing.T) {
	cases := []struct {
		raw  []byte
		want string
	}{
		{[]byte("plain ascii"), "plain ascii"},
		{[]byte{0xC0, 0x80}, "\x00"}, // NUL is two bytes
		{[]byte{0xC3, 0xA9}, "é"},
		{[]byte{0xE4, 0xB8, 0xAD}, "中"},
		// U+1F600 as an encoded surrogate pair
		{[]byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, "\U0001F600"},
	}
	for _, c := range cases {
		if got := decodeModifiedUTF8(c.raw); got != c.want {
			t.Errorf("decodeModifiedUTF8(% X): got %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestPoolMethodrefPretty(t *testing.T) {
	// a pool with a Methodref to exercise argument rendering
	b := &classBuilder{}
	b.u2(9) // count
	b.utf8("java/io/PrintStream")
	b.u1(TagClass)
	b.u2(1)
	b.utf8("println")
	b.utf8("(Ljava/lang/String;)V")
	b.u1(TagNameAndType)
	b.u2(3)
	b.u2(4)
	b.u1(TagMethodref)
	b.u2(2)
	b.u2(5)
	b.u1(TagString)
	b.u2(8)
	b.utf8("hello")

	pool, err := decodeConstantPool(NewBufferUnpacker(b.bytes()))
	if err != nil {
		t.Fatalf("decoding pool: %v", err)
	}

	got := pool.PrettyDeref(6)
	want := "java.io.PrintStream.println(java.lang.String):void"
	if got != want {
		t.Errorf("PrettyDeref(6): got %q, want %q", got, want)
	}

	if got := pool.PrettyDeref(7); got != `"hello"` {
		t.Errorf("PrettyDeref(7): got %q", got)
	}
}
