package classfile

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Unpacker pulls big-endian fields out of a byte source, tracking the
// number of bytes consumed. A read past the end of input fails with
// *InsufficientDataError; there are no partial reads.
//
// An Unpacker is exclusively owned by whichever decode call is in
// progress. Nested decodes (an attribute body, a method's code) open a
// fresh buffer unpacker scoped to their own byte range.
type Unpacker struct {
	r      io.Reader
	offset int
}

// NewUnpacker reads from a byte stream.
func NewUnpacker(r io.Reader) *Unpacker {
	return &Unpacker{r: r}
}

// NewBufferUnpacker reads from an in-memory buffer.
func NewBufferUnpacker(data []byte) *Unpacker {
	return &Unpacker{r: bytes.NewReader(data)}
}

// Offset returns the number of bytes consumed so far.
func (u *Unpacker) Offset() int { return u.offset }

// Read returns exactly n bytes. The declared length is checked against
// the remaining input before anything is allocated when the source is a
// buffer; for a stream the result grows only as bytes actually arrive,
// so a malformed length field cannot force a huge allocation.
func (u *Unpacker) Read(n int) ([]byte, error) {
	if br, ok := u.r.(*bytes.Reader); ok && n > br.Len() {
		return nil, &InsufficientDataError{Requested: n, Available: br.Len()}
	}
	var buf bytes.Buffer
	got, err := io.CopyN(&buf, u.r, int64(n))
	u.offset += int(got)
	if err != nil {
		return nil, &InsufficientDataError{Requested: n, Available: int(got)}
	}
	return buf.Bytes(), nil
}

// U1 reads an unsigned 8-bit field.
func (u *Unpacker) U1() (uint8, error) {
	buf, err := u.Read(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// U2 reads an unsigned big-endian 16-bit field.
func (u *Unpacker) U2() (uint16, error) {
	buf, err := u.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// U4 reads an unsigned big-endian 32-bit field.
func (u *Unpacker) U4() (uint32, error) {
	buf, err := u.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

// U8 reads an unsigned big-endian 64-bit field.
func (u *Unpacker) U8() (uint64, error) {
	buf, err := u.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf), nil
}

// U2Table reads a 16-bit count followed by that many 16-bit values, the
// single most common classfile pattern.
func (u *Unpacker) U2Table() ([]uint16, error) {
	count, err := u.U2()
	if err != nil {
		return nil, err
	}
	vals := make([]uint16, count)
	for i := range vals {
		if vals[i], err = u.U2(); err != nil {
			return nil, err
		}
	}
	return vals, nil
}

// readTable reads a 16-bit count followed by that many records.
func readTable[T any](u *Unpacker, decode func(*Unpacker) (T, error)) ([]T, error) {
	count, err := u.U2()
	if err != nil {
		return nil, err
	}
	out := make([]T, count)
	for i := range out {
		if out[i], err = decode(u); err != nil {
			return nil, err
		}
	}
	return out, nil
}
