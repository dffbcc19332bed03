package classfile

import "fmt"

// MagicMismatchError reports a byte source that does not begin with the
// JVM classfile magic number.
type MagicMismatchError struct {
	Got uint32
}

func (e *MagicMismatchError) Error() string {
	return fmt.Sprintf("invalid magic number: 0x%08X (expected 0xCAFEBABE)", e.Got)
}

// InsufficientDataError reports a read that ran past the end of input.
type InsufficientDataError struct {
	Requested int
	Available int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: requested %d bytes, %d available", e.Requested, e.Available)
}

// UnsupportedTagError reports a tag value this decoder does not
// implement, as opposed to a structurally malformed file.
type UnsupportedTagError struct {
	Kind string
	Tag  uint8
}

func (e *UnsupportedTagError) Error() string {
	return fmt.Sprintf("unsupported %s tag %d", e.Kind, e.Tag)
}

// InvalidReferenceError reports dereferencing constant pool index 0, an
// out-of-range index, or the reserved slot after a Long or Double entry.
type InvalidReferenceError struct {
	Index uint16
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid constant pool reference %d", e.Index)
}

// UnalignedInstructionError reports an instruction whose declared width
// overruns the enclosing method's code array.
type UnalignedInstructionError struct {
	Offset     int
	Width      int
	CodeLength int
}

func (e *UnalignedInstructionError) Error() string {
	return fmt.Sprintf("instruction at offset %d needs %d bytes but code length is %d",
		e.Offset, e.Width, e.CodeLength)
}
