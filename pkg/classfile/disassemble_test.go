package classfile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisassembleSimple(t *testing.T) {
	code := []byte{
		0x2a,             // aload_0
		0x10, 0xfb,       // bipush -5
		0xb6, 0x00, 0x07, // invokevirtual #7
		0xb1, // return
	}

	insts, err := Disassemble(code)
	require.NoError(t, err)
	require.Len(t, insts, 4)

	require.Equal(t, OpAload0, insts[0].Op)
	require.Equal(t, 0, insts[0].Offset)
	require.Empty(t, insts[0].Args)

	require.Equal(t, OpBipush, insts[1].Op)
	require.Equal(t, []int32{-5}, insts[1].Args)

	require.Equal(t, OpInvokevirtual, insts[2].Op)
	require.Equal(t, 3, insts[2].Offset)
	require.Equal(t, []int32{7}, insts[2].Args)
	require.True(t, insts[2].Op.IsPoolRef())

	require.Equal(t, OpReturn, insts[3].Op)
	require.Equal(t, 6, insts[3].Offset)
}

func TestDisassembleEmpty(t *testing.T) {
	insts, err := Disassemble(nil)
	require.NoError(t, err)
	require.Empty(t, insts)
}

func TestDisassembleUndefinedOpcode(t *testing.T) {
	_, err := Disassemble([]byte{0xcb})
	var ut *UnsupportedTagError
	require.True(t, errors.As(err, &ut))
	require.Equal(t, uint8(0xcb), ut.Tag)
}

func TestDisassembleTruncatedOperand(t *testing.T) {
	_, err := Disassemble([]byte{0xb4, 0x00}) // getfield needs 2 operand bytes
	var ua *UnalignedInstructionError
	require.True(t, errors.As(err, &ua))
	require.Equal(t, 0, ua.Offset)
	require.Equal(t, 3, ua.Width)
	require.Equal(t, 2, ua.CodeLength)
}

func TestDisassembleTableswitch(t *testing.T) {
	// a nop pushes the switch to offset 1, forcing 2 padding bytes
	code := []byte{
		0x00, // nop
		0xaa, // tableswitch
		0x00, 0x00, // padding to offset 4
		0x00, 0x00, 0x00, 0x14, // default +20
		0x00, 0x00, 0x00, 0x00, // low 0
		0x00, 0x00, 0x00, 0x01, // high 1
		0x00, 0x00, 0x00, 0x0a, // case 0: +10
		0x00, 0x00, 0x00, 0x0c, // case 1: +12
	}

	insts, err := Disassemble(code)
	require.NoError(t, err)
	require.Len(t, insts, 2)

	sw := insts[1]
	require.Equal(t, OpTableswitch, sw.Op)
	require.Equal(t, 1, sw.Offset)
	require.Equal(t, []int32{20, 0, 1, 10, 12}, sw.Args)
}

func TestDisassembleLookupswitch(t *testing.T) {
	// at offset 0 the switch needs 3 padding bytes
	code := []byte{
		0xab, // lookupswitch
		0x00, 0x00, 0x00, // padding to offset 4
		0x00, 0x00, 0x00, 0x10, // default +16
		0x00, 0x00, 0x00, 0x01, // 1 pair
		0x00, 0x00, 0x00, 0x63, // match 99
		0x00, 0x00, 0x00, 0x08, // offset +8
	}

	insts, err := Disassemble(code)
	require.NoError(t, err)
	require.Len(t, insts, 1)
	require.Equal(t, OpLookupswitch, insts[0].Op)
	require.Equal(t, []int32{16, 1, 99, 8}, insts[0].Args)
}

func TestDisassembleLookupswitchHugeCount(t *testing.T) {
	// a declared pair count far beyond the code array must fail
	// cleanly instead of allocating a table for it
	code := []byte{
		0xab,             // lookupswitch
		0x00, 0x00, 0x00, // padding to offset 4
		0x00, 0x00, 0x00, 0x10, // default
		0x7f, 0xff, 0xff, 0xff, // npairs MaxInt32
	}

	_, err := Disassemble(code)
	var ua *UnalignedInstructionError
	require.True(t, errors.As(err, &ua))
	require.Equal(t, 0, ua.Offset)
	require.Equal(t, len(code), ua.CodeLength)
}

func TestDisassembleTableswitchHugeRange(t *testing.T) {
	code := []byte{
		0xaa,             // tableswitch
		0x00, 0x00, 0x00, // padding to offset 4
		0x00, 0x00, 0x00, 0x14, // default
		0x00, 0x00, 0x00, 0x00, // low 0
		0x7f, 0xff, 0xff, 0xfe, // high MaxInt32-1
	}

	_, err := Disassemble(code)
	var ua *UnalignedInstructionError
	require.True(t, errors.As(err, &ua))
}

func TestDisassembleSwitchTruncated(t *testing.T) {
	_, err := Disassemble([]byte{0xaa, 0x00, 0x00, 0x00, 0x00, 0x00})
	var ua *UnalignedInstructionError
	require.True(t, errors.As(err, &ua))
}

func TestDisassembleWide(t *testing.T) {
	code := []byte{
		0xc4, 0x15, 0x01, 0x02, // wide iload 258
		0xc4, 0x84, 0x01, 0x00, 0x00, 0x05, // wide iinc 256 by 5
		0xb1, // return
	}

	insts, err := Disassemble(code)
	require.NoError(t, err)
	require.Len(t, insts, 3)

	require.Equal(t, OpIload, insts[0].Op)
	require.Equal(t, []int32{258}, insts[0].Args)

	require.Equal(t, OpIinc, insts[1].Op)
	require.Equal(t, 4, insts[1].Offset)
	require.Equal(t, []int32{256, 5}, insts[1].Args)

	require.Equal(t, 10, insts[2].Offset)
}

func TestDisassembleWideBadInner(t *testing.T) {
	_, err := Disassemble([]byte{0xc4, 0xb1}) // wide return is not legal
	var ut *UnsupportedTagError
	require.True(t, errors.As(err, &ut))
	require.Equal(t, uint8(0xb1), ut.Tag)
}

func TestDisassembleWidthAccounting(t *testing.T) {
	code := []byte{
		0x10, 0x05, // bipush 5
		0x11, 0x01, 0x00, // sipush 256
		0xa7, 0x00, 0x03, // goto +3
		0xc8, 0x00, 0x00, 0x00, 0x05, // goto_w +5
		0xb1, // return
	}

	insts, err := Disassemble(code)
	require.NoError(t, err)

	// consecutive offsets tile the array exactly
	pos := 0
	for i, inst := range insts {
		require.Equal(t, pos, inst.Offset, "instruction %d", i)
		if i+1 < len(insts) {
			pos = insts[i+1].Offset
		}
	}
	require.Equal(t, OpReturn, insts[len(insts)-1].Op)
	require.Equal(t, len(code)-1, insts[len(insts)-1].Offset)
}

func TestMnemonics(t *testing.T) {
	require.Equal(t, "nop", OpNop.Mnemonic())
	require.Equal(t, "invokedynamic", OpInvokedynamic.Mnemonic())
	require.Equal(t, "jsr_w", OpJsrW.Mnemonic())
	require.Equal(t, "", Opcode(0xcb).Mnemonic())
	require.False(t, Opcode(0xcb).IsDefined())
	require.True(t, OpReturn.IsDefined())
}
