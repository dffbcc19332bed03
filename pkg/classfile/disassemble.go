package classfile

import "encoding/binary"

// Instruction is one decoded bytecode instruction. Offset is the
// instruction's position within the method's code array. Args holds the
// decoded operands widened to int32: unsigned operands zero-extend,
// signed operands sign-extend. For tableswitch the layout is [default,
// low, high, jump...]; for lookupswitch it is [default, npairs, match,
// offset, match, offset, ...]. A wide-prefixed instruction reports the
// inner opcode with its widened operands.
type Instruction struct {
	Offset int
	Op     Opcode
	Args   []int32
}

// wideEligible is the set of opcodes the wide prefix may modify.
var wideEligible = map[Opcode]bool{
	OpIload:  true,
	OpLload:  true,
	OpFload:  true,
	OpDload:  true,
	OpAload:  true,
	OpIstore: true,
	OpLstore: true,
	OpFstore: true,
	OpDstore: true,
	OpAstore: true,
	OpRet:    true,
	OpIinc:   true,
}

// Disassemble decodes a method's code array into instructions with
// strict width accounting: every operand is bounds-checked, switch
// padding is computed relative to the start of the code array, and the
// final instruction must end exactly at len(code). An undefined opcode
// fails with *UnsupportedTagError; an instruction overrunning the array
// fails with *UnalignedInstructionError.
func Disassemble(code []byte) ([]Instruction, error) {
	var out []Instruction
	pos := 0
	for pos < len(code) {
		op := Opcode(code[pos])
		var (
			inst Instruction
			next int
			err  error
		)
		switch op {
		case OpTableswitch:
			inst, next, err = decodeTableswitch(code, pos)
		case OpLookupswitch:
			inst, next, err = decodeLookupswitch(code, pos)
		case OpWide:
			inst, next, err = decodeWide(code, pos)
		default:
			inst, next, err = decodeFixed(code, pos, op)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
		pos = next
	}
	return out, nil
}

func decodeFixed(code []byte, pos int, op Opcode) (Instruction, int, error) {
	info := opTable[op]
	if info.name == "" {
		return Instruction{}, 0, &UnsupportedTagError{Kind: "opcode", Tag: uint8(op)}
	}

	width := 1
	for _, k := range info.args {
		width += k.width()
	}
	if pos+width > len(code) {
		return Instruction{}, 0, &UnalignedInstructionError{Offset: pos, Width: width, CodeLength: len(code)}
	}

	inst := Instruction{Offset: pos, Op: op}
	p := pos + 1
	for _, k := range info.args {
		switch k {
		case argU1:
			inst.Args = append(inst.Args, int32(code[p]))
		case argS1:
			inst.Args = append(inst.Args, int32(int8(code[p])))
		case argU2:
			inst.Args = append(inst.Args, int32(binary.BigEndian.Uint16(code[p:])))
		case argS2:
			inst.Args = append(inst.Args, int32(int16(binary.BigEndian.Uint16(code[p:]))))
		case argS4:
			inst.Args = append(inst.Args, int32(binary.BigEndian.Uint32(code[p:])))
		}
		p += k.width()
	}
	return inst, pos + width, nil
}

// switchPadding returns the number of alignment bytes following a
// switch opcode: the default operand starts at the next 4-byte boundary
// measured from the start of the code array.
func switchPadding(pos int) int {
	return (4 - (pos+1)%4) % 4
}

func decodeTableswitch(code []byte, pos int) (Instruction, int, error) {
	p := pos + 1 + switchPadding(pos)

	defaultOff, p, err := readS4(code, pos, p)
	if err != nil {
		return Instruction{}, 0, err
	}
	low, p, err := readS4(code, pos, p)
	if err != nil {
		return Instruction{}, 0, err
	}
	high, p, err := readS4(code, pos, p)
	if err != nil {
		return Instruction{}, 0, err
	}
	if high < low {
		return Instruction{}, 0, &UnalignedInstructionError{Offset: pos, Width: p - pos, CodeLength: len(code)}
	}

	// the declared jump table must fit in the remaining code bytes
	// before anything is allocated for it
	count := int(high) - int(low) + 1
	if count > (len(code)-p)/4 {
		return Instruction{}, 0, &UnalignedInstructionError{Offset: pos, Width: p - pos + count*4, CodeLength: len(code)}
	}
	args := make([]int32, 0, 3+count)
	args = append(args, defaultOff, low, high)
	for i := 0; i < count; i++ {
		var jump int32
		if jump, p, err = readS4(code, pos, p); err != nil {
			return Instruction{}, 0, err
		}
		args = append(args, jump)
	}
	return Instruction{Offset: pos, Op: OpTableswitch, Args: args}, p, nil
}

func decodeLookupswitch(code []byte, pos int) (Instruction, int, error) {
	p := pos + 1 + switchPadding(pos)

	defaultOff, p, err := readS4(code, pos, p)
	if err != nil {
		return Instruction{}, 0, err
	}
	npairs, p, err := readS4(code, pos, p)
	if err != nil {
		return Instruction{}, 0, err
	}
	if npairs < 0 {
		return Instruction{}, 0, &UnalignedInstructionError{Offset: pos, Width: p - pos, CodeLength: len(code)}
	}

	// the declared pair table must fit in the remaining code bytes
	// before anything is allocated for it
	if int(npairs) > (len(code)-p)/8 {
		return Instruction{}, 0, &UnalignedInstructionError{Offset: pos, Width: p - pos + int(npairs)*8, CodeLength: len(code)}
	}
	args := make([]int32, 0, 2+2*int(npairs))
	args = append(args, defaultOff, npairs)
	for i := int32(0); i < npairs; i++ {
		var match, jump int32
		if match, p, err = readS4(code, pos, p); err != nil {
			return Instruction{}, 0, err
		}
		if jump, p, err = readS4(code, pos, p); err != nil {
			return Instruction{}, 0, err
		}
		args = append(args, match, jump)
	}
	return Instruction{Offset: pos, Op: OpLookupswitch, Args: args}, p, nil
}

func decodeWide(code []byte, pos int) (Instruction, int, error) {
	if pos+2 > len(code) {
		return Instruction{}, 0, &UnalignedInstructionError{Offset: pos, Width: 2, CodeLength: len(code)}
	}
	inner := Opcode(code[pos+1])
	if !wideEligible[inner] {
		return Instruction{}, 0, &UnsupportedTagError{Kind: "wide opcode", Tag: uint8(inner)}
	}

	// wide iinc carries a 16-bit index and a 16-bit signed constant;
	// every other wide form carries just the 16-bit index.
	width := 4
	if inner == OpIinc {
		width = 6
	}
	if pos+width > len(code) {
		return Instruction{}, 0, &UnalignedInstructionError{Offset: pos, Width: width, CodeLength: len(code)}
	}

	inst := Instruction{Offset: pos, Op: inner}
	inst.Args = append(inst.Args, int32(binary.BigEndian.Uint16(code[pos+2:])))
	if inner == OpIinc {
		inst.Args = append(inst.Args, int32(int16(binary.BigEndian.Uint16(code[pos+4:]))))
	}
	return inst, pos + width, nil
}

func readS4(code []byte, instStart, p int) (int32, int, error) {
	if p+4 > len(code) {
		return 0, 0, &UnalignedInstructionError{Offset: instStart, Width: p + 4 - instStart, CodeLength: len(code)}
	}
	return int32(binary.BigEndian.Uint32(code[p:])), p + 4, nil
}
