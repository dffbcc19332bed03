package classfile

import (
	"fmt"
	"sync"
)

// ExceptionInfo is one handler range of a Code attribute's exception
// table. CatchType 0 means the handler catches everything (finally).
type ExceptionInfo struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

// CodeInfo is the decoded Code attribute of one method.
type CodeInfo struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionInfo
	Attributes     AttributeTable

	pool *ConstantPool

	disOnce sync.Once
	dis     []Instruction
	disErr  error
}

func decodeCode(data []byte, pool *ConstantPool) (*CodeInfo, error) {
	u := NewBufferUnpacker(data)
	ci := &CodeInfo{pool: pool}
	var err error

	if ci.MaxStack, err = u.U2(); err != nil {
		return nil, fmt.Errorf("reading max_stack: %w", err)
	}
	if ci.MaxLocals, err = u.U2(); err != nil {
		return nil, fmt.Errorf("reading max_locals: %w", err)
	}

	codeLength, err := u.U4()
	if err != nil {
		return nil, fmt.Errorf("reading code length: %w", err)
	}
	if ci.Code, err = u.Read(int(codeLength)); err != nil {
		return nil, fmt.Errorf("reading code: %w", err)
	}

	ci.ExceptionTable, err = readTable(u, func(u *Unpacker) (ExceptionInfo, error) {
		var e ExceptionInfo
		var err error
		if e.StartPC, err = u.U2(); err != nil {
			return e, err
		}
		if e.EndPC, err = u.U2(); err != nil {
			return e, err
		}
		if e.HandlerPC, err = u.U2(); err != nil {
			return e, err
		}
		if e.CatchType, err = u.U2(); err != nil {
			return e, err
		}
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading exception table: %w", err)
	}

	if ci.Attributes, err = decodeAttributes(u, pool); err != nil {
		return nil, fmt.Errorf("reading code attributes: %w", err)
	}
	return ci, nil
}

// CatchTypeName resolves the handler's catch type, or returns "" for a
// catch-all handler.
func (ci *CodeInfo) CatchTypeName(e ExceptionInfo) (string, error) {
	if e.CatchType == 0 {
		return "", nil
	}
	return ci.pool.ClassName(e.CatchType)
}

// LineNumberTable returns the decoded LineNumberTable attribute, or nil
// when the method was compiled without line info.
func (ci *CodeInfo) LineNumberTable() ([]LineNumber, error) {
	data, ok := ci.Attributes["LineNumberTable"]
	if !ok {
		return nil, nil
	}
	return decodeLineNumberTable(data)
}

// LocalVariableTable returns the decoded LocalVariableTable attribute,
// or nil when absent.
func (ci *CodeInfo) LocalVariableTable() ([]LocalVariable, error) {
	data, ok := ci.Attributes["LocalVariableTable"]
	if !ok {
		return nil, nil
	}
	return decodeLocalVariableTable(data, ci.pool)
}

// LocalVariableTypeTable returns the decoded LocalVariableTypeTable
// attribute, or nil when absent.
func (ci *CodeInfo) LocalVariableTypeTable() ([]LocalVariable, error) {
	data, ok := ci.Attributes["LocalVariableTypeTable"]
	if !ok {
		return nil, nil
	}
	return decodeLocalVariableTable(data, ci.pool)
}

// FirstLine returns the lowest source line recorded for this method, or
// 0 when no line info is present.
func (ci *CodeInfo) FirstLine() (uint16, error) {
	lines, err := ci.LineNumberTable()
	if err != nil {
		return 0, err
	}
	var first uint16
	for _, ln := range lines {
		if first == 0 || ln.Line < first {
			first = ln.Line
		}
	}
	return first, nil
}

// Disassemble decodes the method's bytecode, memoized. The returned
// slice is shared; callers must not modify it.
func (ci *CodeInfo) Disassemble() ([]Instruction, error) {
	ci.disOnce.Do(func() {
		ci.dis, ci.disErr = Disassemble(ci.Code)
	})
	return ci.dis, ci.disErr
}
