package classfile

import "fmt"

// AttributeTable maps attribute names to their raw payload bytes.
// Attribute order is not meaningful in the classfile format, and a
// duplicated name keeps the last occurrence.
type AttributeTable map[string][]byte

// decodeAttributes reads the u2-count attribute loop shared by the
// class header, fields, methods, and Code bodies. Each payload is kept
// raw; typed views decode it on demand with a fresh buffer unpacker.
func decodeAttributes(u *Unpacker, pool *ConstantPool) (AttributeTable, error) {
	count, err := u.U2()
	if err != nil {
		return nil, fmt.Errorf("reading attribute count: %w", err)
	}
	attrs := make(AttributeTable, count)
	for i := uint16(0); i < count; i++ {
		nameIndex, err := u.U2()
		if err != nil {
			return nil, fmt.Errorf("reading attribute %d name: %w", i, err)
		}
		name, err := pool.Utf8(nameIndex)
		if err != nil {
			return nil, fmt.Errorf("resolving attribute %d name: %w", i, err)
		}
		length, err := u.U4()
		if err != nil {
			return nil, fmt.Errorf("reading attribute %q length: %w", name, err)
		}
		data, err := u.Read(int(length))
		if err != nil {
			return nil, fmt.Errorf("reading attribute %q payload: %w", name, err)
		}
		attrs[name] = data
	}
	return attrs, nil
}

// Has reports whether the named attribute is present.
func (a AttributeTable) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// utf8Attr decodes a single-u2 payload pointing at a Utf8 entry, the
// shape shared by SourceFile and Signature.
func (a AttributeTable) utf8Attr(name string, pool *ConstantPool) (string, error) {
	data, ok := a[name]
	if !ok {
		return "", nil
	}
	index, err := NewBufferUnpacker(data).U2()
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", name, err)
	}
	return pool.Utf8(index)
}

// u2Attr decodes a single-u2 payload as a raw pool index, the shape of
// ConstantValue.
func (a AttributeTable) u2Attr(name string) (uint16, bool, error) {
	data, ok := a[name]
	if !ok {
		return 0, false, nil
	}
	index, err := NewBufferUnpacker(data).U2()
	if err != nil {
		return 0, false, fmt.Errorf("decoding %s: %w", name, err)
	}
	return index, true, nil
}

// LineNumber maps a code offset to a source line.
type LineNumber struct {
	StartPC uint16
	Line    uint16
}

func decodeLineNumberTable(data []byte) ([]LineNumber, error) {
	u := NewBufferUnpacker(data)
	return readTable(u, func(u *Unpacker) (LineNumber, error) {
		start, err := u.U2()
		if err != nil {
			return LineNumber{}, err
		}
		line, err := u.U2()
		if err != nil {
			return LineNumber{}, err
		}
		return LineNumber{StartPC: start, Line: line}, nil
	})
}

// LocalVariable is one entry of a LocalVariableTable or
// LocalVariableTypeTable attribute. For the type table the Descriptor
// field holds the generic signature instead of a descriptor.
type LocalVariable struct {
	StartPC    uint16
	Length     uint16
	Name       string
	Descriptor string
	Index      uint16
}

func decodeLocalVariableTable(data []byte, pool *ConstantPool) ([]LocalVariable, error) {
	u := NewBufferUnpacker(data)
	return readTable(u, func(u *Unpacker) (LocalVariable, error) {
		var lv LocalVariable
		var err error
		if lv.StartPC, err = u.U2(); err != nil {
			return lv, err
		}
		if lv.Length, err = u.U2(); err != nil {
			return lv, err
		}
		nameIndex, err := u.U2()
		if err != nil {
			return lv, err
		}
		descIndex, err := u.U2()
		if err != nil {
			return lv, err
		}
		if lv.Index, err = u.U2(); err != nil {
			return lv, err
		}
		if lv.Name, err = pool.Utf8(nameIndex); err != nil {
			return lv, err
		}
		if lv.Descriptor, err = pool.Utf8(descIndex); err != nil {
			return lv, err
		}
		return lv, nil
	})
}

// InnerClassInfo is one record of the InnerClasses attribute. Names
// are resolved to internal form; an anonymous class has an empty
// InnerName and a local class an empty OuterClass.
type InnerClassInfo struct {
	InnerClass  string
	OuterClass  string
	InnerName   string
	AccessFlags AccessFlags
}

func decodeInnerClasses(data []byte, pool *ConstantPool) ([]InnerClassInfo, error) {
	u := NewBufferUnpacker(data)
	return readTable(u, func(u *Unpacker) (InnerClassInfo, error) {
		var ic InnerClassInfo
		innerIndex, err := u.U2()
		if err != nil {
			return ic, err
		}
		outerIndex, err := u.U2()
		if err != nil {
			return ic, err
		}
		nameIndex, err := u.U2()
		if err != nil {
			return ic, err
		}
		flags, err := u.U2()
		if err != nil {
			return ic, err
		}
		ic.AccessFlags = AccessFlags(flags)
		if ic.InnerClass, err = pool.ClassName(innerIndex); err != nil {
			return ic, err
		}
		if outerIndex != 0 {
			if ic.OuterClass, err = pool.ClassName(outerIndex); err != nil {
				return ic, err
			}
		}
		if nameIndex != 0 {
			if ic.InnerName, err = pool.Utf8(nameIndex); err != nil {
				return ic, err
			}
		}
		return ic, nil
	})
}

// EnclosingMethodInfo identifies the immediately enclosing method of a
// local or anonymous class. Method is empty when the class is not
// enclosed by a method or constructor.
type EnclosingMethodInfo struct {
	Class  string
	Method NameAndType
}

func decodeEnclosingMethod(data []byte, pool *ConstantPool) (*EnclosingMethodInfo, error) {
	u := NewBufferUnpacker(data)
	classIndex, err := u.U2()
	if err != nil {
		return nil, err
	}
	methodIndex, err := u.U2()
	if err != nil {
		return nil, err
	}
	em := &EnclosingMethodInfo{}
	if em.Class, err = pool.ClassName(classIndex); err != nil {
		return nil, err
	}
	if methodIndex != 0 {
		c, err := pool.Get(methodIndex)
		if err != nil {
			return nil, err
		}
		nat, ok := c.(*ConstantNameAndType)
		if !ok {
			return nil, fmt.Errorf("EnclosingMethod index %d is not NameAndType (tag=%d)", methodIndex, c.Tag())
		}
		if em.Method, err = pool.derefNameAndType(nat); err != nil {
			return nil, err
		}
	}
	return em, nil
}

// BootstrapMethod is one record of the BootstrapMethods attribute. The
// handle and argument indices stay raw so callers can Deref or
// PrettyDeref them as needed.
type BootstrapMethod struct {
	MethodRef uint16
	Arguments []uint16
}

func decodeBootstrapMethods(data []byte) ([]BootstrapMethod, error) {
	u := NewBufferUnpacker(data)
	return readTable(u, func(u *Unpacker) (BootstrapMethod, error) {
		var bm BootstrapMethod
		var err error
		if bm.MethodRef, err = u.U2(); err != nil {
			return bm, err
		}
		if bm.Arguments, err = u.U2Table(); err != nil {
			return bm, err
		}
		return bm, nil
	})
}

func decodeExceptions(data []byte, pool *ConstantPool) ([]string, error) {
	indices, err := NewBufferUnpacker(data).U2Table()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(indices))
	for i, index := range indices {
		if names[i], err = pool.ClassName(index); err != nil {
			return nil, err
		}
	}
	return names, nil
}
