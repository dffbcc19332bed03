package classfile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Constant pool tags
const (
	TagUtf8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldref           = 9
	TagMethodref          = 10
	TagInterfaceMethodref = 11
	TagNameAndType        = 12
	TagMethodHandle       = 15
	TagMethodType         = 16
	TagDynamic            = 17
	TagInvokeDynamic      = 18
	TagModule             = 19
	TagPackage            = 20
)

// Constant is implemented by all constant pool entry types.
type Constant interface {
	Tag() uint8
}

type ConstantUtf8 struct {
	Value string
}

func (c *ConstantUtf8) Tag() uint8 { return TagUtf8 }

type ConstantInteger struct {
	Value int32
}

func (c *ConstantInteger) Tag() uint8 { return TagInteger }

type ConstantFloat struct {
	Value float32
}

func (c *ConstantFloat) Tag() uint8 { return TagFloat }

type ConstantLong struct {
	Value int64
}

func (c *ConstantLong) Tag() uint8 { return TagLong }

type ConstantDouble struct {
	Value float64
}

func (c *ConstantDouble) Tag() uint8 { return TagDouble }

type ConstantClass struct {
	NameIndex uint16
}

func (c *ConstantClass) Tag() uint8 { return TagClass }

type ConstantString struct {
	StringIndex uint16
}

func (c *ConstantString) Tag() uint8 { return TagString }

type ConstantFieldref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldref) Tag() uint8 { return TagFieldref }

type ConstantMethodref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodref) Tag() uint8 { return TagMethodref }

type ConstantInterfaceMethodref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantInterfaceMethodref) Tag() uint8 { return TagInterfaceMethodref }

type ConstantNameAndType struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndType) Tag() uint8 { return TagNameAndType }

type ConstantMethodHandle struct {
	ReferenceKind  uint8
	ReferenceIndex uint16
}

func (c *ConstantMethodHandle) Tag() uint8 { return TagMethodHandle }

type ConstantMethodType struct {
	DescriptorIndex uint16
}

func (c *ConstantMethodType) Tag() uint8 { return TagMethodType }

type ConstantDynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantDynamic) Tag() uint8 { return TagDynamic }

type ConstantInvokeDynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantInvokeDynamic) Tag() uint8 { return TagInvokeDynamic }

type ConstantModule struct {
	NameIndex uint16
}

func (c *ConstantModule) Tag() uint8 { return TagModule }

type ConstantPackage struct {
	NameIndex uint16
}

func (c *ConstantPackage) Tag() uint8 { return TagPackage }

// constantPlaceholder marks the reserved slot following a Long or Double
// entry. It occupies an index without having consumed any input bytes,
// and dereferencing it is an error.
type constantPlaceholder struct{}

func (constantPlaceholder) Tag() uint8 { return 0 }

// ConstantPool is the classfile's shared table of literals and symbolic
// references. It is 1-indexed: index 0 is always unused.
type ConstantPool struct {
	entries []Constant
}

// decodeConstantPool reads a 16-bit count then count-1 logical entries
// starting at index 1. A Long or Double entry reserves the following
// index as well; the reserved slot is stored as an explicit placeholder
// so every later index stays accurate.
func decodeConstantPool(u *Unpacker) (*ConstantPool, error) {
	count, err := u.U2()
	if err != nil {
		return nil, fmt.Errorf("reading constant pool count: %w", err)
	}

	pool := &ConstantPool{entries: make([]Constant, count)}
	for i := uint16(1); i < count; i++ {
		c, err := decodeConstant(u)
		if err != nil {
			return nil, fmt.Errorf("constant pool entry %d: %w", i, err)
		}
		pool.entries[i] = c

		switch c.(type) {
		case *ConstantLong, *ConstantDouble:
			// long and double take 2 slots; the reserved slot must
			// itself fit under the declared count
			i++
			if i >= count {
				return nil, fmt.Errorf("constant pool entry %d reserves slot %d beyond declared count %d", i-1, i, count)
			}
			pool.entries[i] = constantPlaceholder{}
		}
	}
	return pool, nil
}

func decodeConstant(u *Unpacker) (Constant, error) {
	tag, err := u.U1()
	if err != nil {
		return nil, err
	}

	switch tag {
	case TagUtf8:
		length, err := u.U2()
		if err != nil {
			return nil, err
		}
		raw, err := u.Read(int(length))
		if err != nil {
			return nil, err
		}
		return &ConstantUtf8{Value: decodeModifiedUTF8(raw)}, nil

	case TagInteger:
		bits, err := u.U4()
		if err != nil {
			return nil, err
		}
		return &ConstantInteger{Value: int32(bits)}, nil

	case TagFloat:
		bits, err := u.U4()
		if err != nil {
			return nil, err
		}
		return &ConstantFloat{Value: math.Float32frombits(bits)}, nil

	case TagLong:
		bits, err := u.U8()
		if err != nil {
			return nil, err
		}
		return &ConstantLong{Value: int64(bits)}, nil

	case TagDouble:
		bits, err := u.U8()
		if err != nil {
			return nil, err
		}
		return &ConstantDouble{Value: math.Float64frombits(bits)}, nil

	case TagClass:
		nameIndex, err := u.U2()
		if err != nil {
			return nil, err
		}
		return &ConstantClass{NameIndex: nameIndex}, nil

	case TagString:
		stringIndex, err := u.U2()
		if err != nil {
			return nil, err
		}
		return &ConstantString{StringIndex: stringIndex}, nil

	case TagFieldref:
		classIndex, natIndex, err := u.u2Pair()
		if err != nil {
			return nil, err
		}
		return &ConstantFieldref{ClassIndex: classIndex, NameAndTypeIndex: natIndex}, nil

	case TagMethodref:
		classIndex, natIndex, err := u.u2Pair()
		if err != nil {
			return nil, err
		}
		return &ConstantMethodref{ClassIndex: classIndex, NameAndTypeIndex: natIndex}, nil

	case TagInterfaceMethodref:
		classIndex, natIndex, err := u.u2Pair()
		if err != nil {
			return nil, err
		}
		return &ConstantInterfaceMethodref{ClassIndex: classIndex, NameAndTypeIndex: natIndex}, nil

	case TagNameAndType:
		nameIndex, descIndex, err := u.u2Pair()
		if err != nil {
			return nil, err
		}
		return &ConstantNameAndType{NameIndex: nameIndex, DescriptorIndex: descIndex}, nil

	case TagMethodHandle:
		kind, err := u.U1()
		if err != nil {
			return nil, err
		}
		refIndex, err := u.U2()
		if err != nil {
			return nil, err
		}
		return &ConstantMethodHandle{ReferenceKind: kind, ReferenceIndex: refIndex}, nil

	case TagMethodType:
		descIndex, err := u.U2()
		if err != nil {
			return nil, err
		}
		return &ConstantMethodType{DescriptorIndex: descIndex}, nil

	case TagDynamic:
		bootstrap, natIndex, err := u.u2Pair()
		if err != nil {
			return nil, err
		}
		return &ConstantDynamic{BootstrapMethodAttrIndex: bootstrap, NameAndTypeIndex: natIndex}, nil

	case TagInvokeDynamic:
		bootstrap, natIndex, err := u.u2Pair()
		if err != nil {
			return nil, err
		}
		return &ConstantInvokeDynamic{BootstrapMethodAttrIndex: bootstrap, NameAndTypeIndex: natIndex}, nil

	case TagModule:
		nameIndex, err := u.U2()
		if err != nil {
			return nil, err
		}
		return &ConstantModule{NameIndex: nameIndex}, nil

	case TagPackage:
		nameIndex, err := u.U2()
		if err != nil {
			return nil, err
		}
		return &ConstantPackage{NameIndex: nameIndex}, nil

	default:
		return nil, &UnsupportedTagError{Kind: "constant pool", Tag: tag}
	}
}

func (u *Unpacker) u2Pair() (uint16, uint16, error) {
	a, err := u.U2()
	if err != nil {
		return 0, 0, err
	}
	b, err := u.U2()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// Count returns the declared constant_pool_count: the number of logical
// entries plus one, reserved double-width slots included.
func (p *ConstantPool) Count() int { return len(p.entries) }

// Get returns the raw entry at index, bounds-checked. The reserved slot
// after a Long/Double entry is returned as a placeholder whose Tag is 0.
func (p *ConstantPool) Get(index uint16) (Constant, error) {
	if index == 0 || int(index) >= len(p.entries) {
		return nil, &InvalidReferenceError{Index: index}
	}
	return p.entries[index], nil
}

// IsReserved reports whether index is the placeholder slot following a
// Long or Double entry.
func (p *ConstantPool) IsReserved(index uint16) bool {
	if index == 0 || int(index) >= len(p.entries) {
		return false
	}
	_, ok := p.entries[index].(constantPlaceholder)
	return ok
}

// Utf8 returns the Utf8 string at index.
func (p *ConstantPool) Utf8(index uint16) (string, error) {
	c, err := p.Get(index)
	if err != nil {
		return "", err
	}
	utf8, ok := c.(*ConstantUtf8)
	if !ok {
		return "", fmt.Errorf("constant pool index %d is not Utf8 (tag=%d)", index, c.Tag())
	}
	return utf8.Value, nil
}

// ClassName returns the class name referenced by a Class entry.
func (p *ConstantPool) ClassName(index uint16) (string, error) {
	c, err := p.Get(index)
	if err != nil {
		return "", err
	}
	class, ok := c.(*ConstantClass)
	if !ok {
		return "", fmt.Errorf("constant pool index %d is not Class (tag=%d)", index, c.Tag())
	}
	return p.Utf8(class.NameIndex)
}

// NameAndType is the resolved form of a NameAndType entry.
type NameAndType struct {
	Name       string
	Descriptor string
}

// Ref is the resolved form of a Fieldref, Methodref, or
// InterfaceMethodref entry.
type Ref struct {
	Class       string
	NameAndType NameAndType
}

// MethodHandleRef is the resolved form of a MethodHandle entry; Ref
// holds the resolved referent, typically a Ref value.
type MethodHandleRef struct {
	Kind uint8
	Ref  any
}

// DynamicRef is the resolved form of a Dynamic or InvokeDynamic entry.
// The bootstrap index points into the BootstrapMethods attribute, which
// lives outside the pool and is not chased here.
type DynamicRef struct {
	BootstrapIndex uint16
	NameAndType    NameAndType
}

// Deref fully resolves the entry at index: scalars pass through,
// single-index entries follow one hop to their referent, and ref-type
// entries recursively resolve every component index. Index 0 and the
// reserved slot after a Long/Double both fail with
// *InvalidReferenceError.
func (p *ConstantPool) Deref(index uint16) (any, error) {
	c, err := p.Get(index)
	if err != nil {
		return nil, err
	}

	switch c := c.(type) {
	case *ConstantUtf8:
		return c.Value, nil
	case *ConstantInteger:
		return c.Value, nil
	case *ConstantFloat:
		return c.Value, nil
	case *ConstantLong:
		return c.Value, nil
	case *ConstantDouble:
		return c.Value, nil

	case *ConstantClass:
		return p.Utf8(c.NameIndex)
	case *ConstantString:
		return p.Utf8(c.StringIndex)
	case *ConstantMethodType:
		return p.Utf8(c.DescriptorIndex)
	case *ConstantModule:
		return p.Utf8(c.NameIndex)
	case *ConstantPackage:
		return p.Utf8(c.NameIndex)

	case *ConstantNameAndType:
		return p.derefNameAndType(c)

	case *ConstantFieldref:
		return p.derefRef(c.ClassIndex, c.NameAndTypeIndex)
	case *ConstantMethodref:
		return p.derefRef(c.ClassIndex, c.NameAndTypeIndex)
	case *ConstantInterfaceMethodref:
		return p.derefRef(c.ClassIndex, c.NameAndTypeIndex)

	case *ConstantMethodHandle:
		ref, err := p.Deref(c.ReferenceIndex)
		if err != nil {
			return nil, err
		}
		return MethodHandleRef{Kind: c.ReferenceKind, Ref: ref}, nil

	case *ConstantDynamic:
		return p.derefDynamic(c.BootstrapMethodAttrIndex, c.NameAndTypeIndex)
	case *ConstantInvokeDynamic:
		return p.derefDynamic(c.BootstrapMethodAttrIndex, c.NameAndTypeIndex)

	default:
		return nil, &InvalidReferenceError{Index: index}
	}
}

func (p *ConstantPool) derefNameAndType(c *ConstantNameAndType) (NameAndType, error) {
	name, err := p.Utf8(c.NameIndex)
	if err != nil {
		return NameAndType{}, err
	}
	desc, err := p.Utf8(c.DescriptorIndex)
	if err != nil {
		return NameAndType{}, err
	}
	return NameAndType{Name: name, Descriptor: desc}, nil
}

func (p *ConstantPool) derefRef(classIndex, natIndex uint16) (Ref, error) {
	className, err := p.ClassName(classIndex)
	if err != nil {
		return Ref{}, err
	}
	c, err := p.Get(natIndex)
	if err != nil {
		return Ref{}, err
	}
	nat, ok := c.(*ConstantNameAndType)
	if !ok {
		return Ref{}, fmt.Errorf("constant pool index %d is not NameAndType (tag=%d)", natIndex, c.Tag())
	}
	resolved, err := p.derefNameAndType(nat)
	if err != nil {
		return Ref{}, err
	}
	return Ref{Class: className, NameAndType: resolved}, nil
}

func (p *ConstantPool) derefDynamic(bootstrap, natIndex uint16) (DynamicRef, error) {
	c, err := p.Get(natIndex)
	if err != nil {
		return DynamicRef{}, err
	}
	nat, ok := c.(*ConstantNameAndType)
	if !ok {
		return DynamicRef{}, fmt.Errorf("constant pool index %d is not NameAndType (tag=%d)", natIndex, c.Tag())
	}
	resolved, err := p.derefNameAndType(nat)
	if err != nil {
		return DynamicRef{}, err
	}
	return DynamicRef{BootstrapIndex: bootstrap, NameAndType: resolved}, nil
}

var methodHandleKinds = map[uint8]string{
	1: "getField",
	2: "getStatic",
	3: "putField",
	4: "putStatic",
	5: "invokeVirtual",
	6: "invokeStatic",
	7: "invokeSpecial",
	8: "newInvokeSpecial",
	9: "invokeInterface",
}

// PrettyDeref renders the entry at index as a human-readable string:
// "Class.field:type" for field refs, "Class.method(args):ret" for method
// refs, and so on. This path feeds best-effort display, so unresolvable
// or unknown entries render as an empty string rather than erroring.
// Module, Package, and Dynamic entries render only partially.
func (p *ConstantPool) PrettyDeref(index uint16) string {
	c, err := p.Get(index)
	if err != nil {
		return ""
	}

	switch c := c.(type) {
	case *ConstantUtf8:
		return c.Value
	case *ConstantInteger:
		return strconv.FormatInt(int64(c.Value), 10)
	case *ConstantFloat:
		return strconv.FormatFloat(float64(c.Value), 'g', -1, 32)
	case *ConstantLong:
		return strconv.FormatInt(c.Value, 10)
	case *ConstantDouble:
		return strconv.FormatFloat(c.Value, 'g', -1, 64)

	case *ConstantClass:
		name, err := p.Utf8(c.NameIndex)
		if err != nil {
			return ""
		}
		return prettyClassName(name)
	case *ConstantString:
		s, err := p.Utf8(c.StringIndex)
		if err != nil {
			return ""
		}
		return strconv.Quote(s)
	case *ConstantMethodType:
		desc, err := p.Utf8(c.DescriptorIndex)
		if err != nil {
			return ""
		}
		return PrettyType(desc)

	case *ConstantNameAndType:
		return p.prettyNameAndType(c.NameIndex, c.DescriptorIndex)

	case *ConstantFieldref:
		return p.prettyRef(c.ClassIndex, c.NameAndTypeIndex)
	case *ConstantMethodref:
		return p.prettyRef(c.ClassIndex, c.NameAndTypeIndex)
	case *ConstantInterfaceMethodref:
		return p.prettyRef(c.ClassIndex, c.NameAndTypeIndex)

	case *ConstantMethodHandle:
		kind, ok := methodHandleKinds[c.ReferenceKind]
		if !ok {
			return ""
		}
		return kind + " " + p.PrettyDeref(c.ReferenceIndex)

	case *ConstantDynamic:
		return fmt.Sprintf("bootstrap[%d]:%s", c.BootstrapMethodAttrIndex, p.PrettyDeref(c.NameAndTypeIndex))
	case *ConstantInvokeDynamic:
		return fmt.Sprintf("bootstrap[%d]:%s", c.BootstrapMethodAttrIndex, p.PrettyDeref(c.NameAndTypeIndex))

	case *ConstantModule:
		name, _ := p.Utf8(c.NameIndex)
		return name
	case *ConstantPackage:
		name, _ := p.Utf8(c.NameIndex)
		return name

	default:
		return ""
	}
}

func (p *ConstantPool) prettyRef(classIndex, natIndex uint16) string {
	c, err := p.Get(natIndex)
	if err != nil {
		return ""
	}
	nat, ok := c.(*ConstantNameAndType)
	if !ok {
		return ""
	}
	return p.PrettyDeref(classIndex) + "." + p.prettyNameAndType(nat.NameIndex, nat.DescriptorIndex)
}

func (p *ConstantPool) prettyNameAndType(nameIndex, descIndex uint16) string {
	name, err := p.Utf8(nameIndex)
	if err != nil {
		return ""
	}
	desc, err := p.Utf8(descIndex)
	if err != nil {
		return ""
	}
	if strings.HasPrefix(desc, "(") {
		args, err := MethodArgs(desc)
		if err != nil {
			return name + ":" + desc
		}
		pretty := make([]string, len(args))
		for i, a := range args {
			pretty[i] = PrettyType(a)
		}
		ret, err := ReturnType(desc)
		if err != nil {
			return name + ":" + desc
		}
		return fmt.Sprintf("%s(%s):%s", name, strings.Join(pretty, ","), PrettyType(ret))
	}
	return name + ":" + PrettyType(desc)
}

// prettyClassName renders an internal class name in source form. Array
// classes appear in the pool with descriptor syntax and are handed to
// the descriptor renderer instead.
func prettyClassName(name string) string {
	if strings.HasPrefix(name, "[") {
		return PrettyType(name)
	}
	return strings.ReplaceAll(name, "/", ".")
}

// decodeModifiedUTF8 converts JVM modified UTF-8 to a Go string. The
// encoding differs from standard UTF-8 in two ways: NUL is stored as the
// two-byte pair C0 80, and supplementary characters are stored as
// encoded surrogate pairs.
func decodeModifiedUTF8(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	i := 0
	for i < len(raw) {
		b := raw[i]
		switch {
		case b&0x80 == 0:
			runes = append(runes, rune(b))
			i++
		case b&0xE0 == 0xC0:
			if i+1 >= len(raw) {
				runes = append(runes, rune(b))
				i = len(raw)
				break
			}
			runes = append(runes, rune(b&0x1F)<<6|rune(raw[i+1]&0x3F))
			i += 2
		case b&0xF0 == 0xE0:
			if i+2 >= len(raw) {
				runes = append(runes, rune(b))
				i = len(raw)
				break
			}
			r := rune(b&0x0F)<<12 | rune(raw[i+1]&0x3F)<<6 | rune(raw[i+2]&0x3F)
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(raw) && raw[i+3]&0xF0 == 0xE0 {
				low := rune(raw[i+3]&0x0F)<<12 | rune(raw[i+4]&0x3F)<<6 | rune(raw[i+5]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+((r-0xD800)<<10)+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		default:
			runes = append(runes, rune(b))
			i++
		}
	}
	return string(runes)
}
