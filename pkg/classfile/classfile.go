package classfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

const classMagic = 0xCAFEBABE

// IsClassFile reports whether data begins with the classfile magic
// number. It inspects at most four bytes and never errors.
func IsClassFile(data []byte) bool {
	return len(data) >= 4 && binary.BigEndian.Uint32(data) == classMagic
}

// ClassInfo is the decoded structural model of one classfile. Decoding
// is all-or-nothing: a ClassInfo either represents the complete input
// or was never returned. The model is read-only after Parse; the lazy
// views (Code, Disassemble, Provides, Requires) are memoized and safe
// for concurrent use.
type ClassInfo struct {
	Magic        uint32
	MinorVersion uint16
	MajorVersion uint16
	Pool         *ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []*MemberInfo
	Methods      []*MemberInfo
	Attributes   AttributeTable

	depsOnce sync.Once
	provides []string
	requires []string
	depsErr  error
}

// Parse decodes one classfile from r.
func Parse(r io.Reader) (*ClassInfo, error) {
	return decode(NewUnpacker(r))
}

// ParseBytes decodes one classfile from an in-memory buffer.
func ParseBytes(data []byte) (*ClassInfo, error) {
	return decode(NewBufferUnpacker(data))
}

// ParseFile decodes the classfile at path.
func ParseFile(path string) (*ClassInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func decode(u *Unpacker) (*ClassInfo, error) {
	ci := &ClassInfo{}
	var err error

	if ci.Magic, err = u.U4(); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if ci.Magic != classMagic {
		return nil, &MagicMismatchError{Got: ci.Magic}
	}

	if ci.MinorVersion, err = u.U2(); err != nil {
		return nil, fmt.Errorf("reading minor version: %w", err)
	}
	if ci.MajorVersion, err = u.U2(); err != nil {
		return nil, fmt.Errorf("reading major version: %w", err)
	}

	if ci.Pool, err = decodeConstantPool(u); err != nil {
		return nil, fmt.Errorf("reading constant pool: %w", err)
	}

	flags, err := u.U2()
	if err != nil {
		return nil, fmt.Errorf("reading access flags: %w", err)
	}
	ci.AccessFlags = AccessFlags(flags)

	if ci.ThisClass, err = u.U2(); err != nil {
		return nil, fmt.Errorf("reading this_class: %w", err)
	}
	if ci.SuperClass, err = u.U2(); err != nil {
		return nil, fmt.Errorf("reading super_class: %w", err)
	}
	if ci.Interfaces, err = u.U2Table(); err != nil {
		return nil, fmt.Errorf("reading interfaces: %w", err)
	}

	ci.Fields, err = readTable(u, func(u *Unpacker) (*MemberInfo, error) {
		return decodeMember(u, ci.Pool, false)
	})
	if err != nil {
		return nil, fmt.Errorf("reading fields: %w", err)
	}

	ci.Methods, err = readTable(u, func(u *Unpacker) (*MemberInfo, error) {
		return decodeMember(u, ci.Pool, true)
	})
	if err != nil {
		return nil, fmt.Errorf("reading methods: %w", err)
	}

	if ci.Attributes, err = decodeAttributes(u, ci.Pool); err != nil {
		return nil, fmt.Errorf("reading class attributes: %w", err)
	}

	return ci, nil
}

// Version returns the classfile version as (major, minor). Note the
// order: on the wire minor precedes major.
func (ci *ClassInfo) Version() (uint16, uint16) {
	return ci.MajorVersion, ci.MinorVersion
}

// ClassName returns this class's name in internal form.
func (ci *ClassInfo) ClassName() (string, error) {
	return ci.Pool.ClassName(ci.ThisClass)
}

// SuperClassName returns the superclass name in internal form, or ""
// when super_class is 0 (java/lang/Object and module-info only).
func (ci *ClassInfo) SuperClassName() (string, error) {
	if ci.SuperClass == 0 {
		return "", nil
	}
	return ci.Pool.ClassName(ci.SuperClass)
}

// InterfaceNames returns the names of the directly implemented
// interfaces, in declaration order.
func (ci *ClassInfo) InterfaceNames() ([]string, error) {
	names := make([]string, len(ci.Interfaces))
	var err error
	for i, index := range ci.Interfaces {
		if names[i], err = ci.Pool.ClassName(index); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// PrettyName returns this class's name in source form.
func (ci *ClassInfo) PrettyName() (string, error) {
	name, err := ci.ClassName()
	if err != nil {
		return "", err
	}
	return prettyClassName(name), nil
}

// SourceFile returns the SourceFile attribute, or "" when absent.
func (ci *ClassInfo) SourceFile() (string, error) {
	return ci.Attributes.utf8Attr("SourceFile", ci.Pool)
}

// Signature returns the generic Signature attribute, or "" when absent.
func (ci *ClassInfo) Signature() (string, error) {
	return ci.Attributes.utf8Attr("Signature", ci.Pool)
}

// IsDeprecated reports the presence of the Deprecated attribute.
func (ci *ClassInfo) IsDeprecated() bool {
	return ci.Attributes.Has("Deprecated")
}

// InnerClasses returns the decoded InnerClasses attribute, or nil when
// absent.
func (ci *ClassInfo) InnerClasses() ([]InnerClassInfo, error) {
	data, ok := ci.Attributes["InnerClasses"]
	if !ok {
		return nil, nil
	}
	return decodeInnerClasses(data, ci.Pool)
}

// EnclosingMethod returns the decoded EnclosingMethod attribute, or nil
// when absent.
func (ci *ClassInfo) EnclosingMethod() (*EnclosingMethodInfo, error) {
	data, ok := ci.Attributes["EnclosingMethod"]
	if !ok {
		return nil, nil
	}
	return decodeEnclosingMethod(data, ci.Pool)
}

// BootstrapMethods returns the decoded BootstrapMethods attribute, or
// nil when absent.
func (ci *ClassInfo) BootstrapMethods() ([]BootstrapMethod, error) {
	data, ok := ci.Attributes["BootstrapMethods"]
	if !ok {
		return nil, nil
	}
	return decodeBootstrapMethods(data)
}

// Annotations returns the class's runtime-visible annotations.
func (ci *ClassInfo) Annotations() ([]*Annotation, error) {
	data, ok := ci.Attributes["RuntimeVisibleAnnotations"]
	if !ok {
		return nil, nil
	}
	return decodeAnnotations(data)
}

// InvisibleAnnotations returns the class's runtime-invisible
// annotations.
func (ci *ClassInfo) InvisibleAnnotations() ([]*Annotation, error) {
	data, ok := ci.Attributes["RuntimeInvisibleAnnotations"]
	if !ok {
		return nil, nil
	}
	return decodeAnnotations(data)
}

// MemberInfo is one field or method of a class. Fields and methods
// share the same wire structure; isMethod selects the interpretation of
// the descriptor and a few flag bits.
type MemberInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      AttributeTable

	pool     *ConstantPool
	isMethod bool

	codeOnce sync.Once
	code     *CodeInfo
	codeErr  error
}

func decodeMember(u *Unpacker, pool *ConstantPool, isMethod bool) (*MemberInfo, error) {
	m := &MemberInfo{pool: pool, isMethod: isMethod}

	flags, err := u.U2()
	if err != nil {
		return nil, fmt.Errorf("reading member access flags: %w", err)
	}
	m.AccessFlags = AccessFlags(flags)

	if m.NameIndex, err = u.U2(); err != nil {
		return nil, fmt.Errorf("reading member name index: %w", err)
	}
	if m.DescriptorIndex, err = u.U2(); err != nil {
		return nil, fmt.Errorf("reading member descriptor index: %w", err)
	}
	if m.Attributes, err = decodeAttributes(u, pool); err != nil {
		return nil, fmt.Errorf("reading member attributes: %w", err)
	}
	return m, nil
}

// IsMethod reports whether this member came from the methods table.
func (m *MemberInfo) IsMethod() bool { return m.isMethod }

// Name returns the member's simple name.
func (m *MemberInfo) Name() (string, error) {
	return m.pool.Utf8(m.NameIndex)
}

// Descriptor returns the member's raw type descriptor.
func (m *MemberInfo) Descriptor() (string, error) {
	return m.pool.Utf8(m.DescriptorIndex)
}

// TypeDescriptor returns the field's type, or the method's return type.
func (m *MemberInfo) TypeDescriptor() (string, error) {
	desc, err := m.Descriptor()
	if err != nil {
		return "", err
	}
	parts, err := SplitDescriptors(desc)
	if err != nil {
		return "", err
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("empty descriptor for member")
	}
	return parts[len(parts)-1], nil
}

// ArgTypes returns a method's argument type descriptors. It errors on
// fields.
func (m *MemberInfo) ArgTypes() ([]string, error) {
	if !m.isMethod {
		return nil, fmt.Errorf("not a method")
	}
	desc, err := m.Descriptor()
	if err != nil {
		return nil, err
	}
	return MethodArgs(desc)
}

// PrettyType renders the field type or method return type in source
// form.
func (m *MemberInfo) PrettyType() (string, error) {
	desc, err := m.TypeDescriptor()
	if err != nil {
		return "", err
	}
	return PrettyType(desc), nil
}

// PrettyArguments renders a method's argument types in source form.
func (m *MemberInfo) PrettyArguments() ([]string, error) {
	args, err := m.ArgTypes()
	if err != nil {
		return nil, err
	}
	pretty := make([]string, len(args))
	for i, a := range args {
		pretty[i] = PrettyType(a)
	}
	return pretty, nil
}

// PrettyDescriptor renders the whole descriptor in source form.
func (m *MemberInfo) PrettyDescriptor() (string, error) {
	desc, err := m.Descriptor()
	if err != nil {
		return "", err
	}
	return PrettyType(desc), nil
}

// Identifier returns a string distinguishing this member within its
// class: the bare name for fields, "name(args)" with the raw argument
// descriptors for methods. Raw descriptors are used because pretty
// rendering is not injective: a class literally named "int" would
// collide with the primitive. A bridge method additionally appends
// ":descriptor", since bridges collide with the method they forward to
// on name and arguments alone.
func (m *MemberInfo) Identifier() (string, error) {
	name, err := m.Name()
	if err != nil {
		return "", err
	}
	if !m.isMethod {
		return name, nil
	}
	args, err := m.ArgTypes()
	if err != nil {
		return "", err
	}
	id := name + "(" + strings.Join(args, ",") + ")"
	if m.AccessFlags.IsBridge() {
		desc, err := m.Descriptor()
		if err != nil {
			return "", err
		}
		id += ":" + desc
	}
	return id, nil
}

// Signature returns the member's generic Signature attribute, or ""
// when absent.
func (m *MemberInfo) Signature() (string, error) {
	return m.Attributes.utf8Attr("Signature", m.pool)
}

// IsDeprecated reports the presence of the Deprecated attribute.
func (m *MemberInfo) IsDeprecated() bool {
	return m.Attributes.Has("Deprecated")
}

// ConstantValue returns the resolved ConstantValue of a static field.
// The bool reports presence; absent is not an error.
func (m *MemberInfo) ConstantValue() (any, bool, error) {
	index, ok, err := m.Attributes.u2Attr("ConstantValue")
	if err != nil || !ok {
		return nil, false, err
	}
	val, err := m.pool.Deref(index)
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Exceptions returns the declared throws clause of a method.
func (m *MemberInfo) Exceptions() ([]string, error) {
	data, ok := m.Attributes["Exceptions"]
	if !ok {
		return nil, nil
	}
	return decodeExceptions(data, m.pool)
}

// Annotations returns the member's runtime-visible annotations.
func (m *MemberInfo) Annotations() ([]*Annotation, error) {
	data, ok := m.Attributes["RuntimeVisibleAnnotations"]
	if !ok {
		return nil, nil
	}
	return decodeAnnotations(data)
}

// InvisibleAnnotations returns the member's runtime-invisible
// annotations.
func (m *MemberInfo) InvisibleAnnotations() ([]*Annotation, error) {
	data, ok := m.Attributes["RuntimeInvisibleAnnotations"]
	if !ok {
		return nil, nil
	}
	return decodeAnnotations(data)
}

// AnnotationDefault returns the default value of an annotation
// interface method, or nil when the attribute is absent.
func (m *MemberInfo) AnnotationDefault() (*ElementValue, error) {
	data, ok := m.Attributes["AnnotationDefault"]
	if !ok {
		return nil, nil
	}
	v, err := decodeElementValue(NewBufferUnpacker(data))
	if err != nil {
		return nil, fmt.Errorf("decoding AnnotationDefault: %w", err)
	}
	return &v, nil
}

// Code returns the decoded Code attribute, memoized, or nil for
// abstract and native methods and for fields.
func (m *MemberInfo) Code() (*CodeInfo, error) {
	m.codeOnce.Do(func() {
		data, ok := m.Attributes["Code"]
		if !ok {
			return
		}
		m.code, m.codeErr = decodeCode(data, m.pool)
	})
	return m.code, m.codeErr
}
