package classfile

import "strings"

// AccessFlags is the access_flags bitmask carried by classes, fields,
// and methods. Some bits are context-dependent: 0x0020 is ACC_SUPER on
// a class but ACC_SYNCHRONIZED on a method, and 0x0040/0x0080 likewise
// differ between fields and methods.
type AccessFlags uint16

const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSuper        AccessFlags = 0x0020
	AccSynchronized AccessFlags = 0x0020
	AccVolatile     AccessFlags = 0x0040
	AccBridge       AccessFlags = 0x0040
	AccTransient    AccessFlags = 0x0080
	AccVarargs      AccessFlags = 0x0080
	AccNative       AccessFlags = 0x0100
	AccInterface    AccessFlags = 0x0200
	AccAbstract     AccessFlags = 0x0400
	AccStrict       AccessFlags = 0x0800
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000
	AccModule       AccessFlags = 0x8000
)

func (f AccessFlags) Has(flag AccessFlags) bool { return f&flag != 0 }

func (f AccessFlags) IsPublic() bool       { return f.Has(AccPublic) }
func (f AccessFlags) IsPrivate() bool      { return f.Has(AccPrivate) }
func (f AccessFlags) IsProtected() bool    { return f.Has(AccProtected) }
func (f AccessFlags) IsStatic() bool       { return f.Has(AccStatic) }
func (f AccessFlags) IsFinal() bool        { return f.Has(AccFinal) }
func (f AccessFlags) IsSynchronized() bool { return f.Has(AccSynchronized) }
func (f AccessFlags) IsVolatile() bool     { return f.Has(AccVolatile) }
func (f AccessFlags) IsBridge() bool       { return f.Has(AccBridge) }
func (f AccessFlags) IsTransient() bool    { return f.Has(AccTransient) }
func (f AccessFlags) IsVarargs() bool      { return f.Has(AccVarargs) }
func (f AccessFlags) IsNative() bool       { return f.Has(AccNative) }
func (f AccessFlags) IsInterface() bool    { return f.Has(AccInterface) }
func (f AccessFlags) IsAbstract() bool     { return f.Has(AccAbstract) }
func (f AccessFlags) IsStrict() bool       { return f.Has(AccStrict) }
func (f AccessFlags) IsSynthetic() bool    { return f.Has(AccSynthetic) }
func (f AccessFlags) IsAnnotation() bool   { return f.Has(AccAnnotation) }
func (f AccessFlags) IsEnum() bool         { return f.Has(AccEnum) }
func (f AccessFlags) IsModule() bool       { return f.Has(AccModule) }

// Pretty renders the source-level modifier keywords for a class-context
// flag set, in canonical declaration order.
func (f AccessFlags) Pretty() string {
	var words []string
	if f.IsPublic() {
		words = append(words, "public")
	}
	if f.IsPrivate() {
		words = append(words, "private")
	}
	if f.IsProtected() {
		words = append(words, "protected")
	}
	if f.IsStatic() {
		words = append(words, "static")
	}
	if f.IsFinal() {
		words = append(words, "final")
	}
	if f.IsAbstract() && !f.IsInterface() {
		words = append(words, "abstract")
	}
	return strings.Join(words, " ")
}
