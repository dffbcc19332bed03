package classfile

import (
	"fmt"
	"strings"
)

// Annotation is one runtime-visible or runtime-invisible annotation:
// a type descriptor plus named element values.
type Annotation struct {
	TypeIndex uint16
	Elements  []ElementPair
}

// ElementPair is one name=value member of an annotation.
type ElementPair struct {
	NameIndex uint16
	Value     ElementValue
}

// ElementValue is the tagged union of annotation member values. Tag
// selects which field is meaningful: a primitive or string constant
// ('B','C','D','F','I','J','S','Z','s') uses ConstIndex, 'e' uses Enum,
// 'c' uses ConstIndex as a class descriptor, '@' uses Nested, and '['
// uses Array.
type ElementValue struct {
	Tag        byte
	ConstIndex uint16
	Enum       EnumConst
	Nested     *Annotation
	Array      []ElementValue
}

// EnumConst is the two-index payload of an enum-valued element.
type EnumConst struct {
	TypeIndex  uint16
	ConstIndex uint16
}

// TypeName resolves the annotation's type descriptor against the pool
// and renders it in source form.
func (a *Annotation) TypeName(pool *ConstantPool) (string, error) {
	desc, err := pool.Utf8(a.TypeIndex)
	if err != nil {
		return "", err
	}
	return PrettyType(desc), nil
}

// Pretty renders the annotation as "@Type(name=value, ...)".
func (a *Annotation) Pretty(pool *ConstantPool) string {
	name, err := a.TypeName(pool)
	if err != nil {
		return ""
	}
	if len(a.Elements) == 0 {
		return "@" + name
	}
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		elemName, err := pool.Utf8(e.NameIndex)
		if err != nil {
			elemName = "?"
		}
		parts[i] = elemName + "=" + e.Value.Pretty(pool)
	}
	return "@" + name + "(" + strings.Join(parts, ", ") + ")"
}

// Pretty renders an element value for display.
func (v ElementValue) Pretty(pool *ConstantPool) string {
	switch v.Tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		return pool.PrettyDeref(v.ConstIndex)
	case 'e':
		typeName, err := pool.Utf8(v.Enum.TypeIndex)
		if err != nil {
			return ""
		}
		constName, err := pool.Utf8(v.Enum.ConstIndex)
		if err != nil {
			return ""
		}
		return PrettyType(typeName) + "." + constName
	case 'c':
		desc, err := pool.Utf8(v.ConstIndex)
		if err != nil {
			return ""
		}
		return PrettyType(desc) + ".class"
	case '@':
		if v.Nested == nil {
			return ""
		}
		return v.Nested.Pretty(pool)
	case '[':
		parts := make([]string, len(v.Array))
		for i, e := range v.Array {
			parts[i] = e.Pretty(pool)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

// Equal reports structural equality of two element values.
func (v ElementValue) Equal(o ElementValue) bool {
	if v.Tag != o.Tag {
		return false
	}
	switch v.Tag {
	case 'e':
		return v.Enum == o.Enum
	case '@':
		if (v.Nested == nil) != (o.Nested == nil) {
			return false
		}
		return v.Nested == nil || v.Nested.Equal(o.Nested)
	case '[':
		if len(v.Array) != len(o.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(o.Array[i]) {
				return false
			}
		}
		return true
	default:
		return v.ConstIndex == o.ConstIndex
	}
}

// Equal reports structural equality of two annotations.
func (a *Annotation) Equal(o *Annotation) bool {
	if a.TypeIndex != o.TypeIndex || len(a.Elements) != len(o.Elements) {
		return false
	}
	for i := range a.Elements {
		if a.Elements[i].NameIndex != o.Elements[i].NameIndex ||
			!a.Elements[i].Value.Equal(o.Elements[i].Value) {
			return false
		}
	}
	return true
}

// decodeAnnotations decodes a RuntimeVisibleAnnotations or
// RuntimeInvisibleAnnotations payload.
func decodeAnnotations(data []byte) ([]*Annotation, error) {
	u := NewBufferUnpacker(data)
	return readTable(u, decodeAnnotation)
}

func decodeAnnotation(u *Unpacker) (*Annotation, error) {
	typeIndex, err := u.U2()
	if err != nil {
		return nil, fmt.Errorf("reading annotation type: %w", err)
	}
	elements, err := readTable(u, func(u *Unpacker) (ElementPair, error) {
		nameIndex, err := u.U2()
		if err != nil {
			return ElementPair{}, err
		}
		value, err := decodeElementValue(u)
		if err != nil {
			return ElementPair{}, err
		}
		return ElementPair{NameIndex: nameIndex, Value: value}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading annotation elements: %w", err)
	}
	return &Annotation{TypeIndex: typeIndex, Elements: elements}, nil
}

// decodeElementValue decodes one tagged element value. Recursion
// bottoms out at the scalar tags; nested annotations and arrays recurse
// through payload the cursor has already bounded.
func decodeElementValue(u *Unpacker) (ElementValue, error) {
	tag, err := u.U1()
	if err != nil {
		return ElementValue{}, err
	}
	v := ElementValue{Tag: tag}

	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's', 'c':
		if v.ConstIndex, err = u.U2(); err != nil {
			return ElementValue{}, err
		}
	case 'e':
		if v.Enum.TypeIndex, err = u.U2(); err != nil {
			return ElementValue{}, err
		}
		if v.Enum.ConstIndex, err = u.U2(); err != nil {
			return ElementValue{}, err
		}
	case '@':
		if v.Nested, err = decodeAnnotation(u); err != nil {
			return ElementValue{}, err
		}
	case '[':
		if v.Array, err = readTable(u, decodeElementValue); err != nil {
			return ElementValue{}, err
		}
	default:
		return ElementValue{}, &UnsupportedTagError{Kind: "annotation element", Tag: tag}
	}
	return v, nil
}
