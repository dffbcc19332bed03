package classfile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeAnnotations(t *testing.T) {
	b := &classBuilder{}
	b.u2(1)   // one annotation
	b.u2(7)   // type index
	b.u2(2)   // two pairs
	b.u2(8)   // name
	b.u1('s') // string value
	b.u2(9)
	b.u2(10) // name
	b.u1('e') // enum value
	b.u2(11)
	b.u2(12)

	annos, err := decodeAnnotations(b.bytes())
	require.NoError(t, err)
	require.Len(t, annos, 1)

	a := annos[0]
	require.Equal(t, uint16(7), a.TypeIndex)
	require.Len(t, a.Elements, 2)

	require.Equal(t, byte('s'), a.Elements[0].Value.Tag)
	require.Equal(t, uint16(9), a.Elements[0].Value.ConstIndex)

	require.Equal(t, byte('e'), a.Elements[1].Value.Tag)
	require.Equal(t, EnumConst{TypeIndex: 11, ConstIndex: 12}, a.Elements[1].Value.Enum)
}

func TestDecodeNestedAnnotation(t *testing.T) {
	b := &classBuilder{}
	b.u2(1)   // one annotation
	b.u2(1)   // type
	b.u2(1)   // one pair
	b.u2(2)   // name
	b.u1('[') // array of two nested annotations
	b.u2(2)
	b.u1('@')
	b.u2(3) // nested type
	b.u2(0) // no pairs
	b.u1('@')
	b.u2(4)
	b.u2(0)

	annos, err := decodeAnnotations(b.bytes())
	require.NoError(t, err)
	require.Len(t, annos, 1)

	arr := annos[0].Elements[0].Value
	require.Equal(t, byte('['), arr.Tag)
	require.Len(t, arr.Array, 2)
	require.Equal(t, byte('@'), arr.Array[0].Tag)
	require.Equal(t, uint16(3), arr.Array[0].Nested.TypeIndex)
	require.Equal(t, uint16(4), arr.Array[1].Nested.TypeIndex)
}

func TestDecodeAnnotationUnknownTag(t *testing.T) {
	b := &classBuilder{}
	b.u2(1)
	b.u2(1)
	b.u2(1)
	b.u2(2)
	b.u1('X')
	b.u2(0)

	_, err := decodeAnnotations(b.bytes())
	var ut *UnsupportedTagError
	require.True(t, errors.As(err, &ut))
	require.Equal(t, uint8('X'), ut.Tag)
}

func TestElementValueEqual(t *testing.T) {
	a := ElementValue{Tag: '[', Array: []ElementValue{
		{Tag: 's', ConstIndex: 3},
		{Tag: 'e', Enum: EnumConst{TypeIndex: 4, ConstIndex: 5}},
	}}
	b := ElementValue{Tag: '[', Array: []ElementValue{
		{Tag: 's', ConstIndex: 3},
		{Tag: 'e', Enum: EnumConst{TypeIndex: 4, ConstIndex: 5}},
	}}
	require.True(t, a.Equal(b))

	b.Array[1].Enum.ConstIndex = 6
	require.False(t, a.Equal(b))
	require.False(t, a.Equal(ElementValue{Tag: 's', ConstIndex: 3}))
}

func TestAnnotationDefault(t *testing.T) {
	b := &classBuilder{}
	b.u1('s')
	b.u2(3)

	m := &MemberInfo{
		isMethod:   true,
		Attributes: AttributeTable{"AnnotationDefault": b.bytes()},
	}
	v, err := m.AnnotationDefault()
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, byte('s'), v.Tag)
	require.Equal(t, uint16(3), v.ConstIndex)

	bare := &MemberInfo{isMethod: true, Attributes: AttributeTable{}}
	v, err = bare.AnnotationDefault()
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestAnnotationPretty(t *testing.T) {
	// pool: 1 Utf8 descriptor, 2 Utf8 element name, 3 Utf8 value
	b := &classBuilder{}
	b.u2(4)
	b.utf8("Ljava/lang/Deprecated;")
	b.utf8("since")
	b.utf8("1.2")
	pool, err := decodeConstantPool(NewBufferUnpacker(b.bytes()))
	require.NoError(t, err)

	a := &Annotation{TypeIndex: 1, Elements: []ElementPair{
		{NameIndex: 2, Value: ElementValue{Tag: 's', ConstIndex: 3}},
	}}
	require.Equal(t, `@java.lang.Deprecated(since=1.2)`, a.Pretty(pool))

	bare := &Annotation{TypeIndex: 1}
	require.Equal(t, "@java.lang.Deprecated", bare.Pretty(pool))
}
