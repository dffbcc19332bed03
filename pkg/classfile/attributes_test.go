package classfile

import (
	"testing"
)

// attrPool builds a small pool with the names and classes the attribute
// decoders resolve against.
func attrPool(t *testing.T) *ConstantPool {
	t.Helper()
	b := &classBuilder{}
	b.u2(14)
	b.utf8("x")                   // 1
	b.utf8("I")                   // 2
	b.utf8("Outer")               // 3
	b.u1(TagClass)                // 4
	b.u2(3)
	b.utf8("Outer$Inner")         // 5
	b.u1(TagClass)                // 6
	b.u2(5)
	b.utf8("Inner")               // 7
	b.utf8("java/io/IOException") // 8
	b.u1(TagClass)                // 9
	b.u2(8)
	b.utf8("run")                 // 10
	b.utf8("()V")                 // 11
	b.u1(TagNameAndType)          // 12
	b.u2(10)
	b.u2(11)
	b.utf8("Ljava/util/List;")    // 13

	pool, err := decodeConstantPool(NewBufferUnpacker(b.bytes()))
	if err != nil {
		t.Fatalf("decoding pool: %v", err)
	}
	return pool
}

func TestDecodeLineNumberTable(t *testing.T) {
	b := &classBuilder{}
	b.u2(2)
	b.u2(0)
	b.u2(10)
	b.u2(4)
	b.u2(11)

	lines, err := decodeLineNumberTable(b.bytes())
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d entries", len(lines))
	}
	if lines[0] != (LineNumber{StartPC: 0, Line: 10}) {
		t.Errorf("unexpected first entry %+v", lines[0])
	}
	if lines[1] != (LineNumber{StartPC: 4, Line: 11}) {
		t.Errorf("unexpected second entry %+v", lines[1])
	}
}

func TestDecodeLocalVariableTable(t *testing.T) {
	pool := attrPool(t)

	b := &classBuilder{}
	b.u2(1)
	b.u2(0) // start_pc
	b.u2(8) // length
	b.u2(1) // name "x"
	b.u2(2) // descriptor "I"
	b.u2(3) // index

	vars, err := decodeLocalVariableTable(b.bytes(), pool)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(vars) != 1 {
		t.Fatalf("got %d entries", len(vars))
	}
	want := LocalVariable{StartPC: 0, Length: 8, Name: "x", Descriptor: "I", Index: 3}
	if vars[0] != want {
		t.Errorf("got %+v, want %+v", vars[0], want)
	}
}

func TestDecodeInnerClasses(t *testing.T) {
	pool := attrPool(t)

	b := &classBuilder{}
	b.u2(1)
	b.u2(6)      // inner Outer$Inner
	b.u2(4)      // outer Outer
	b.u2(7)      // simple name Inner
	b.u2(0x0008) // static

	inner, err := decodeInnerClasses(b.bytes(), pool)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(inner) != 1 {
		t.Fatalf("got %d entries", len(inner))
	}
	ic := inner[0]
	if ic.InnerClass != "Outer$Inner" || ic.OuterClass != "Outer" || ic.InnerName != "Inner" {
		t.Errorf("unexpected record %+v", ic)
	}
	if !ic.AccessFlags.IsStatic() {
		t.Error("expected static inner class")
	}
}

func TestDecodeInnerClassesAnonymous(t *testing.T) {
	pool := attrPool(t)

	b := &classBuilder{}
	b.u2(1)
	b.u2(6)
	b.u2(0) // no outer
	b.u2(0) // no simple name
	b.u2(0)

	inner, err := decodeInnerClasses(b.bytes(), pool)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if inner[0].OuterClass != "" || inner[0].InnerName != "" {
		t.Errorf("anonymous record should have empty outer and name: %+v", inner[0])
	}
}

func TestDecodeEnclosingMethod(t *testing.T) {
	pool := attrPool(t)

	b := &classBuilder{}
	b.u2(4)  // class Outer
	b.u2(12) // run()V

	em, err := decodeEnclosingMethod(b.bytes(), pool)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if em.Class != "Outer" {
		t.Errorf("unexpected class %q", em.Class)
	}
	if em.Method != (NameAndType{Name: "run", Descriptor: "()V"}) {
		t.Errorf("unexpected method %+v", em.Method)
	}
}

func TestDecodeBootstrapMethods(t *testing.T) {
	b := &classBuilder{}
	b.u2(1)
	b.u2(9) // handle index (raw)
	b.u2(2) // two arguments
	b.u2(4)
	b.u2(6)

	bms, err := decodeBootstrapMethods(b.bytes())
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(bms) != 1 {
		t.Fatalf("got %d entries", len(bms))
	}
	if bms[0].MethodRef != 9 {
		t.Errorf("unexpected handle index %d", bms[0].MethodRef)
	}
	if len(bms[0].Arguments) != 2 || bms[0].Arguments[0] != 4 || bms[0].Arguments[1] != 6 {
		t.Errorf("unexpected arguments %v", bms[0].Arguments)
	}
}

func TestDecodeExceptions(t *testing.T) {
	pool := attrPool(t)

	b := &classBuilder{}
	b.u2(1)
	b.u2(9) // java/io/IOException

	names, err := decodeExceptions(b.bytes(), pool)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(names) != 1 || names[0] != "java/io/IOException" {
		t.Errorf("got %v", names)
	}
}

func TestAttributeTableDuplicates(t *testing.T) {
	pool := attrPool(t)

	b := &classBuilder{}
	b.u2(2)
	b.u2(1) // name "x"
	b.u4(1)
	b.u1(0xaa)
	b.u2(1) // "x" again
	b.u4(1)
	b.u1(0xbb)

	attrs, err := decodeAttributes(NewBufferUnpacker(b.bytes()), pool)
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(attrs) != 1 {
		t.Fatalf("duplicates should collapse, got %d entries", len(attrs))
	}
	if attrs["x"][0] != 0xbb {
		t.Error("last duplicate should win")
	}
}

func TestAccessFlags(t *testing.T) {
	f := AccessFlags(0x0009) // public static
	if !f.IsPublic() || !f.IsStatic() {
		t.Error("flag predicates")
	}
	if f.IsFinal() || f.IsInterface() {
		t.Error("unset flags reported")
	}
	if f.Pretty() != "public static" {
		t.Errorf("unexpected rendering %q", f.Pretty())
	}
	if AccessFlags(0).Pretty() != "" {
		t.Error("package-private should render empty")
	}
}
