package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/obriencj/go-javatools/pkg/classfile"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <classfile> [<classfile> ...]\n", os.Args[0])
		os.Exit(1)
	}

	status := 0
	for _, path := range os.Args[1:] {
		if err := dump(path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			status = 1
		}
	}
	os.Exit(status)
}

func dump(path string) error {
	ci, err := classfile.ParseFile(path)
	if err != nil {
		return err
	}

	name, err := ci.PrettyName()
	if err != nil {
		return err
	}
	major, minor := ci.Version()
	fmt.Printf("class %s (version %d.%d)\n", name, major, minor)

	if source, err := ci.SourceFile(); err == nil && source != "" {
		fmt.Printf("  source: %s\n", source)
	}
	if super, err := ci.SuperClassName(); err == nil && super != "" {
		fmt.Printf("  extends: %s\n", strings.ReplaceAll(super, "/", "."))
	}
	if ifaces, err := ci.InterfaceNames(); err == nil && len(ifaces) > 0 {
		pretty := make([]string, len(ifaces))
		for i, s := range ifaces {
			pretty[i] = strings.ReplaceAll(s, "/", ".")
		}
		fmt.Printf("  implements: %s\n", strings.Join(pretty, ", "))
	}
	if annos, err := ci.Annotations(); err == nil {
		for _, a := range annos {
			fmt.Printf("  %s\n", a.Pretty(ci.Pool))
		}
	}

	fmt.Println("fields:")
	for _, f := range ci.Fields {
		if err := dumpField(ci, f); err != nil {
			return err
		}
	}

	fmt.Println("methods:")
	for _, m := range ci.Methods {
		if err := dumpMethod(ci, m); err != nil {
			return err
		}
	}
	return nil
}

func dumpField(ci *classfile.ClassInfo, f *classfile.MemberInfo) error {
	name, err := f.Name()
	if err != nil {
		return err
	}
	typ, err := f.PrettyType()
	if err != nil {
		return err
	}
	line := "  "
	if mods := f.AccessFlags.Pretty(); mods != "" {
		line += mods + " "
	}
	line += typ + " " + name
	if val, ok, err := f.ConstantValue(); err == nil && ok {
		line += fmt.Sprintf(" = %v", val)
	}
	fmt.Println(line)
	return nil
}

func dumpMethod(ci *classfile.ClassInfo, m *classfile.MemberInfo) error {
	name, err := m.Name()
	if err != nil {
		return err
	}
	args, err := m.PrettyArguments()
	if err != nil {
		return err
	}
	ret, err := m.PrettyType()
	if err != nil {
		return err
	}

	line := "  "
	if mods := m.AccessFlags.Pretty(); mods != "" {
		line += mods + " "
	}
	line += fmt.Sprintf("%s %s(%s)", ret, name, strings.Join(args, ", "))
	if throws, err := m.Exceptions(); err == nil && len(throws) > 0 {
		pretty := make([]string, len(throws))
		for i, t := range throws {
			pretty[i] = strings.ReplaceAll(t, "/", ".")
		}
		line += " throws " + strings.Join(pretty, ", ")
	}
	fmt.Println(line)

	code, err := m.Code()
	if err != nil {
		return err
	}
	if code == nil {
		return nil
	}

	fmt.Printf("    stack=%d, locals=%d\n", code.MaxStack, code.MaxLocals)
	insts, err := code.Disassemble()
	if err != nil {
		return err
	}
	lines, _ := code.LineNumberTable()
	for _, inst := range insts {
		for _, ln := range lines {
			if int(ln.StartPC) == inst.Offset {
				fmt.Printf("    // line %d\n", ln.Line)
				break
			}
		}
		fmt.Printf("    %4d: %s", inst.Offset, inst.Op.Mnemonic())
		if inst.Op.IsPoolRef() && len(inst.Args) > 0 {
			fmt.Printf(" #%d // %s", inst.Args[0], ci.Pool.PrettyDeref(uint16(inst.Args[0])))
		} else {
			for _, a := range inst.Args {
				fmt.Printf(" %d", a)
			}
		}
		fmt.Println()
	}

	for _, e := range code.ExceptionTable {
		catch, err := code.CatchTypeName(e)
		if err != nil {
			return err
		}
		if catch == "" {
			catch = "any"
		}
		fmt.Printf("    try [%d,%d) -> %d catch %s\n", e.StartPC, e.EndPC, e.HandlerPC, catch)
	}
	return nil
}
