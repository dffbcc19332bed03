package classfile

import (
	"fmt"
	"strings"
)

// primitiveNames maps the single-character field descriptors to their
// Java source keywords.
var primitiveNames = map[byte]string{
	'V': "void",
	'Z': "boolean",
	'B': "byte",
	'C': "char",
	'S': "short",
	'I': "int",
	'J': "long",
	'F': "float",
	'D': "double",
}

// SplitDescriptors splits a descriptor string into its component type
// descriptors. A field descriptor yields one element; a method
// descriptor yields one element per argument followed by the return
// type. Array and object descriptors are kept whole, and a
// parenthesized group is never split across elements.
func SplitDescriptors(desc string) ([]string, error) {
	var out []string
	for len(desc) > 0 {
		if desc[0] == '(' {
			end := strings.IndexByte(desc, ')')
			if end < 0 {
				return nil, fmt.Errorf("unterminated argument list in descriptor %q", desc)
			}
			args, err := SplitDescriptors(desc[1:end])
			if err != nil {
				return nil, err
			}
			out = append(out, args...)
			desc = desc[end+1:]
			continue
		}
		one, rest, err := nextDescriptor(desc)
		if err != nil {
			return nil, err
		}
		out = append(out, one)
		desc = rest
	}
	return out, nil
}

// nextDescriptor consumes one type descriptor off the front of desc.
func nextDescriptor(desc string) (string, string, error) {
	if len(desc) == 0 {
		return "", "", fmt.Errorf("empty descriptor")
	}
	switch c := desc[0]; {
	case primitiveNames[c] != "":
		return desc[:1], desc[1:], nil
	case c == 'L':
		end := strings.IndexByte(desc, ';')
		if end < 0 {
			return "", "", fmt.Errorf("unterminated class descriptor %q", desc)
		}
		return desc[:end+1], desc[end+1:], nil
	case c == '[':
		inner, rest, err := nextDescriptor(desc[1:])
		if err != nil {
			return "", "", err
		}
		return desc[:1] + inner, rest, nil
	default:
		return "", "", fmt.Errorf("invalid descriptor character %q in %q", c, desc)
	}
}

// MethodArgs returns the argument type descriptors of a method
// descriptor.
func MethodArgs(desc string) ([]string, error) {
	if !strings.HasPrefix(desc, "(") {
		return nil, fmt.Errorf("not a method descriptor: %q", desc)
	}
	end := strings.IndexByte(desc, ')')
	if end < 0 {
		return nil, fmt.Errorf("unterminated argument list in descriptor %q", desc)
	}
	return SplitDescriptors(desc[1:end])
}

// ReturnType returns the return type descriptor of a method descriptor.
func ReturnType(desc string) (string, error) {
	end := strings.IndexByte(desc, ')')
	if !strings.HasPrefix(desc, "(") || end < 0 {
		return "", fmt.Errorf("not a method descriptor: %q", desc)
	}
	ret, rest, err := nextDescriptor(desc[end+1:])
	if err != nil {
		return "", err
	}
	if rest != "" {
		return "", fmt.Errorf("trailing data after return type in descriptor %q", desc)
	}
	return ret, nil
}

// PrettyType renders a type descriptor in Java source form: primitives
// become keywords, object types get dots, and arrays get [] suffixes.
// A method descriptor renders as "(a,b)ret". Input that does not parse
// is returned unchanged, since this path feeds best-effort display.
func PrettyType(desc string) string {
	if strings.HasPrefix(desc, "(") {
		args, err := MethodArgs(desc)
		if err != nil {
			return desc
		}
		ret, err := ReturnType(desc)
		if err != nil {
			return desc
		}
		pretty := make([]string, len(args))
		for i, a := range args {
			pretty[i] = PrettyType(a)
		}
		return "(" + strings.Join(pretty, ",") + ")" + PrettyType(ret)
	}

	dims := 0
	for dims < len(desc) && desc[dims] == '[' {
		dims++
	}
	base := desc[dims:]

	var name string
	switch {
	case len(base) == 1 && primitiveNames[base[0]] != "":
		name = primitiveNames[base[0]]
	case strings.HasPrefix(base, "L") && strings.HasSuffix(base, ";"):
		name = strings.ReplaceAll(base[1:len(base)-1], "/", ".")
	default:
		return desc
	}
	return name + strings.Repeat("[]", dims)
}
