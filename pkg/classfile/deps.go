package classfile

import "sort"

// Provides returns the symbols this class defines: the class name
// itself plus one entry per field ("Class.field:type") and per method
// ("Class.method(args):ret"), all in pretty source form. Computed once
// and memoized.
func (ci *ClassInfo) Provides() ([]string, error) {
	if err := ci.computeDeps(); err != nil {
		return nil, err
	}
	return ci.provides, nil
}

// Requires returns the deduplicated, sorted set of external symbols
// this class references: the superclass, implemented interfaces, and
// every class, field, and method reference in the constant pool that
// does not point back at this class. Computed once and memoized.
func (ci *ClassInfo) Requires() ([]string, error) {
	if err := ci.computeDeps(); err != nil {
		return nil, err
	}
	return ci.requires, nil
}

func (ci *ClassInfo) computeDeps() error {
	ci.depsOnce.Do(func() {
		ci.depsErr = ci.buildDeps()
	})
	return ci.depsErr
}

func (ci *ClassInfo) buildDeps() error {
	className, err := ci.PrettyName()
	if err != nil {
		return err
	}
	internalName, err := ci.ClassName()
	if err != nil {
		return err
	}

	provides := []string{className}
	for _, members := range [][]*MemberInfo{ci.Fields, ci.Methods} {
		for _, m := range members {
			id, err := m.Identifier()
			if err != nil {
				return err
			}
			typ, err := m.PrettyType()
			if err != nil {
				return err
			}
			provides = append(provides, className+"."+id+":"+typ)
		}
	}
	ci.provides = provides

	seen := make(map[string]bool)
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			ci.requires = append(ci.requires, s)
		}
	}

	if super, err := ci.SuperClassName(); err != nil {
		return err
	} else if super != "" {
		add(prettyClassName(super))
	}
	ifaces, err := ci.InterfaceNames()
	if err != nil {
		return err
	}
	for _, name := range ifaces {
		add(prettyClassName(name))
	}

	for i := 1; i < ci.Pool.Count(); i++ {
		index := uint16(i)
		c, err := ci.Pool.Get(index)
		if err != nil {
			return err
		}
		switch c := c.(type) {
		case *ConstantClass:
			name, err := ci.Pool.Utf8(c.NameIndex)
			if err != nil {
				return err
			}
			if name != internalName {
				add(prettyClassName(name))
			}
		case *ConstantFieldref:
			if err := ci.addRef(add, internalName, c.ClassIndex, index); err != nil {
				return err
			}
		case *ConstantMethodref:
			if err := ci.addRef(add, internalName, c.ClassIndex, index); err != nil {
				return err
			}
		case *ConstantInterfaceMethodref:
			if err := ci.addRef(add, internalName, c.ClassIndex, index); err != nil {
				return err
			}
		}
	}

	sort.Strings(ci.requires)
	return nil
}

func (ci *ClassInfo) addRef(add func(string), internalName string, classIndex, refIndex uint16) error {
	owner, err := ci.Pool.ClassName(classIndex)
	if err != nil {
		return err
	}
	if owner == internalName {
		return nil
	}
	add(ci.Pool.PrettyDeref(refIndex))
	return nil
}
