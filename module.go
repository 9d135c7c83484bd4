// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// ModuleRequires, ModuleExports, ModuleOpens, ModuleProvides are the four
// repeated record shapes inside a Module attribute, JVMS 4.7.25.
type ModuleRequires struct {
	RequiresIndex        uint16
	RequiresFlags        uint16
	RequiresVersionIndex uint16
}

type ModuleExports struct {
	ExportsIndex   uint16
	ExportsFlags   uint16
	ExportsToIndex []uint16
}

type ModuleOpens struct {
	OpensIndex   uint16
	OpensFlags   uint16
	OpensToIndex []uint16
}

type ModuleProvides struct {
	ProvidesIndex     uint16
	ProvidesWithIndex []uint16
}

// ModuleAttribute, JVMS 4.7.25. Exactly one must be present on a class
// carrying ACC_MODULE, and it must be accompanied by super_class,
// interfaces, fields and methods all empty (enforced by the verifier).
type ModuleAttribute struct {
	ModuleNameIndex    uint16
	ModuleFlags        uint16
	ModuleVersionIndex uint16
	Requires           []ModuleRequires
	Exports            []ModuleExports
	Opens              []ModuleOpens
	UsesIndex          []uint16
	Provides           []ModuleProvides
}

func (*ModuleAttribute) attributeName() string { return "Module" }

func parseModuleAttribute(r *Reader) (*ModuleAttribute, error) {
	nameIndex, err := r.u2()
	if err != nil {
		return nil, err
	}
	flags, err := r.u2()
	if err != nil {
		return nil, err
	}
	versionIndex, err := r.u2()
	if err != nil {
		return nil, err
	}

	requiresCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	requires := make([]ModuleRequires, requiresCount)
	for i := range requires {
		if requires[i].RequiresIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if requires[i].RequiresFlags, err = r.u2(); err != nil {
			return nil, err
		}
		if requires[i].RequiresVersionIndex, err = r.u2(); err != nil {
			return nil, err
		}
	}

	exportsCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	exports := make([]ModuleExports, exportsCount)
	for i := range exports {
		if exports[i].ExportsIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if exports[i].ExportsFlags, err = r.u2(); err != nil {
			return nil, err
		}
		toCount, err := r.u2()
		if err != nil {
			return nil, err
		}
		if exports[i].ExportsToIndex, err = r.u2Range(int(toCount)); err != nil {
			return nil, err
		}
	}

	opensCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	opens := make([]ModuleOpens, opensCount)
	for i := range opens {
		if opens[i].OpensIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if opens[i].OpensFlags, err = r.u2(); err != nil {
			return nil, err
		}
		toCount, err := r.u2()
		if err != nil {
			return nil, err
		}
		if opens[i].OpensToIndex, err = r.u2Range(int(toCount)); err != nil {
			return nil, err
		}
	}

	usesCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	usesIndex, err := r.u2Range(int(usesCount))
	if err != nil {
		return nil, err
	}

	providesCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	provides := make([]ModuleProvides, providesCount)
	for i := range provides {
		if provides[i].ProvidesIndex, err = r.u2(); err != nil {
			return nil, err
		}
		withCount, err := r.u2()
		if err != nil {
			return nil, err
		}
		if provides[i].ProvidesWithIndex, err = r.u2Range(int(withCount)); err != nil {
			return nil, err
		}
	}

	return &ModuleAttribute{
		ModuleNameIndex:    nameIndex,
		ModuleFlags:        flags,
		ModuleVersionIndex: versionIndex,
		Requires:           requires,
		Exports:            exports,
		Opens:              opens,
		UsesIndex:          usesIndex,
		Provides:           provides,
	}, nil
}
