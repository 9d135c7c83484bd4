// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// BootstrapMethod is one entry of a BootstrapMethods attribute.
type BootstrapMethod struct {
	BootstrapMethodRef uint16
	BootstrapArguments []uint16
}

// BootstrapMethodsAttribute, JVMS 4.7.23. At most one may appear on a
// class, and exactly one must appear if the constant pool contains any
// Dynamic or InvokeDynamic entry (enforced by the verifier, not here).
type BootstrapMethodsAttribute struct {
	Methods []BootstrapMethod
}

func (*BootstrapMethodsAttribute) attributeName() string { return "BootstrapMethods" }

func parseBootstrapMethodsAttribute(r *Reader) (*BootstrapMethodsAttribute, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	methods := make([]BootstrapMethod, count)
	for i := range methods {
		ref, err := r.u2()
		if err != nil {
			return nil, err
		}
		argCount, err := r.u2()
		if err != nil {
			return nil, err
		}
		args, err := r.u2Range(int(argCount))
		if err != nil {
			return nil, err
		}
		methods[i] = BootstrapMethod{BootstrapMethodRef: ref, BootstrapArguments: args}
	}
	return &BootstrapMethodsAttribute{Methods: methods}, nil
}
