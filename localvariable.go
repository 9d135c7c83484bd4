// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// LocalVariableEntry is one row of a LocalVariableTable attribute, JVMS
// 4.7.13.
type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

// LocalVariableTableAttribute, JVMS 4.7.13.
type LocalVariableTableAttribute struct {
	LocalVariableTable []LocalVariableEntry
}

func (*LocalVariableTableAttribute) attributeName() string { return "LocalVariableTable" }

func parseLocalVariableTableAttribute(r *Reader) (*LocalVariableTableAttribute, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	table := make([]LocalVariableEntry, count)
	for i := range table {
		if table[i].StartPC, err = r.u2(); err != nil {
			return nil, err
		}
		if table[i].Length, err = r.u2(); err != nil {
			return nil, err
		}
		if table[i].NameIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if table[i].DescriptorIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if table[i].Index, err = r.u2(); err != nil {
			return nil, err
		}
	}
	return &LocalVariableTableAttribute{LocalVariableTable: table}, nil
}

// LocalVariableTypeEntry is one row of a LocalVariableTypeTable attribute,
// JVMS 4.7.14 -- identical shape to LocalVariableEntry with
// SignatureIndex substituted for DescriptorIndex.
type LocalVariableTypeEntry struct {
	StartPC        uint16
	Length         uint16
	NameIndex      uint16
	SignatureIndex uint16
	Index          uint16
}

// LocalVariableTypeTableAttribute, JVMS 4.7.14.
type LocalVariableTypeTableAttribute struct {
	LocalVariableTypeTable []LocalVariableTypeEntry
}

func (*LocalVariableTypeTableAttribute) attributeName() string {
	return "LocalVariableTypeTable"
}

func parseLocalVariableTypeTableAttribute(r *Reader) (*LocalVariableTypeTableAttribute, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	table := make([]LocalVariableTypeEntry, count)
	for i := range table {
		if table[i].StartPC, err = r.u2(); err != nil {
			return nil, err
		}
		if table[i].Length, err = r.u2(); err != nil {
			return nil, err
		}
		if table[i].NameIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if table[i].SignatureIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if table[i].Index, err = r.u2(); err != nil {
			return nil, err
		}
	}
	return &LocalVariableTypeTableAttribute{LocalVariableTypeTable: table}, nil
}
